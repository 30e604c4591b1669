package geoscribe

import (
	"context"

	"github.com/google/uuid"
)

// EditGeometrySession edits a single feature's geometry vertex by vertex.
// Every coordinate gets a draggable vertex on the scratch layer; dragging a
// vertex rewrites its coordinate in place, and a shift-click removes the
// vertex unless the geometry would drop below its minimum point count.
type EditGeometrySession struct {
	baseSession
	app   *App
	layer *VectorLayer

	// GeometryChanged fires with the edited feature after a completed vertex
	// drag or a vertex removal.
	GeometryChanged Event[*Feature]

	feature  *Feature
	saved    featureFlags
	hasSaved bool

	chain   *InteractionChain
	scratch *ScratchLayer

	removeExclusive func()
	mapListener     ListenerHandle

	dragIndex int // coordinate index of the vertex being dragged; -1 when idle
}

// StartEditGeometrySession starts a vertex-editing session over layer.
// Assign the feature to edit with SetFeature. The session takes pointer-event
// exclusivity.
func StartEditGeometrySession(app *App, layer *VectorLayer) *EditGeometrySession {
	s := &EditGeometrySession{
		baseSession: baseSession{typ: SessionTypeEditGeometry},
		app:         app,
		layer:       layer,
		scratch:     newScratchLayer(),
		dragIndex:   -1,
	}
	s.chain = NewInteractionChain(InteractionFunc(s.handleEvent))
	s.removeExclusive = app.EventHandler.AddExclusiveInteraction(s.chain, s.Stop, uuid.NewString())
	s.mapListener = app.Maps.MapActivated.Listen(func(Map) {
		// Vertices carry no backend-specific state; just reseat them.
		s.dragIndex = -1
		s.rebuildVertices()
	})

	s.teardown = func() {
		s.mapListener.Remove()
		s.chain.Clear()
		s.removeExclusive()
		s.detachFeature()
		s.scratch.destroy()
	}
	return s
}

// Scratch returns the session's scratch layer, holding one vertex per
// coordinate of the edited feature, for renderers.
func (s *EditGeometrySession) Scratch() *ScratchLayer {
	return s.scratch
}

// Feature returns the feature under edit, or nil.
func (s *EditGeometrySession) Feature() *Feature {
	return s.feature
}

// SetFeature assigns the feature to edit. The previous feature's flags are
// restored; nil detaches without a replacement.
func (s *EditGeometrySession) SetFeature(f *Feature) {
	if globalDebug {
		debugCheckStoppedSession(&s.baseSession, "SetFeature")
	}
	if s.stoppedFlag.Load() {
		return
	}
	s.detachFeature()
	s.feature = f
	if f != nil {
		s.saved = applySessionFlags(f, true)
		s.hasSaved = true
	}
	s.rebuildVertices()
}

func (s *EditGeometrySession) handleEvent(_ context.Context, ev *PointerEvent) error {
	if s.stoppedFlag.Load() || s.feature == nil {
		return nil
	}
	switch ev.Type {
	case EventDragStart:
		idx, ok := VertexIndex(ev.Feature)
		if !ok || !s.scratch.Features().Has(ev.Feature) {
			return nil
		}
		s.dragIndex = idx
		ev.StopPropagation = true
	case EventDrag:
		if s.dragIndex < 0 {
			return nil
		}
		s.moveVertex(s.dragIndex, ev)
		ev.StopPropagation = true
	case EventDragEnd:
		if s.dragIndex < 0 {
			return nil
		}
		s.moveVertex(s.dragIndex, ev)
		s.dragIndex = -1
		s.GeometryChanged.Fire(s.feature)
		ev.StopPropagation = true
	case EventClick:
		if ev.Modifiers&ModShift == 0 {
			return nil
		}
		idx, ok := VertexIndex(ev.Feature)
		if !ok || !s.scratch.Features().Has(ev.Feature) {
			return nil
		}
		s.removeVertex(idx)
		ev.StopPropagation = true
	}
	return nil
}

// moveVertex rewrites the coordinate at idx and keeps its vertex in step.
func (s *EditGeometrySession) moveVertex(idx int, ev *PointerEvent) {
	g := s.feature.Geometry()
	if idx >= g.Len() {
		return
	}
	g.SetCoordinate(idx, ev.Position)
	for _, v := range s.scratch.Features().All() {
		if i, ok := VertexIndex(v); ok && i == idx {
			setVertexPosition(v, ev.Position)
			break
		}
	}
}

// removeVertex deletes the coordinate at idx unless the geometry would fall
// below its minimum point count; refusal is silent and the session stays
// live.
func (s *EditGeometrySession) removeVertex(idx int) {
	g := s.feature.Geometry()
	if g.Len() <= g.Type().MinPoints() || idx >= g.Len() {
		return
	}
	g.RemoveCoordinate(idx)
	s.rebuildVertices()
	s.GeometryChanged.Fire(s.feature)
}

// rebuildVertices recreates one vertex per coordinate on the scratch layer.
func (s *EditGeometrySession) rebuildVertices() {
	s.scratch.clear()
	if s.feature == nil {
		return
	}
	for i, c := range s.feature.Geometry().Coordinates() {
		s.scratch.add(newVertex(i, c))
	}
}

// detachFeature restores the current feature's flags and clears vertices.
func (s *EditGeometrySession) detachFeature() {
	if s.feature != nil && s.hasSaved {
		restoreSessionFlags(s.feature, s.saved)
	}
	s.feature = nil
	s.hasSaved = false
	s.dragIndex = -1
	s.scratch.clear()
}
