package geoscribe

import (
	"context"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// CreateFeatureSession builds one geometry at a time from successive click
// events and emits finished features into a target layer. After a finish the
// session loops back to an empty sketch unless it has been stopped.
type CreateFeatureSession struct {
	baseSession
	app          *App
	layer        *VectorLayer
	geometryType GeometryType

	// FeatureCreated fires once per newly instantiated in-progress feature,
	// on its first coordinate and before any CreationFinished for it.
	FeatureCreated Event[*Feature]

	// CreationFinished fires with the completed feature, or nil when the
	// sketch was discarded for missing its minimum point count.
	CreationFinished Event[*Feature]

	chain   *InteractionChain
	scratch *ScratchLayer
	current *Feature

	removeExclusive func()
	mapListener     ListenerHandle
	obliqueListener ListenerHandle
}

// StartCreateFeatureSession starts sketching geometries of the given type
// into layer. The session takes pointer-event exclusivity; starting any other
// session stops this one.
func StartCreateFeatureSession(app *App, layer *VectorLayer, t GeometryType) *CreateFeatureSession {
	s := &CreateFeatureSession{
		baseSession:  baseSession{typ: SessionTypeCreate},
		app:          app,
		layer:        layer,
		geometryType: t,
		scratch:      newScratchLayer(),
	}
	s.chain = NewInteractionChain(InteractionFunc(s.handleEvent))
	s.removeExclusive = app.EventHandler.AddExclusiveInteraction(s.chain, s.Stop, uuid.NewString())

	s.mapListener = app.Maps.MapActivated.Listen(func(m Map) {
		// No partially built geometry survives a backend swap.
		s.Finish()
		s.bindObliqueImage(m)
	})
	s.bindObliqueImage(app.Maps.ActiveMap())

	s.teardown = func() {
		s.finishCurrent()
		s.mapListener.Remove()
		s.obliqueListener.Remove()
		s.chain.Clear()
		s.removeExclusive()
		s.scratch.destroy()
	}
	return s
}

// Scratch returns the session's scratch layer, holding one vertex per
// sketched coordinate, for renderers.
func (s *CreateFeatureSession) Scratch() *ScratchLayer {
	return s.scratch
}

// GeometryType returns the type of geometry being sketched.
func (s *CreateFeatureSession) GeometryType() GeometryType {
	return s.geometryType
}

// Current returns the in-progress feature, or nil between sketches.
func (s *CreateFeatureSession) Current() *Feature {
	return s.current
}

// Finish completes the in-progress sketch. A geometry below its minimum
// point count is discarded — removed from the layer, with
// CreationFinished(nil) as the only signal. Otherwise the create-sync flag is
// cleared and CreationFinished fires with the feature. A new empty sketch
// begins on the next click unless the session has been stopped.
func (s *CreateFeatureSession) Finish() {
	if s.stoppedFlag.Load() {
		return
	}
	s.finishCurrent()
}

func (s *CreateFeatureSession) finishCurrent() {
	if s.current == nil {
		return
	}
	finished := s.current
	s.current = nil
	s.scratch.clear()

	if finished.Geometry().Len() < s.geometryType.MinPoints() {
		s.layer.RemoveFeatures(finished)
		s.CreationFinished.Fire(nil)
		return
	}
	finished.DeleteProperty(PropCreateSync)
	s.CreationFinished.Fire(finished)
}

// handleEvent is the session's single chain interaction.
func (s *CreateFeatureSession) handleEvent(_ context.Context, ev *PointerEvent) error {
	if s.stoppedFlag.Load() {
		return nil
	}
	switch ev.Type {
	case EventClick:
		s.addPoint(ev.Position)
		ev.StopPropagation = true
	case EventDblClick:
		s.Finish()
		ev.StopPropagation = true
	}
	return nil
}

// addPoint appends one coordinate to the in-progress geometry, starting a new
// sketch if none is active. Types with a maximum point count finish
// automatically once it is reached.
func (s *CreateFeatureSession) addPoint(pos r3.Vec) {
	if s.current == nil {
		s.current = NewFeature(NewGeometry(s.geometryType))
		s.current.SetProperty(PropCreateSync, true)
		s.layer.AddFeatures(s.current)
		s.current.Geometry().AppendCoordinate(pos)
		s.scratch.add(newVertex(0, pos))
		s.FeatureCreated.Fire(s.current)
	} else {
		g := s.current.Geometry()
		g.AppendCoordinate(pos)
		s.scratch.add(newVertex(g.Len()-1, pos))
	}

	if max := s.geometryType.MaxPoints(); max > 0 && s.current.Geometry().Len() >= max {
		s.Finish()
	}
}

// bindObliqueImage rebinds the oblique image-change listener for the active
// map. An image change on an oblique backend force-finishes the sketch just
// like a map swap.
func (s *CreateFeatureSession) bindObliqueImage(m Map) {
	s.obliqueListener.Remove()
	s.obliqueListener = ListenerHandle{}
	if oblique, ok := m.(ObliqueMap); ok {
		s.obliqueListener = oblique.ImageChanged().Listen(func(string) {
			s.Finish()
		})
	}
}
