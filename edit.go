package geoscribe

import (
	"context"

	"github.com/google/uuid"
)

// EditFeaturesSession applies live geometric transformations to a set of
// selected features while the user drags on-screen handles. It owns the
// feature set, the transformation mode, and the active handler, and mediates
// mode changes against the active map backend.
type EditFeaturesSession struct {
	baseSession
	app   *App
	layer *VectorLayer

	// ModeChanged fires exactly once per net mode change, including the
	// automatic downgrade to translate when a 3D-only mode loses its map.
	ModeChanged Event[TransformationMode]

	features []*Feature
	saved    map[string]featureFlags
	mode     TransformationMode
	handler  TransformationHandler
	chain    *InteractionChain
	scratch  *ScratchLayer

	removeExclusive func()
	mapListener     ListenerHandle

	pickOverride *Feature // transient right-click allow-picking target
}

// StartEditFeaturesSession starts a transformation session over layer with
// the given initial mode. An extrude request on a map that is not 3D-capable
// is clamped to translate. The session takes pointer-event exclusivity.
func StartEditFeaturesSession(app *App, layer *VectorLayer, mode TransformationMode) *EditFeaturesSession {
	s := &EditFeaturesSession{
		baseSession: baseSession{typ: SessionTypeEditFeatures},
		app:         app,
		layer:       layer,
		saved:       make(map[string]featureFlags),
		scratch:     newScratchLayer(),
	}
	s.mode = s.clampMode(mode)
	s.handler = s.newHandler()

	s.chain = NewInteractionChain(
		InteractionFunc(s.handleRightClick),
		InteractionFunc(s.handleHandleDrag),
	)
	s.removeExclusive = app.EventHandler.AddExclusiveInteraction(s.chain, s.Stop, uuid.NewString())
	s.mapListener = app.Maps.MapActivated.Listen(s.onMapChanged)

	s.teardown = func() {
		s.mapListener.Remove()
		s.chain.Clear()
		s.removeExclusive()
		s.restoreAllFlags()
		s.handler.Dispose() // clears any live drag reference synchronously
		s.scratch.destroy()
	}
	return s
}

// Scratch returns the session's scratch layer, holding the transformation
// handles, for renderers.
func (s *EditFeaturesSession) Scratch() *ScratchLayer {
	return s.scratch
}

// Features returns the selected feature set. The returned slice MUST NOT be
// mutated by the caller.
func (s *EditFeaturesSession) Features() []*Feature {
	return s.features
}

// SetFeatures replaces the selected feature set. Flags on the previous set
// are restored to their pre-session values; the new set gets pick-disable and
// create-sync applied fresh. An empty list yields an idle, handle-less
// session.
func (s *EditFeaturesSession) SetFeatures(features []*Feature) {
	if globalDebug {
		debugCheckStoppedSession(&s.baseSession, "SetFeatures")
	}
	if s.stoppedFlag.Load() {
		return
	}
	s.restoreAllFlags()
	s.features = append(s.features[:0], features...)
	for _, f := range s.features {
		s.saved[f.ID()] = applySessionFlags(f, true)
	}
	debugWarnLargeSelection(len(s.features))
	s.handler.Setup(s.scratch, s.features)
}

// Mode returns the current transformation mode.
func (s *EditFeaturesSession) Mode() TransformationMode {
	return s.mode
}

// SetMode switches the transformation mode. Equal mode is a no-op with no
// event. An extrude request while the active map is not 3D-capable leaves the
// mode unchanged but still fires ModeChanged once, so callers can snap their
// UI back. Otherwise the old handler is destroyed, the new one set up, and
// ModeChanged fires exactly once.
func (s *EditFeaturesSession) SetMode(mode TransformationMode) {
	if globalDebug {
		debugCheckStoppedSession(&s.baseSession, "SetMode")
	}
	if s.stoppedFlag.Load() || mode == s.mode {
		return
	}
	clamped := s.clampMode(mode)
	if clamped == s.mode {
		s.ModeChanged.Fire(s.mode)
		return
	}
	s.switchMode(clamped)
	s.ModeChanged.Fire(s.mode)
}

// clampMode validates a mode against the active map: extrude is only valid
// on a 3D-capable backend.
func (s *EditFeaturesSession) clampMode(mode TransformationMode) TransformationMode {
	if mode == ModeExtrude && !is3D(s.app.Maps.ActiveMap()) {
		return ModeTranslate
	}
	return mode
}

// switchMode replaces the handler without firing events.
func (s *EditFeaturesSession) switchMode(mode TransformationMode) {
	s.handler.Dispose()
	s.mode = mode
	s.handler = s.newHandler()
	s.handler.Setup(s.scratch, s.features)
}

// newHandler instantiates the handler for the current mode and map.
func (s *EditFeaturesSession) newHandler() TransformationHandler {
	return newHandlerForMode(s.mode, s.app.Maps.ActiveMap(),
		s.app.EventHandler.post,
		func() bool { return !s.stoppedFlag.Load() })
}

// onMapChanged re-validates the mode against the new backend and rebuilds
// the handler. The session must never hold extrude while the active map is
// not 3D-capable: the downgrade to translate fires ModeChanged exactly once.
func (s *EditFeaturesSession) onMapChanged(m Map) {
	if s.mode == ModeExtrude && !is3D(m) {
		s.switchMode(ModeTranslate)
		s.ModeChanged.Fire(s.mode)
		return
	}
	// Same mode, new backend: rebuild handles quietly.
	s.switchMode(s.mode)
}

// handleHandleDrag runs the drag lifecycle against the active handler:
// DRAGSTART on a handle captures the reference state, every DRAG recomputes
// from it, DRAGEND clears it and recomputes the pivot.
func (s *EditFeaturesSession) handleHandleDrag(ctx context.Context, ev *PointerEvent) error {
	if s.stoppedFlag.Load() {
		return nil
	}
	switch ev.Type {
	case EventDragStart:
		axis, ok := HandleAxis(ev.Feature)
		if !ok || !s.scratch.Features().Has(ev.Feature) {
			return nil
		}
		s.handler.Begin(axis, ev)
		ev.StopPropagation = true
	case EventDrag:
		if !s.handler.Dragging() {
			return nil
		}
		s.handler.Apply(ev)
		ev.StopPropagation = true
	case EventDragEnd:
		if !s.handler.Dragging() {
			return nil
		}
		s.handler.End(ctx, ev)
		// The feature set moved; rederive the pivot and reseat the handles.
		s.handler.Setup(s.scratch, s.features)
		ev.StopPropagation = true
	}
	return nil
}

// handleRightClick implements the transient allow-picking override: a
// right-button press on a selected feature re-enables its picking for the
// duration of the click, so downstream selection/info tooling can still
// address it; release restores the session's pick-disable state.
func (s *EditFeaturesSession) handleRightClick(_ context.Context, ev *PointerEvent) error {
	if s.stoppedFlag.Load() {
		return nil
	}
	switch ev.Type {
	case EventDown:
		if ev.Button != MouseButtonRight || ev.Feature == nil {
			return nil
		}
		for _, f := range s.features {
			if f == ev.Feature {
				f.SetProperty(PropAllowPicking, true)
				s.pickOverride = f
				break
			}
		}
	case EventUp:
		if s.pickOverride != nil {
			s.pickOverride.SetProperty(PropAllowPicking, false)
			s.pickOverride = nil
		}
	}
	return nil
}

// restoreAllFlags puts pre-session flag values back on the current set.
func (s *EditFeaturesSession) restoreAllFlags() {
	for _, f := range s.features {
		if saved, ok := s.saved[f.ID()]; ok {
			restoreSessionFlags(f, saved)
			delete(s.saved, f.ID())
		}
	}
	s.features = s.features[:0]
	s.pickOverride = nil
}
