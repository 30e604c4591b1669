package geoscribe

import (
	"context"

	"github.com/google/uuid"
)

// SelectFeaturesSession picks features from a layer by clicking. A plain
// click replaces the selection with the clicked feature (or clears it on
// empty ground); a shift-click toggles the clicked feature's membership.
type SelectFeaturesSession struct {
	baseSession
	app   *App
	layer *VectorLayer

	// SelectionChanged fires with the new selection after every net change.
	SelectionChanged Event[[]*Feature]

	selection []*Feature
	chain     *InteractionChain

	removeExclusive func()
}

// StartSelectFeaturesSession starts selecting features from layer.
// The session takes pointer-event exclusivity.
func StartSelectFeaturesSession(app *App, layer *VectorLayer) *SelectFeaturesSession {
	s := &SelectFeaturesSession{
		baseSession: baseSession{typ: SessionTypeSelect},
		app:         app,
		layer:       layer,
	}
	s.chain = NewInteractionChain(InteractionFunc(s.handleEvent))
	s.removeExclusive = app.EventHandler.AddExclusiveInteraction(s.chain, s.Stop, uuid.NewString())

	s.teardown = func() {
		s.chain.Clear()
		s.removeExclusive()
		s.selection = nil
	}
	return s
}

// Selection returns the selected features. The returned slice MUST NOT be
// mutated by the caller.
func (s *SelectFeaturesSession) Selection() []*Feature {
	return s.selection
}

func (s *SelectFeaturesSession) handleEvent(_ context.Context, ev *PointerEvent) error {
	if s.stoppedFlag.Load() || ev.Type != EventClick {
		return nil
	}
	target := ev.Feature
	if target != nil && !s.layer.Features().Has(target) {
		target = nil
	}

	if ev.Modifiers&ModShift != 0 {
		if target == nil {
			return nil
		}
		s.toggle(target)
	} else {
		if target == nil {
			if len(s.selection) == 0 {
				return nil
			}
			s.selection = nil
		} else {
			if len(s.selection) == 1 && s.selection[0] == target {
				return nil
			}
			s.selection = []*Feature{target}
		}
	}
	s.SelectionChanged.Fire(s.selection)
	ev.StopPropagation = true
	return nil
}

// toggle flips f's membership in the selection.
func (s *SelectFeaturesSession) toggle(f *Feature) {
	for i, cur := range s.selection {
		if cur == f {
			copy(s.selection[i:], s.selection[i+1:])
			s.selection[len(s.selection)-1] = nil
			s.selection = s.selection[:len(s.selection)-1]
			return
		}
	}
	s.selection = append(s.selection, f)
}
