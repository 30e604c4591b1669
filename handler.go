package geoscribe

import (
	"context"
	"sync"
)

// EventHandler routes pointer events to the exclusive interaction chain and
// guarantees at most one chain owns pointer events at a time.
//
// Dispatch is serialized: HandleEvent for a given event completes — including
// any work the chain triggers in shared state — before the next event is
// admitted. Async continuations (terrain sampling) re-enter through the same
// lock via post, so they can never interleave with a drag sequence.
type EventHandler struct {
	dispatchMu sync.Mutex

	exclusive   *InteractionChain
	exclusiveID string
	onRemoved   func()
}

// NewEventHandler creates an EventHandler with no exclusive chain.
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// AddExclusiveInteraction makes chain the sole receiver of pointer events.
// If another chain currently holds exclusivity, it is revoked first and its
// onRemoved callback is invoked — sessions register their own Stop there, so
// a forced revocation always tears the previous owner down cleanly.
//
// The returned function relinquishes exclusivity. Relinquishing does not
// invoke the chain's own onRemoved; only revocation by a new owner does.
func (h *EventHandler) AddExclusiveInteraction(chain *InteractionChain, onRemoved func(), id string) func() {
	if chain == nil {
		panic("geoscribe: cannot add nil interaction chain")
	}
	prevRemoved := h.onRemoved
	prevID := h.exclusiveID

	h.exclusive = chain
	h.exclusiveID = id
	h.onRemoved = onRemoved

	if prevRemoved != nil && prevID != id {
		prevRemoved()
	}

	return func() {
		if h.exclusiveID == id {
			h.exclusive = nil
			h.exclusiveID = ""
			h.onRemoved = nil
		}
	}
}

// ExclusiveID returns the owner ID of the current exclusive chain, or "".
func (h *EventHandler) ExclusiveID() string {
	return h.exclusiveID
}

// HandleEvent pipes ev through the exclusive chain, if any. The call blocks
// until the event has been fully processed; queued events from other
// goroutines are admitted one at a time.
func (h *EventHandler) HandleEvent(ctx context.Context, ev *PointerEvent) error {
	h.dispatchMu.Lock()
	defer h.dispatchMu.Unlock()
	if h.exclusive == nil {
		return nil
	}
	return h.exclusive.Pipe(ctx, ev)
}

// post runs fn under the dispatch lock, strictly after any in-flight
// HandleEvent has completed. Async continuations use this to apply their
// results without racing a subsequent drag sequence.
func (h *EventHandler) post(fn func()) {
	h.dispatchMu.Lock()
	defer h.dispatchMu.Unlock()
	fn()
}
