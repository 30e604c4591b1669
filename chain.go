package geoscribe

import "context"

// Interaction processes pointer events. Implementations mutate the event
// and the geometry it refers to directly; they must not retain the event
// past the call.
type Interaction interface {
	HandleEvent(ctx context.Context, ev *PointerEvent) error
}

// InteractionChain composes an ordered list of interactions and feeds one
// event through all of them sequentially. A chain is itself an Interaction,
// so chains nest.
type InteractionChain struct {
	interactions []Interaction
}

// NewInteractionChain creates a chain from the given interactions, in order.
func NewInteractionChain(interactions ...Interaction) *InteractionChain {
	return &InteractionChain{interactions: interactions}
}

// Add appends an interaction to the end of the chain.
// Panics if the interaction is nil.
func (c *InteractionChain) Add(i Interaction) {
	if i == nil {
		panic("geoscribe: cannot add nil interaction")
	}
	c.interactions = append(c.interactions, i)
}

// Remove detaches an interaction from the chain. No-op if absent.
func (c *InteractionChain) Remove(i Interaction) {
	for idx, cur := range c.interactions {
		if cur == i {
			copy(c.interactions[idx:], c.interactions[idx+1:])
			c.interactions[len(c.interactions)-1] = nil
			c.interactions = c.interactions[:len(c.interactions)-1]
			return
		}
	}
}

// Clear removes every interaction from the chain.
func (c *InteractionChain) Clear() {
	for i := range c.interactions {
		c.interactions[i] = nil
	}
	c.interactions = c.interactions[:0]
}

// Len returns the number of interactions in the chain.
func (c *InteractionChain) Len() int {
	return len(c.interactions)
}

// Pipe feeds ev through each interaction in chain order, waiting for each to
// complete before invoking the next. Any interaction may set
// ev.StopPropagation to halt the chain for this event. The first error aborts
// the chain.
func (c *InteractionChain) Pipe(ctx context.Context, ev *PointerEvent) error {
	for _, i := range c.interactions {
		if ev.StopPropagation {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := i.HandleEvent(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// HandleEvent makes InteractionChain an Interaction.
func (c *InteractionChain) HandleEvent(ctx context.Context, ev *PointerEvent) error {
	return c.Pipe(ctx, ev)
}

// InteractionFunc adapts a plain function to the Interaction interface.
type InteractionFunc func(ctx context.Context, ev *PointerEvent) error

// HandleEvent calls f.
func (f InteractionFunc) HandleEvent(ctx context.Context, ev *PointerEvent) error {
	return f(ctx, ev)
}
