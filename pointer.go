package geoscribe

import "gonum.org/v1/gonum/spatial/r3"

// PointerEvent carries one pointer interaction through an InteractionChain.
// Interactions mutate the event in place; setting StopPropagation halts the
// chain for this event only.
type PointerEvent struct {
	Type      EventType
	Pointer   int         // pointer slot; 0 is the mouse
	Button    MouseButton // button captured at press time
	Modifiers KeyModifiers

	// Position is the event location in the map's working coordinate space.
	Position r3.Vec
	// Pixel is the raw screen-space location, for backends that cannot
	// resolve a world position (e.g. a drag outside terrain on a globe).
	Pixel Vec2

	// Feature is the topmost pickable feature under the pointer, or nil.
	// Vertices and handles on a scratch layer take precedence over ordinary
	// features.
	Feature *Feature

	// Map is the active map backend the event was captured on.
	Map Map

	// StopPropagation halts the chain for this event when set by an
	// interaction. It does not remove the interaction.
	StopPropagation bool
}
