package geoscribe

import (
	"context"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// TransformationHandler is the per-mode geometry+math unit behind an
// edit-features session. Setup positions the mode's axis/plane handles on the
// scratch layer; Begin captures the drag reference state; every Apply
// recomputes the transform from that reference (never incrementally from the
// previous drag event, to avoid compounding floating-point error); End clears
// the reference state.
type TransformationHandler interface {
	Mode() TransformationMode

	// Setup recomputes the pivot from the combined bounding box of the
	// feature set and (re)creates the mode's handles on the scratch layer.
	Setup(scratch *ScratchLayer, features []*Feature)

	// Begin captures the reference state for a drag on the given handle axis.
	Begin(axis AxisName, start *PointerEvent)

	// Apply recomputes the transform from the reference captured by Begin
	// and rewrites the feature geometries. No-op if no drag is active.
	Apply(current *PointerEvent)

	// End clears the reference state. The extrude handler additionally
	// finalizes the feature's extrusion properties here.
	End(ctx context.Context, end *PointerEvent)

	// Dragging reports whether a drag reference is currently held.
	Dragging() bool

	// Dispose removes the handler's handles and drops all references.
	Dispose()
}

// newHandlerForMode instantiates the handler for a mode against the given
// map backend. post serializes async continuations through the event
// dispatcher; alive reports whether the owning session is still live.
// The caller must have validated mode against the map already.
func newHandlerForMode(mode TransformationMode, m Map, post func(func()), alive func() bool) TransformationHandler {
	switch mode {
	case ModeTranslate:
		return &translateHandler{handlerBase: handlerBase{activeMap: m}}
	case ModeRotate:
		return &rotateHandler{handlerBase: handlerBase{activeMap: m}}
	case ModeScale:
		return &scaleHandler{handlerBase: handlerBase{activeMap: m}}
	case ModeExtrude:
		terrain, _ := m.(TerrainMap)
		return &extrudeHandler{
			handlerBase: handlerBase{activeMap: m},
			terrain:     terrain,
			post:        post,
			alive:       alive,
		}
	default:
		panic("geoscribe: unknown transformation mode")
	}
}

// handlerBase carries the state shared by all four handlers.
type handlerBase struct {
	activeMap Map
	scratch   *ScratchLayer
	features  []*Feature
	pivot     r3.Vec
	handles   []*Feature

	// Drag reference state, valid between Begin and End.
	dragging  bool
	axis      AxisName
	start     PointerEvent
	snapshots [][]r3.Vec
}

// Dragging reports whether a drag reference is currently held.
func (h *handlerBase) Dragging() bool {
	return h.dragging
}

// setup computes the pivot and remembers the feature set and scratch layer.
// Mode implementations call this before placing their handles. Any live drag
// reference is cleared: snapshots taken against the previous set must never
// be applied to the new one.
func (h *handlerBase) setup(scratch *ScratchLayer, features []*Feature) {
	h.end()
	h.removeHandles()
	h.scratch = scratch
	h.features = features
	if min, max, ok := combinedBounds(features); ok {
		h.pivot = boundsCenter(min, max)
	} else {
		h.pivot = r3.Vec{}
	}
}

// begin captures the drag axis, a copy of the start event, and a deep
// snapshot of every feature's coordinates.
func (h *handlerBase) begin(axis AxisName, start *PointerEvent) {
	h.dragging = true
	h.axis = axis
	h.start = *start
	h.snapshots = h.snapshots[:0]
	for _, f := range h.features {
		coords := f.Geometry().Coordinates()
		snap := make([]r3.Vec, len(coords))
		copy(snap, coords)
		h.snapshots = append(h.snapshots, snap)
	}
}

// end clears the drag reference state.
func (h *handlerBase) end() {
	h.dragging = false
	h.axis = AxisNone
	h.snapshots = h.snapshots[:0]
}

// applyFromSnapshot rewrites every coordinate of every feature as
// fn(reference coordinate). Called on each drag event.
func (h *handlerBase) applyFromSnapshot(fn func(r3.Vec) r3.Vec) {
	for i, f := range h.features {
		coords := f.Geometry().Coordinates()
		snap := h.snapshots[i]
		for j := range coords {
			coords[j] = fn(snap[j])
		}
	}
}

// placeHandles replaces the handler's handles with one per given axis,
// offset from the pivot along that axis (plane handles sit on the diagonal).
func (h *handlerBase) placeHandles(axes ...AxisName) {
	h.removeHandles()
	if len(h.features) == 0 || h.scratch == nil {
		return
	}
	dist := h.handleDistance()
	for _, axis := range axes {
		pos := r3.Add(h.pivot, r3.Scale(dist, handleOffsetDir(axis)))
		handle := newHandle(axis, pos)
		h.handles = append(h.handles, handle)
		h.scratch.add(handle)
	}
}

// moveHandles offsets every handle by d (used by translate during a drag so
// the gizmo follows the selection).
func (h *handlerBase) moveHandles(base []r3.Vec, d r3.Vec) {
	for i, handle := range h.handles {
		setVertexPosition(handle, r3.Add(base[i], d))
	}
}

// handlePositions returns the current handle coordinates.
func (h *handlerBase) handlePositions() []r3.Vec {
	positions := make([]r3.Vec, len(h.handles))
	for i, handle := range h.handles {
		positions[i] = vertexPosition(handle)
	}
	return positions
}

// removeHandles detaches all handles from the scratch layer.
func (h *handlerBase) removeHandles() {
	if h.scratch != nil {
		h.scratch.features.Remove(h.handles...)
	}
	h.handles = nil
}

// dispose drops all references.
func (h *handlerBase) dispose() {
	h.removeHandles()
	h.scratch = nil
	h.features = nil
	h.end()
}

// handleDistance derives the gizmo size from the selection's extent.
func (h *handlerBase) handleDistance() float64 {
	min, max, ok := combinedBounds(h.features)
	if !ok {
		return 1
	}
	diag := r3.Norm(r3.Sub(max, min))
	if diag < 4 {
		return 1
	}
	return diag / 4
}

// axisEpsilon is the reference magnitude below which scale and rotate treat
// a drag event as degenerate and apply no transform.
const axisEpsilon = 1e-9

// axisUnit returns the unit vector for a single-axis handle.
func axisUnit(axis AxisName) r3.Vec {
	switch axis {
	case AxisX:
		return r3.Vec{X: 1}
	case AxisY:
		return r3.Vec{Y: 1}
	case AxisZ:
		return r3.Vec{Z: 1}
	default:
		return r3.Vec{}
	}
}

// handleOffsetDir returns the direction a handle sits from the pivot.
// Plane handles sit on the normalized diagonal of their plane.
func handleOffsetDir(axis AxisName) r3.Vec {
	inv := 1 / math.Sqrt2
	switch axis {
	case AxisXY:
		return r3.Vec{X: inv, Y: inv}
	case AxisXZ:
		return r3.Vec{X: inv, Z: inv}
	case AxisYZ:
		return r3.Vec{Y: inv, Z: inv}
	default:
		return axisUnit(axis)
	}
}

// constrainToAxis projects a delta vector onto the axis or plane of the
// dragged handle.
func constrainToAxis(d r3.Vec, axis AxisName) r3.Vec {
	switch axis {
	case AxisX:
		return r3.Vec{X: d.X}
	case AxisY:
		return r3.Vec{Y: d.Y}
	case AxisZ:
		return r3.Vec{Z: d.Z}
	case AxisXY:
		return r3.Vec{X: d.X, Y: d.Y}
	case AxisXZ:
		return r3.Vec{X: d.X, Z: d.Z}
	case AxisYZ:
		return r3.Vec{Y: d.Y, Z: d.Z}
	default:
		return d
	}
}

// angleAbout returns the angle of v about the given axis, measured on the
// plane orthogonal to it. ok is false when the in-plane component of v is
// too small to define an angle.
func angleAbout(axis AxisName, v r3.Vec) (float64, bool) {
	var a, b float64
	switch axis {
	case AxisZ:
		a, b = v.X, v.Y
	case AxisX:
		a, b = v.Y, v.Z
	case AxisY:
		a, b = v.Z, v.X
	default:
		return 0, false
	}
	if math.Hypot(a, b) < axisEpsilon {
		return 0, false
	}
	return math.Atan2(b, a), true
}
