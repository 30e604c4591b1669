package geoscribe

import (
	"context"

	"gonum.org/v1/gonum/spatial/r3"
)

// rotateHandler rotates every coordinate of every selected feature about the
// pivot, on the plane orthogonal to the dragged handle's axis. The rotation
// delta is the difference between the current drag angle and the reference
// angle captured at drag start, so distance to the pivot is invariant.
type rotateHandler struct {
	handlerBase
	refAngle   float64
	degenerate bool // drag started on the pivot; every event is a no-op
}

func (h *rotateHandler) Mode() TransformationMode {
	return ModeRotate
}

func (h *rotateHandler) Setup(scratch *ScratchLayer, features []*Feature) {
	h.setup(scratch, features)
	if is3D(h.activeMap) {
		h.placeHandles(AxisX, AxisY, AxisZ)
	} else {
		// A planar map can only rotate on the ground plane.
		h.placeHandles(AxisZ)
	}
}

func (h *rotateHandler) Begin(axis AxisName, start *PointerEvent) {
	h.begin(axis, start)
	ref, ok := angleAbout(axis, r3.Sub(start.Position, h.pivot))
	h.refAngle = ref
	h.degenerate = !ok
}

func (h *rotateHandler) Apply(current *PointerEvent) {
	if !h.dragging || h.degenerate {
		return
	}
	cur, ok := angleAbout(h.axis, r3.Sub(current.Position, h.pivot))
	if !ok {
		// Pointer passed through the pivot; skip this event, keep the drag.
		return
	}
	rot := r3.NewRotation(cur-h.refAngle, axisUnit(h.axis))
	pivot := h.pivot
	h.applyFromSnapshot(func(ref r3.Vec) r3.Vec {
		return r3.Add(pivot, rot.Rotate(r3.Sub(ref, pivot)))
	})
}

func (h *rotateHandler) End(_ context.Context, current *PointerEvent) {
	if !h.dragging {
		return
	}
	h.Apply(current)
	h.end()
	h.degenerate = false
}

func (h *rotateHandler) Dispose() {
	h.dispose()
}
