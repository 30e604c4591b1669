package geoscribe

import (
	"context"

	"gonum.org/v1/gonum/spatial/r3"
)

// translateHandler offsets every coordinate of every selected feature by the
// drag vector, constrained to the dragged handle's axis or plane.
type translateHandler struct {
	handlerBase
	handleBase []r3.Vec // handle positions at drag start, so the gizmo follows
	pivotBase  r3.Vec   // pivot at drag start
}

func (h *translateHandler) Mode() TransformationMode {
	return ModeTranslate
}

func (h *translateHandler) Setup(scratch *ScratchLayer, features []*Feature) {
	h.setup(scratch, features)
	if is3D(h.activeMap) {
		h.placeHandles(AxisX, AxisY, AxisZ, AxisXY)
	} else {
		h.placeHandles(AxisX, AxisY, AxisXY)
	}
}

func (h *translateHandler) Begin(axis AxisName, start *PointerEvent) {
	h.begin(axis, start)
	h.handleBase = h.handlePositions()
	h.pivotBase = h.pivot
}

func (h *translateHandler) Apply(current *PointerEvent) {
	if !h.dragging {
		return
	}
	// Delta is recomputed from the drag-start reference on every event; the
	// same applies to the coordinates, which are rewritten from the Begin
	// snapshot rather than offset incrementally.
	delta := constrainToAxis(r3.Sub(current.Position, h.start.Position), h.axis)
	h.applyFromSnapshot(func(ref r3.Vec) r3.Vec {
		return r3.Add(ref, delta)
	})
	h.moveHandles(h.handleBase, delta)
	h.pivot = r3.Add(h.pivotBase, delta) // keep the pivot in step for a following drag
}

func (h *translateHandler) End(_ context.Context, current *PointerEvent) {
	if !h.dragging {
		return
	}
	h.Apply(current)
	h.end()
}

func (h *translateHandler) Dispose() {
	h.dispose()
}
