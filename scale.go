package geoscribe

import (
	"context"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// scaleHandler stretches every coordinate of every selected feature along the
// dragged handle's axis only, about the pivot. Orthogonal axes stay at
// factor 1. The factor is the ratio of the current to the reference axis
// projection; projections are signed, so dragging through the pivot mirrors
// the selection.
type scaleHandler struct {
	handlerBase
	refDist    float64
	degenerate bool // zero reference projection; every event is a no-op
}

func (h *scaleHandler) Mode() TransformationMode {
	return ModeScale
}

func (h *scaleHandler) Setup(scratch *ScratchLayer, features []*Feature) {
	h.setup(scratch, features)
	if is3D(h.activeMap) {
		h.placeHandles(AxisX, AxisY, AxisZ)
	} else {
		h.placeHandles(AxisX, AxisY)
	}
}

func (h *scaleHandler) Begin(axis AxisName, start *PointerEvent) {
	h.begin(axis, start)
	h.refDist = r3.Dot(r3.Sub(start.Position, h.pivot), axisUnit(axis))
	h.degenerate = math.Abs(h.refDist) < axisEpsilon
}

func (h *scaleHandler) Apply(current *PointerEvent) {
	if !h.dragging || h.degenerate {
		return
	}
	u := axisUnit(h.axis)
	cur := r3.Dot(r3.Sub(current.Position, h.pivot), u)
	factor := cur / h.refDist
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	pivot := h.pivot
	h.applyFromSnapshot(func(ref r3.Vec) r3.Vec {
		w := r3.Sub(ref, pivot)
		return r3.Add(ref, r3.Scale((factor-1)*r3.Dot(w, u), u))
	})
}

func (h *scaleHandler) End(_ context.Context, current *PointerEvent) {
	if !h.dragging {
		return
	}
	h.Apply(current)
	h.end()
	h.degenerate = false
}

func (h *scaleHandler) Dispose() {
	h.dispose()
}
