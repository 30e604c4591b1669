package geoscribe

import (
	"context"
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r3"
)

// extrudeHandler drives vertical extrusion on a 3D map. The drag is
// constrained to the up-axis handle; the height delta comes from the
// backend's camera ray/plane intersection. On drag end the accumulated
// delta is written to the extruded-height property, the altitude mode is
// forced absolute, and the base geometry is snapped onto terrain by an
// asynchronous height lookup.
//
// The terrain continuation re-enters through post, so it runs strictly after
// the triggering drag end has been fully processed, and it checks the
// generation counter first — a sample resolving after the session died is
// silently discarded.
type extrudeHandler struct {
	handlerBase
	terrain TerrainMap
	post    func(func())
	alive   func() bool

	gen         atomic.Uint64
	baseHeights []float64
	handleBase  []r3.Vec
}

func (h *extrudeHandler) Mode() TransformationMode {
	return ModeExtrude
}

func (h *extrudeHandler) Setup(scratch *ScratchLayer, features []*Feature) {
	h.setup(scratch, features)
	h.placeHandles(AxisZ)
}

func (h *extrudeHandler) Begin(axis AxisName, start *PointerEvent) {
	h.begin(axis, start)
	h.handleBase = h.handlePositions()
	h.baseHeights = h.baseHeights[:0]
	for _, f := range h.features {
		h.baseHeights = append(h.baseHeights, extrudedHeight(f))
	}
}

func (h *extrudeHandler) Apply(current *PointerEvent) {
	if !h.dragging || h.terrain == nil {
		return
	}
	dh := h.terrain.VerticalDragDelta(&h.start, current)
	for i, f := range h.features {
		f.SetProperty(PropExtrudedHeight, h.baseHeights[i]+dh)
	}
	h.moveHandles(h.handleBase, r3.Vec{Z: dh})
}

func (h *extrudeHandler) End(ctx context.Context, current *PointerEvent) {
	if !h.dragging {
		return
	}
	h.Apply(current)
	features := append([]*Feature(nil), h.features...)
	h.end()

	for _, f := range features {
		f.SetProperty(PropAltitudeMode, AltitudeAbsolute)
	}
	h.snapToTerrain(ctx, features)
}

func (h *extrudeHandler) Dispose() {
	h.gen.Add(1) // invalidate any in-flight terrain sample
	h.dispose()
}

// snapToTerrain samples terrain height under every base coordinate on a
// separate goroutine and applies the resolved Z values once the dispatcher
// is free, provided the handler generation still matches.
func (h *extrudeHandler) snapToTerrain(ctx context.Context, features []*Feature) {
	if h.terrain == nil {
		return
	}
	gen := h.gen.Load()
	terrain := h.terrain

	var coords []r3.Vec
	counts := make([]int, len(features))
	for i, f := range features {
		fc := f.Geometry().Coordinates()
		counts[i] = len(fc)
		coords = append(coords, fc...)
	}

	// The sample outlives the drag event that triggered it.
	sampleCtx := context.WithoutCancel(ctx)
	go func() {
		sampled, err := terrain.HeightFromTerrain(sampleCtx, coords)
		if err != nil || len(sampled) != len(coords) {
			return
		}
		h.post(func() {
			if h.gen.Load() != gen || (h.alive != nil && !h.alive()) {
				return
			}
			idx := 0
			for i, f := range features {
				fc := f.Geometry().Coordinates()
				for j := 0; j < counts[i] && j < len(fc); j++ {
					fc[j].Z = sampled[idx+j].Z
				}
				idx += counts[i]
			}
		})
	}()
}

// extrudedHeight reads the feature's current extrusion, defaulting to 0.
func extrudedHeight(f *Feature) float64 {
	v, ok := f.Property(PropExtrudedHeight)
	if !ok {
		return 0
	}
	height, _ := v.(float64)
	return height
}
