package geoscribe

import (
	"context"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

const coordTol = 1e-12

// vecNear reports whether two coordinates agree within coordTol per axis.
func vecNear(a, b r3.Vec) bool {
	return scalar.EqualWithinAbs(a.X, b.X, coordTol) &&
		scalar.EqualWithinAbs(a.Y, b.Y, coordTol) &&
		scalar.EqualWithinAbs(a.Z, b.Z, coordTol)
}

// --- Fake map backends ---

type fakeMap struct {
	typ  MapType
	name string
}

func (m *fakeMap) Type() MapType { return m.typ }
func (m *fakeMap) Name() string  { return m.name }

func newPlanarMap() *fakeMap {
	return &fakeMap{typ: Map2D, name: "planar"}
}

type fakeObliqueMap struct {
	fakeMap
	imageChanged Event[string]
}

func newObliqueMap() *fakeObliqueMap {
	return &fakeObliqueMap{fakeMap: fakeMap{typ: MapOblique, name: "oblique"}}
}

func (m *fakeObliqueMap) ImageChanged() *Event[string] { return &m.imageChanged }

// fakeGlobe is a 3D backend with a flat terrain at terrainZ. Setting release
// makes HeightFromTerrain block until the channel is closed, so tests can
// control when the async sample resolves.
type fakeGlobe struct {
	terrainZ float64
	release  chan struct{}
	sampled  chan struct{} // closed once a sample has been computed
}

func newGlobe(terrainZ float64) *fakeGlobe {
	return &fakeGlobe{terrainZ: terrainZ, sampled: make(chan struct{}, 8)}
}

func (g *fakeGlobe) Type() MapType { return Map3D }
func (g *fakeGlobe) Name() string  { return "globe" }

func (g *fakeGlobe) HeightFromTerrain(ctx context.Context, coords []r3.Vec) ([]r3.Vec, error) {
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	out := make([]r3.Vec, len(coords))
	for i, c := range coords {
		c.Z = g.terrainZ
		out[i] = c
	}
	select {
	case g.sampled <- struct{}{}:
	default:
	}
	return out, nil
}

func (g *fakeGlobe) VerticalDragDelta(start, current *PointerEvent) float64 {
	return current.Position.Z - start.Position.Z
}

// --- Event helpers ---

func sendEvent(t *testing.T, app *App, ev *PointerEvent) {
	t.Helper()
	if err := app.EventHandler.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("HandleEvent(%v) returned error: %v", ev.Type, err)
	}
}

func clickAt(t *testing.T, app *App, pos r3.Vec) {
	t.Helper()
	sendEvent(t, app, &PointerEvent{Type: EventClick, Position: pos, Map: app.Maps.ActiveMap()})
}

// dragHandle runs a full DRAGSTART -> DRAG -> DRAGEND sequence on a handle
// or vertex feature.
func dragHandle(t *testing.T, app *App, target *Feature, from, via, to r3.Vec) {
	t.Helper()
	sendEvent(t, app, &PointerEvent{Type: EventDragStart, Position: from, Feature: target, Map: app.Maps.ActiveMap()})
	sendEvent(t, app, &PointerEvent{Type: EventDrag, Position: via, Map: app.Maps.ActiveMap()})
	sendEvent(t, app, &PointerEvent{Type: EventDragEnd, Position: to, Map: app.Maps.ActiveMap()})
}

// handleWithAxis returns the transformation handle for the given axis from a
// scratch layer.
func handleWithAxis(t *testing.T, scratch *ScratchLayer, axis AxisName) *Feature {
	t.Helper()
	for _, f := range scratch.Features().All() {
		if a, ok := HandleAxis(f); ok && a == axis {
			return f
		}
	}
	t.Fatalf("no handle for axis %v on scratch layer", axis)
	return nil
}

// vertexAt returns the vertex feature for coordinate index idx.
func vertexAt(t *testing.T, scratch *ScratchLayer, idx int) *Feature {
	t.Helper()
	for _, f := range scratch.Features().All() {
		if i, ok := VertexIndex(f); ok && i == idx {
			return f
		}
	}
	t.Fatalf("no vertex for index %d on scratch layer", idx)
	return nil
}

// waitForZ polls the first coordinate of f under the dispatch lock until its
// Z reaches want or the deadline passes.
func waitForZ(t *testing.T, app *App, f *Feature, want float64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var z float64
		app.EventHandler.post(func() {
			z = f.Geometry().Coordinate(0).Z
		})
		if z == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("coordinate Z never reached %v", want)
}
