package ebitenmap

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/geoscribe/geoscribe"
)

func TestPlanarMapType(t *testing.T) {
	m := NewPlanarMap()
	if m.Type() != geoscribe.Map2D {
		t.Errorf("Type() = %v, want Map2D", m.Type())
	}
	if m.Name() == "" {
		t.Error("Name() is empty")
	}
}

func TestPlanarMapRoundTrip(t *testing.T) {
	m := NewPlanarMap()
	m.SetScale(16)
	m.Pan(-40, 24)

	tests := []struct{ sx, sy float64 }{
		{0, 0},
		{320, 240},
		{-5.5, 999.25},
	}
	for _, tt := range tests {
		world := m.ScreenToWorld(tt.sx, tt.sy)
		gx, gy := m.WorldToScreen(world)
		if math.Abs(gx-tt.sx) > 1e-9 || math.Abs(gy-tt.sy) > 1e-9 {
			t.Errorf("round trip of (%v, %v) = (%v, %v)", tt.sx, tt.sy, gx, gy)
		}
	}
}

func TestPlanarMapScale(t *testing.T) {
	m := NewPlanarMap()
	m.SetScale(10)

	// 10 pixels per unit: 20 pixels right is 2 world units.
	a := m.ScreenToWorld(0, 0)
	b := m.ScreenToWorld(20, 0)
	if got := b.X - a.X; math.Abs(got-2) > 1e-9 {
		t.Errorf("20 px = %v world units, want 2", got)
	}

	m.SetScale(0) // ignored
	if m.Scale() != 10 {
		t.Errorf("Scale() = %v after SetScale(0), want 10", m.Scale())
	}
}

func TestPlanarMapPan(t *testing.T) {
	m := NewPlanarMap()
	m.SetScale(10)
	before := m.ScreenToWorld(100, 100)

	// Panning the view 50 px right shows world content 5 units to the left.
	m.Pan(50, 0)
	after := m.ScreenToWorld(100, 100)

	if got := before.X - after.X; math.Abs(got-5) > 1e-9 {
		t.Errorf("pan shifted world by %v units, want 5", got)
	}
	if after.Y != before.Y {
		t.Errorf("horizontal pan moved Y: %v -> %v", before.Y, after.Y)
	}
}

func TestSegmentDist(t *testing.T) {
	a := r3.Vec{X: 0, Y: 0}
	b := r3.Vec{X: 10, Y: 0}
	tests := []struct {
		p    r3.Vec
		want float64
	}{
		{r3.Vec{X: 5, Y: 3}, 3},
		{r3.Vec{X: -4, Y: 0}, 4},
		{r3.Vec{X: 13, Y: 4}, 5},
		{r3.Vec{X: 10, Y: 0}, 0},
	}
	for _, tt := range tests {
		if got := segmentDist(a, b, tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("segmentDist(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestPointInRing(t *testing.T) {
	ring := []r3.Vec{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	if !pointInRing(ring, r3.Vec{X: 2, Y: 2}) {
		t.Error("center of the square reported outside")
	}
	if pointInRing(ring, r3.Vec{X: 5, Y: 2}) {
		t.Error("point beyond the edge reported inside")
	}
}
