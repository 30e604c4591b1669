// Package ebitenmap is a planar map backend for geoscribe rendered with
// ebiten. It supplies the screen/world transform, an input driver that turns
// raw mouse state into the pointer-event stream sessions consume, and a
// renderer for features, vertices, and transformation handles.
package ebitenmap

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/geoscribe/geoscribe"
)

// --- Planar map backend ---

// PlanarMap is a flat, screen-aligned 2D map. World X grows right and world Y
// grows down, matching screen axes; the transform is a pan offset plus a
// uniform pixels-per-unit scale.
type PlanarMap struct {
	originX float64 // world coordinate at the top-left screen corner
	originY float64
	scale   float64 // pixels per world unit
}

// NewPlanarMap creates a planar map at origin with 32 pixels per world unit.
func NewPlanarMap() *PlanarMap {
	return &PlanarMap{scale: 32}
}

// Type identifies the backend as planar.
func (m *PlanarMap) Type() geoscribe.MapType {
	return geoscribe.Map2D
}

// Name returns the backend name.
func (m *PlanarMap) Name() string {
	return "ebiten-planar"
}

// Scale returns the current pixels-per-unit scale.
func (m *PlanarMap) Scale() float64 {
	return m.scale
}

// SetScale sets the pixels-per-unit scale. Values <= 0 are ignored.
func (m *PlanarMap) SetScale(s float64) {
	if s > 0 {
		m.scale = s
	}
}

// Pan shifts the view by a screen-space pixel delta.
func (m *PlanarMap) Pan(dxPixels, dyPixels float64) {
	m.originX -= dxPixels / m.scale
	m.originY -= dyPixels / m.scale
}

// ScreenToWorld converts a screen-space pixel position to world coordinates.
func (m *PlanarMap) ScreenToWorld(sx, sy float64) r3.Vec {
	return r3.Vec{
		X: m.originX + sx/m.scale,
		Y: m.originY + sy/m.scale,
	}
}

// WorldToScreen converts a world coordinate to screen-space pixels. Z is
// ignored; the planar backend renders the ground plane only.
func (m *PlanarMap) WorldToScreen(v r3.Vec) (sx, sy float64) {
	return (v.X - m.originX) * m.scale, (v.Y - m.originY) * m.scale
}
