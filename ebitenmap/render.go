package ebitenmap

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/geoscribe/geoscribe"
)

// --- Renderer ---

// Renderer draws vector layers and the active session's scratch layer onto an
// ebiten image. Features being authored (create-sync flag set) render in the
// sketch color; vertices and transformation handles pulse so they read as
// grabbable.
type Renderer struct {
	view *PlanarMap

	// Handle pulse animation.
	pulse        *gween.Tween
	pulseGrowing bool
	pulseRadius  float32

	FeatureColor color.RGBA
	SketchColor  color.RGBA
	VertexColor  color.RGBA
	StrokeWidth  float32
}

// NewRenderer creates a renderer over the given view with default styling.
func NewRenderer(view *PlanarMap) *Renderer {
	return &Renderer{
		view:         view,
		pulse:        gween.New(4, 7, 0.6, ease.InOutQuad),
		pulseGrowing: true,
		pulseRadius:  4,
		FeatureColor: color.RGBA{R: 0x41, G: 0x69, B: 0xe1, A: 0xff},
		SketchColor:  color.RGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff},
		VertexColor:  color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		StrokeWidth:  2,
	}
}

// Update advances the handle pulse. dt is the frame delta in seconds.
func (r *Renderer) Update(dt float32) {
	v, finished := r.pulse.Update(dt)
	r.pulseRadius = v
	if finished {
		if r.pulseGrowing {
			r.pulse = gween.New(7, 4, 0.6, ease.InOutQuad)
		} else {
			r.pulse = gween.New(4, 7, 0.6, ease.InOutQuad)
		}
		r.pulseGrowing = !r.pulseGrowing
	}
}

// DrawLayer renders every feature of a vector layer.
func (r *Renderer) DrawLayer(dst *ebiten.Image, layer *geoscribe.VectorLayer) {
	if !layer.Visible {
		return
	}
	for _, f := range layer.Features().All() {
		clr := r.FeatureColor
		if _, sketching := f.Property(geoscribe.PropCreateSync); sketching {
			clr = r.SketchColor
		}
		r.drawGeometry(dst, f.Geometry(), clr)
	}
}

// DrawScratch renders the session scratch layer: vertices and transformation
// handles on top of everything else.
func (r *Renderer) DrawScratch(dst *ebiten.Image, scratch *geoscribe.ScratchLayer) {
	if scratch == nil || scratch.IsDestroyed() {
		return
	}
	for _, f := range scratch.Features().All() {
		sx, sy := r.view.WorldToScreen(f.Geometry().Coordinate(0))
		if axis, ok := geoscribe.HandleAxis(f); ok {
			vector.DrawFilledCircle(dst, float32(sx), float32(sy), r.pulseRadius, axisColor(axis), true)
			vector.StrokeCircle(dst, float32(sx), float32(sy), r.pulseRadius+2, 1, r.VertexColor, true)
			continue
		}
		vector.DrawFilledCircle(dst, float32(sx), float32(sy), 4, r.VertexColor, true)
		vector.StrokeCircle(dst, float32(sx), float32(sy), 5, 1, r.FeatureColor, true)
	}
}

// axisColor maps handle axes to the conventional gizmo colors.
func axisColor(axis geoscribe.AxisName) color.RGBA {
	switch axis {
	case geoscribe.AxisX:
		return color.RGBA{R: 0xe5, G: 0x48, B: 0x3b, A: 0xff}
	case geoscribe.AxisY:
		return color.RGBA{R: 0x3e, G: 0xb4, B: 0x89, A: 0xff}
	case geoscribe.AxisZ:
		return color.RGBA{R: 0x3b, G: 0x82, B: 0xe5, A: 0xff}
	default:
		// Plane handles.
		return color.RGBA{R: 0xe5, G: 0xc0, B: 0x3b, A: 0xff}
	}
}

// drawGeometry renders one geometry according to its type.
func (r *Renderer) drawGeometry(dst *ebiten.Image, g *geoscribe.Geometry, clr color.RGBA) {
	coords := g.Coordinates()
	if len(coords) == 0 {
		return
	}
	switch g.Type() {
	case geoscribe.GeometryPoint:
		sx, sy := r.view.WorldToScreen(coords[0])
		vector.DrawFilledCircle(dst, float32(sx), float32(sy), 5, clr, true)

	case geoscribe.GeometryLineString:
		r.strokePolyline(dst, g, false, clr)

	case geoscribe.GeometryPolygon:
		r.strokePolyline(dst, g, true, clr)

	case geoscribe.GeometryCircle:
		cx, cy := r.view.WorldToScreen(coords[0])
		if len(coords) < 2 {
			vector.DrawFilledCircle(dst, float32(cx), float32(cy), 5, clr, true)
			return
		}
		rx, ry := r.view.WorldToScreen(coords[1])
		radius := math.Hypot(rx-cx, ry-cy)
		vector.StrokeCircle(dst, float32(cx), float32(cy), float32(radius), r.StrokeWidth, clr, true)

	case geoscribe.GeometryBBox:
		ax, ay := r.view.WorldToScreen(coords[0])
		if len(coords) < 2 {
			vector.DrawFilledCircle(dst, float32(ax), float32(ay), 5, clr, true)
			return
		}
		bx, by := r.view.WorldToScreen(coords[1])
		x := float32(math.Min(ax, bx))
		y := float32(math.Min(ay, by))
		w := float32(math.Abs(bx - ax))
		h := float32(math.Abs(by - ay))
		vector.StrokeRect(dst, x, y, w, h, r.StrokeWidth, clr, true)
	}
}

// strokePolyline draws the segments of a line or ring.
func (r *Renderer) strokePolyline(dst *ebiten.Image, g *geoscribe.Geometry, closed bool, clr color.RGBA) {
	coords := g.Coordinates()
	n := len(coords)
	if n == 1 {
		sx, sy := r.view.WorldToScreen(coords[0])
		vector.DrawFilledCircle(dst, float32(sx), float32(sy), 3, clr, true)
		return
	}
	for i := 0; i < n-1; i++ {
		ax, ay := r.view.WorldToScreen(coords[i])
		bx, by := r.view.WorldToScreen(coords[i+1])
		vector.StrokeLine(dst, float32(ax), float32(ay), float32(bx), float32(by), r.StrokeWidth, clr, true)
	}
	if closed && n > 2 {
		ax, ay := r.view.WorldToScreen(coords[n-1])
		bx, by := r.view.WorldToScreen(coords[0])
		vector.StrokeLine(dst, float32(ax), float32(ay), float32(bx), float32(by), r.StrokeWidth, clr, true)
	}
}
