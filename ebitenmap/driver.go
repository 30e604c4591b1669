package ebitenmap

import (
	"context"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/geoscribe/geoscribe"
)

// --- Constants ---

const (
	defaultDragDeadZone = 4.0 // pixels
	defaultPickRadius   = 8.0 // pixels
	doubleClickInterval = 350 * time.Millisecond
)

// --- Driver ---

// Driver polls ebiten's mouse state once per frame and converts it into the
// pointer-event stream the session engine consumes: down/up/move, click and
// double click, and drag start/drag/drag end gated by a dead zone.
//
// Picking runs in world space against the active session's scratch layer
// first (vertices and handles always win), then the registered vector layers
// topmost first, honoring each feature's allow-picking flag.
type Driver struct {
	handler *geoscribe.EventHandler
	view    *PlanarMap
	layers  []*geoscribe.VectorLayer
	scratch func() *geoscribe.ScratchLayer

	dragDeadZone float64
	pickRadius   float64

	// Pointer state machine. Mouse only; the planar backend has no touch.
	down     bool
	dragging bool
	button   geoscribe.MouseButton
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	target   *geoscribe.Feature // feature hit at press time

	lastClickAt time.Time
	lastClickX  float64
	lastClickY  float64
}

// NewDriver creates a driver feeding handler with events picked against the
// given layers (bottom to top).
func NewDriver(handler *geoscribe.EventHandler, view *PlanarMap, layers ...*geoscribe.VectorLayer) *Driver {
	return &Driver{
		handler:      handler,
		view:         view,
		layers:       layers,
		dragDeadZone: defaultDragDeadZone,
		pickRadius:   defaultPickRadius,
	}
}

// SetScratchProvider registers a callback returning the active session's
// scratch layer, or nil when no session is running. Scratch features take
// picking precedence over layer features.
func (d *Driver) SetScratchProvider(fn func() *geoscribe.ScratchLayer) {
	d.scratch = fn
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (d *Driver) SetDragDeadZone(pixels float64) {
	d.dragDeadZone = pixels
}

// SetPickRadius sets the hit-test tolerance in pixels.
func (d *Driver) SetPickRadius(pixels float64) {
	d.pickRadius = pixels
}

// Update reads the current mouse state and advances the pointer state
// machine. Call once per ebiten Update tick.
func (d *Driver) Update(ctx context.Context) error {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button geoscribe.MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		if left {
			button = geoscribe.MouseButtonLeft
		} else if right {
			button = geoscribe.MouseButtonRight
		} else {
			button = geoscribe.MouseButtonMiddle
		}
	}

	return d.step(ctx, float64(mx), float64(my), pressed, button, readModifiers())
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() geoscribe.KeyModifiers {
	var mods geoscribe.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= geoscribe.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= geoscribe.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= geoscribe.ModAlt
	}
	return mods
}

// step runs the pointer state machine for one frame of input.
func (d *Driver) step(ctx context.Context, sx, sy float64, pressed bool, button geoscribe.MouseButton, mods geoscribe.KeyModifiers) error {
	switch {
	case pressed && !d.down:
		// Just pressed. Capture the button and target for the whole
		// interaction.
		d.down = true
		d.dragging = false
		d.button = button
		d.startX, d.startY = sx, sy
		d.lastX, d.lastY = sx, sy
		d.target = d.pickAt(sx, sy)
		return d.fire(ctx, geoscribe.EventDown, sx, sy, d.target, mods)

	case !pressed && d.down:
		// Just released.
		d.down = false
		if d.dragging {
			d.dragging = false
			return d.fire(ctx, geoscribe.EventDragEnd, sx, sy, d.target, mods)
		}
		if err := d.fire(ctx, geoscribe.EventClick, sx, sy, d.target, mods); err != nil {
			return err
		}
		now := time.Now()
		if now.Sub(d.lastClickAt) < doubleClickInterval &&
			math.Hypot(sx-d.lastClickX, sy-d.lastClickY) <= d.dragDeadZone {
			d.lastClickAt = time.Time{} // a triple click is two doubles, not three
			if err := d.fire(ctx, geoscribe.EventDblClick, sx, sy, d.target, mods); err != nil {
				return err
			}
		} else {
			d.lastClickAt = now
			d.lastClickX, d.lastClickY = sx, sy
		}
		return d.fire(ctx, geoscribe.EventUp, sx, sy, d.target, mods)

	case pressed && d.down:
		// Held, possibly moving.
		if sx == d.lastX && sy == d.lastY {
			return nil
		}
		d.lastX, d.lastY = sx, sy
		if !d.dragging {
			if math.Hypot(sx-d.startX, sy-d.startY) <= d.dragDeadZone {
				return nil
			}
			d.dragging = true
			return d.fire(ctx, geoscribe.EventDragStart, sx, sy, d.target, mods)
		}
		return d.fire(ctx, geoscribe.EventDrag, sx, sy, nil, mods)

	default:
		// Hover move.
		if sx == d.lastX && sy == d.lastY {
			return nil
		}
		d.lastX, d.lastY = sx, sy
		return d.fire(ctx, geoscribe.EventMove, sx, sy, d.pickAt(sx, sy), mods)
	}
}

// fire builds a pointer event and hands it to the dispatcher.
func (d *Driver) fire(ctx context.Context, typ geoscribe.EventType, sx, sy float64, target *geoscribe.Feature, mods geoscribe.KeyModifiers) error {
	ev := &geoscribe.PointerEvent{
		Type:      typ,
		Button:    d.button,
		Modifiers: mods,
		Position:  d.view.ScreenToWorld(sx, sy),
		Pixel:     geoscribe.Vec2{X: sx, Y: sy},
		Feature:   target,
		Map:       d.view,
	}
	return d.handler.HandleEvent(ctx, ev)
}

// --- Picking ---

// pickAt returns the topmost feature under the given screen position, or nil.
// Scratch features (vertices and handles) beat layer features; within the
// layers, later layers and later features sit on top.
func (d *Driver) pickAt(sx, sy float64) *geoscribe.Feature {
	world := d.view.ScreenToWorld(sx, sy)
	tol := d.pickRadius / d.view.Scale()

	if d.scratch != nil {
		if layer := d.scratch(); layer != nil && !layer.IsDestroyed() {
			all := layer.Features().All()
			for i := len(all) - 1; i >= 0; i-- {
				if hitFeature(all[i], world, tol) {
					return all[i]
				}
			}
		}
	}

	for li := len(d.layers) - 1; li >= 0; li-- {
		layer := d.layers[li]
		if !layer.Visible {
			continue
		}
		all := layer.Features().All()
		for i := len(all) - 1; i >= 0; i-- {
			f := all[i]
			if !f.AllowPicking() {
				continue
			}
			if hitFeature(f, world, tol) {
				return f
			}
		}
	}
	return nil
}

// hitFeature tests a world position against a feature's geometry with the
// given tolerance, using the ground-plane (XY) distance.
func hitFeature(f *geoscribe.Feature, p r3.Vec, tol float64) bool {
	g := f.Geometry()
	coords := g.Coordinates()
	if len(coords) == 0 {
		return false
	}
	switch g.Type() {
	case geoscribe.GeometryPoint:
		return planarDist(p, coords[0]) <= tol
	case geoscribe.GeometryLineString:
		return polylineHit(coords, p, tol, false)
	case geoscribe.GeometryPolygon:
		return polylineHit(coords, p, tol, true) || pointInRing(coords, p)
	case geoscribe.GeometryCircle:
		if len(coords) < 2 {
			return planarDist(p, coords[0]) <= tol
		}
		r := planarDist(coords[0], coords[1])
		return math.Abs(planarDist(p, coords[0])-r) <= tol || planarDist(p, coords[0]) < r
	case geoscribe.GeometryBBox:
		if len(coords) < 2 {
			return planarDist(p, coords[0]) <= tol
		}
		minX := math.Min(coords[0].X, coords[1].X) - tol
		maxX := math.Max(coords[0].X, coords[1].X) + tol
		minY := math.Min(coords[0].Y, coords[1].Y) - tol
		maxY := math.Max(coords[0].Y, coords[1].Y) + tol
		return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
	default:
		return false
	}
}

// planarDist is the XY-plane distance between two coordinates.
func planarDist(a, b r3.Vec) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// polylineHit tests p against every segment of a polyline, optionally closing
// the ring.
func polylineHit(coords []r3.Vec, p r3.Vec, tol float64, closed bool) bool {
	n := len(coords)
	if n == 1 {
		return planarDist(p, coords[0]) <= tol
	}
	for i := 0; i < n-1; i++ {
		if segmentDist(coords[i], coords[i+1], p) <= tol {
			return true
		}
	}
	if closed && n > 2 && segmentDist(coords[n-1], coords[0], p) <= tol {
		return true
	}
	return false
}

// segmentDist is the XY-plane distance from p to the segment a-b.
func segmentDist(a, b, p r3.Vec) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	apx, apy := p.X-a.X, p.Y-a.Y
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return planarDist(p, a)
	}
	t := (apx*abx + apy*aby) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*abx), p.Y-(a.Y+t*aby))
}

// pointInRing is an even-odd test of p against a closed ring on the XY plane.
func pointInRing(coords []r3.Vec, p r3.Vec) bool {
	n := len(coords)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := coords[i], coords[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
		j = i
	}
	return inside
}
