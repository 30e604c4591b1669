package geoscribe

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Geometry is a mutable, ordered sequence of coordinates interpreted
// according to its type. Sessions mutate coordinates in place during edits.
type Geometry struct {
	typ    GeometryType
	coords []r3.Vec
}

// NewGeometry creates a geometry of the given type with the given
// coordinates. The slice is taken over by the geometry.
func NewGeometry(t GeometryType, coords ...r3.Vec) *Geometry {
	return &Geometry{typ: t, coords: coords}
}

// Type returns the geometry type.
func (g *Geometry) Type() GeometryType {
	return g.typ
}

// Len returns the number of coordinates.
func (g *Geometry) Len() int {
	return len(g.coords)
}

// Coordinates returns the coordinate slice. The returned slice is the live
// backing store; callers outside a session MUST NOT mutate it.
func (g *Geometry) Coordinates() []r3.Vec {
	return g.coords
}

// SetCoordinates replaces the coordinate sequence.
func (g *Geometry) SetCoordinates(coords []r3.Vec) {
	g.coords = coords
}

// Coordinate returns the coordinate at index i.
func (g *Geometry) Coordinate(i int) r3.Vec {
	return g.coords[i]
}

// SetCoordinate replaces the coordinate at index i.
func (g *Geometry) SetCoordinate(i int, v r3.Vec) {
	g.coords[i] = v
}

// AppendCoordinate adds a coordinate to the end of the sequence.
func (g *Geometry) AppendCoordinate(v r3.Vec) {
	g.coords = append(g.coords, v)
}

// RemoveCoordinate removes the coordinate at index i.
func (g *Geometry) RemoveCoordinate(i int) {
	copy(g.coords[i:], g.coords[i+1:])
	g.coords = g.coords[:len(g.coords)-1]
}

// Bounds returns the axis-aligned bounding box of the coordinates.
// ok is false for an empty geometry.
func (g *Geometry) Bounds() (min, max r3.Vec, ok bool) {
	if len(g.coords) == 0 {
		return r3.Vec{}, r3.Vec{}, false
	}
	min, max = g.coords[0], g.coords[0]
	for _, c := range g.coords[1:] {
		min.X = math.Min(min.X, c.X)
		min.Y = math.Min(min.Y, c.Y)
		min.Z = math.Min(min.Z, c.Z)
		max.X = math.Max(max.X, c.X)
		max.Y = math.Max(max.Y, c.Y)
		max.Z = math.Max(max.Z, c.Z)
	}
	return min, max, true
}

// MinPoints returns the minimum coordinate count for a valid geometry of
// this type.
func (t GeometryType) MinPoints() int {
	switch t {
	case GeometryPoint:
		return 1
	case GeometryLineString:
		return 2
	case GeometryPolygon:
		return 3
	case GeometryCircle, GeometryBBox:
		return 2
	default:
		return 1
	}
}

// MaxPoints returns the maximum coordinate count for this type, or -1 when
// unbounded. Creation finishes automatically once the maximum is reached.
func (t GeometryType) MaxPoints() int {
	switch t {
	case GeometryPoint:
		return 1
	case GeometryCircle, GeometryBBox:
		return 2
	default:
		return -1
	}
}

// combinedBounds returns the union bounding box of the features' geometries.
// ok is false when no feature contributes a coordinate.
func combinedBounds(features []*Feature) (min, max r3.Vec, ok bool) {
	for _, f := range features {
		fmin, fmax, fok := f.Geometry().Bounds()
		if !fok {
			continue
		}
		if !ok {
			min, max, ok = fmin, fmax, true
			continue
		}
		min.X = math.Min(min.X, fmin.X)
		min.Y = math.Min(min.Y, fmin.Y)
		min.Z = math.Min(min.Z, fmin.Z)
		max.X = math.Max(max.X, fmax.X)
		max.Y = math.Max(max.Y, fmax.Y)
		max.Z = math.Max(max.Z, fmax.Z)
	}
	return min, max, ok
}

// boundsCenter returns the center of a bounding box.
func boundsCenter(min, max r3.Vec) r3.Vec {
	return r3.Scale(0.5, r3.Add(min, max))
}
