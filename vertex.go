package geoscribe

import "gonum.org/v1/gonum/spatial/r3"

// Vertices and transformation handles are ordinary point features carrying a
// lightweight role tag in their property bag — no strong reference back to
// the owning session. The session owns them through its scratch layer.

// newVertex creates a vertex feature for the coordinate at the given index
// of the geometry being edited.
func newVertex(index int, pos r3.Vec) *Feature {
	f := NewFeature(NewGeometry(GeometryPoint, pos))
	f.SetProperty(propVertexIndex, index)
	return f
}

// newHandle creates a transformation handle feature for an axis or plane.
func newHandle(axis AxisName, pos r3.Vec) *Feature {
	f := NewFeature(NewGeometry(GeometryPoint, pos))
	f.SetProperty(propHandleAxis, axis)
	return f
}

// VertexIndex returns the coordinate index a vertex feature represents.
// ok is false for features that are not vertices.
func VertexIndex(f *Feature) (int, bool) {
	if f == nil {
		return 0, false
	}
	v, ok := f.Property(propVertexIndex)
	if !ok {
		return 0, false
	}
	i, ok := v.(int)
	return i, ok
}

// HandleAxis returns the axis or plane a handle feature drives.
// ok is false for features that are not transformation handles.
func HandleAxis(f *Feature) (AxisName, bool) {
	if f == nil {
		return AxisNone, false
	}
	v, ok := f.Property(propHandleAxis)
	if !ok {
		return AxisNone, false
	}
	a, ok := v.(AxisName)
	return a, ok
}

// IsVertex reports whether the feature is a vertex of a geometry under edit.
func IsVertex(f *Feature) bool {
	_, ok := VertexIndex(f)
	return ok
}

// IsHandle reports whether the feature is a transformation handle.
func IsHandle(f *Feature) bool {
	_, ok := HandleAxis(f)
	return ok
}

// vertexPosition returns the single coordinate of a vertex or handle.
func vertexPosition(f *Feature) r3.Vec {
	return f.Geometry().Coordinate(0)
}

// setVertexPosition moves a vertex or handle.
func setVertexPosition(f *Feature, pos r3.Vec) {
	f.Geometry().SetCoordinate(0, pos)
}
