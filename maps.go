package geoscribe

import (
	"context"

	"gonum.org/v1/gonum/spatial/r3"
)

// Map is the interface editing sessions consume from a rendering backend.
// The concrete rendering of features and handles is the backend's concern;
// sessions only care about the backend type and, for 3D backends, terrain
// and camera access.
type Map interface {
	// Type identifies the rendering backend.
	Type() MapType
	// Name returns a human-readable backend name.
	Name() string
}

// TerrainMap is implemented by 3D-capable backends. Extrude transformations
// require it.
type TerrainMap interface {
	Map

	// HeightFromTerrain resolves the terrain height under each coordinate,
	// returning coordinates with Z snapped onto the terrain surface. The
	// lookup is asynchronous in nature; implementations should honor ctx.
	HeightFromTerrain(ctx context.Context, coords []r3.Vec) ([]r3.Vec, error)

	// VerticalDragDelta returns the vertical world-space component of a drag
	// from start to current, derived from a ray/plane intersection against
	// the backend's camera.
	VerticalDragDelta(start, current *PointerEvent) float64
}

// ObliqueMap is implemented by oblique-imagery backends, which additionally
// notify when the underlying aerial image changes. A creation session force-
// finishes its sketch on every image change.
type ObliqueMap interface {
	Map
	ImageChanged() *Event[string]
}

// MapCollection tracks the active map backend and notifies on hot-swaps.
type MapCollection struct {
	active Map

	// MapActivated fires after the active map changes, with the new map.
	MapActivated Event[Map]
}

// NewMapCollection creates a collection with the given initial active map.
func NewMapCollection(active Map) *MapCollection {
	return &MapCollection{active: active}
}

// ActiveMap returns the current active map, or nil.
func (m *MapCollection) ActiveMap() Map {
	return m.active
}

// SetActiveMap swaps the active backend and fires MapActivated.
// No-op and no event if the map is already active.
func (m *MapCollection) SetActiveMap(newMap Map) {
	if newMap == m.active {
		return
	}
	m.active = newMap
	m.MapActivated.Fire(newMap)
}

// is3D reports whether the map is a 3D-capable backend.
func is3D(m Map) bool {
	if m == nil {
		return false
	}
	_, ok := m.(TerrainMap)
	return ok && m.Type() == Map3D
}
