package geoscribe

import "github.com/google/uuid"

// Feature owns a mutable geometry and a property bag. Sessions mutate the
// geometry in place and toggle the well-known flag properties for the
// duration of an edit.
type Feature struct {
	id       string
	geometry *Geometry
	props    map[string]any
}

// NewFeature creates a feature with a fresh unique ID.
// Panics if geometry is nil.
func NewFeature(geometry *Geometry) *Feature {
	if geometry == nil {
		panic("geoscribe: cannot create feature with nil geometry")
	}
	return &Feature{id: uuid.NewString(), geometry: geometry}
}

// ID returns the feature's unique identifier.
func (f *Feature) ID() string {
	return f.id
}

// Geometry returns the feature's geometry.
func (f *Feature) Geometry() *Geometry {
	return f.geometry
}

// Property returns the value stored under key and whether it was present.
func (f *Feature) Property(key string) (any, bool) {
	v, ok := f.props[key]
	return v, ok
}

// SetProperty stores v under key.
func (f *Feature) SetProperty(key string, v any) {
	if f.props == nil {
		f.props = make(map[string]any)
	}
	f.props[key] = v
}

// DeleteProperty removes key from the property bag. No-op if absent.
func (f *Feature) DeleteProperty(key string) {
	delete(f.props, key)
}

// AllowPicking reports whether the feature may intercept pointer events.
// Absent flag means pickable.
func (f *Feature) AllowPicking() bool {
	v, ok := f.Property(PropAllowPicking)
	if !ok {
		return true
	}
	b, _ := v.(bool)
	return b
}

// FeatureCollection is an indexed set of features with add/remove events.
type FeatureCollection struct {
	features []*Feature
	byID     map[string]*Feature

	// Added fires once per feature added to the collection.
	Added Event[*Feature]
	// Removed fires once per feature removed from the collection.
	Removed Event[*Feature]
}

// NewFeatureCollection creates an empty collection.
func NewFeatureCollection() *FeatureCollection {
	return &FeatureCollection{byID: make(map[string]*Feature)}
}

// Add inserts the given features. Features already present are skipped.
func (c *FeatureCollection) Add(features ...*Feature) {
	for _, f := range features {
		if f == nil {
			panic("geoscribe: cannot add nil feature")
		}
		if _, ok := c.byID[f.ID()]; ok {
			continue
		}
		c.byID[f.ID()] = f
		c.features = append(c.features, f)
		c.Added.Fire(f)
	}
}

// Remove detaches the given features. Absent features are skipped.
func (c *FeatureCollection) Remove(features ...*Feature) {
	for _, f := range features {
		if f == nil {
			continue
		}
		if _, ok := c.byID[f.ID()]; !ok {
			continue
		}
		delete(c.byID, f.ID())
		for i, cur := range c.features {
			if cur == f {
				copy(c.features[i:], c.features[i+1:])
				c.features[len(c.features)-1] = nil
				c.features = c.features[:len(c.features)-1]
				break
			}
		}
		c.Removed.Fire(f)
	}
}

// ByID returns the feature with the given ID, or nil.
func (c *FeatureCollection) ByID(id string) *Feature {
	return c.byID[id]
}

// Has reports whether the feature is in the collection.
func (c *FeatureCollection) Has(f *Feature) bool {
	if f == nil {
		return false
	}
	_, ok := c.byID[f.ID()]
	return ok
}

// All returns the feature list. The returned slice MUST NOT be mutated by
// the caller.
func (c *FeatureCollection) All() []*Feature {
	return c.features
}

// Len returns the number of features in the collection.
func (c *FeatureCollection) Len() int {
	return len(c.features)
}

// Clear removes every feature, firing Removed for each.
func (c *FeatureCollection) Clear() {
	for len(c.features) > 0 {
		c.Remove(c.features[len(c.features)-1])
	}
}
