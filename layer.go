package geoscribe

// VectorLayer is a named, persistent feature container — the external
// feature store sessions emit finished features into.
type VectorLayer struct {
	Name    string
	Visible bool

	features *FeatureCollection
}

// NewVectorLayer creates an empty, visible layer.
func NewVectorLayer(name string) *VectorLayer {
	return &VectorLayer{
		Name:     name,
		Visible:  true,
		features: NewFeatureCollection(),
	}
}

// Features returns the layer's feature collection.
func (l *VectorLayer) Features() *FeatureCollection {
	return l.features
}

// AddFeatures inserts features into the layer.
func (l *VectorLayer) AddFeatures(features ...*Feature) {
	l.features.Add(features...)
}

// RemoveFeatures detaches features from the layer.
func (l *VectorLayer) RemoveFeatures(features ...*Feature) {
	l.features.Remove(features...)
}

// ScratchLayer is an ephemeral feature container used to render the vertices
// and transformation handles of the active session. It is owned exclusively
// by that session and destroyed with it; its contents are never persisted.
type ScratchLayer struct {
	features  *FeatureCollection
	destroyed bool
}

// newScratchLayer creates an empty scratch layer.
func newScratchLayer() *ScratchLayer {
	return &ScratchLayer{features: NewFeatureCollection()}
}

// Features returns the scratch feature collection, for renderers.
func (s *ScratchLayer) Features() *FeatureCollection {
	return s.features
}

// add inserts vertices or handles.
func (s *ScratchLayer) add(features ...*Feature) {
	if globalDebug {
		debugCheckDestroyedScratch(s, "add")
	}
	s.features.Add(features...)
}

// clear removes every vertex and handle but keeps the layer usable.
func (s *ScratchLayer) clear() {
	s.features.Clear()
}

// destroy clears the layer and marks it dead. Destroying twice is a no-op.
func (s *ScratchLayer) destroy() {
	if s.destroyed {
		return
	}
	s.features.Clear()
	s.destroyed = true
}

// IsDestroyed reports whether the owning session has been stopped.
func (s *ScratchLayer) IsDestroyed() bool {
	return s.destroyed
}
