// Package geoscribe implements interactive authoring and transformation of
// vector geometries over interchangeable map backends.
//
// The package is the editing session engine only: rendering of features and
// handles, style resolution, terrain data fetching, and camera control are
// external collaborators consumed through small interfaces ([Map],
// [TerrainMap], [ObliqueMap]).
//
// # Sessions
//
// A [Session] is a stateful, stoppable unit of editing holding exclusive
// pointer-event ownership. Start one of the four kinds and feed pointer
// events through the app's [EventHandler]:
//
//	app := geoscribe.NewApp(myMap)
//	layer := geoscribe.NewVectorLayer("sketches")
//
//	session := geoscribe.StartCreateFeatureSession(app, layer, geoscribe.GeometryLineString)
//	session.CreationFinished.Listen(func(f *geoscribe.Feature) {
//		if f != nil {
//			fmt.Println("created", f.ID())
//		}
//	})
//
//	// pointer events come from your input driver:
//	app.EventHandler.HandleEvent(ctx, &geoscribe.PointerEvent{
//		Type:     geoscribe.EventClick,
//		Position: r3.Vec{X: 1, Y: 2},
//		Map:      app.Maps.ActiveMap(),
//	})
//
// Only one session is active at a time: starting a new one revokes the
// previous owner's exclusivity, which stops it cleanly — handles removed,
// listeners torn down, feature flags restored.
//
// [StartEditFeaturesSession] transforms one or more selected features by
// dragging axis/plane handles: translate, rotate, scale, and — on 3D
// backends only — extrude. [StartEditGeometrySession] drags individual
// vertices of a single feature. [StartSelectFeaturesSession] picks features
// by clicking.
//
// # Events
//
// Session and collection notifications are typed [Event] values:
//
//	handle := session.Stopped().Listen(func(struct{}) { ... })
//	defer handle.Remove()
//
// # Threading
//
// geoscribe is single-goroutine: sessions, layers, and events belong to the
// application goroutine. The [EventHandler] serializes event dispatch, and
// the only internal goroutines — asynchronous terrain sampling during
// extrude finalization — re-enter through that same dispatcher, after the
// event that triggered them has been fully processed.
package geoscribe
