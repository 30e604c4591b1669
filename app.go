package geoscribe

// App bundles the external collaborators every session consumes: the map
// provider and the pointer event dispatcher. Feature stores are passed to
// sessions explicitly as layers.
type App struct {
	Maps         *MapCollection
	EventHandler *EventHandler
}

// NewApp creates an App around the given initial active map.
func NewApp(activeMap Map) *App {
	return &App{
		Maps:         NewMapCollection(activeMap),
		EventHandler: NewEventHandler(),
	}
}
