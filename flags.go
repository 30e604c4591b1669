package geoscribe

// featureFlags snapshots the pre-session values of the two session-scoped
// flag properties, so stopping a session (or replacing its feature set)
// restores exactly what was there before.
type featureFlags struct {
	allowPicking    any
	hadAllowPicking bool
	createSync      any
	hadCreateSync   bool
}

// applySessionFlags disables picking and marks active authorship on f,
// returning the prior flag values.
func applySessionFlags(f *Feature, createSync bool) featureFlags {
	var saved featureFlags
	saved.allowPicking, saved.hadAllowPicking = f.Property(PropAllowPicking)
	saved.createSync, saved.hadCreateSync = f.Property(PropCreateSync)
	f.SetProperty(PropAllowPicking, false)
	if createSync {
		f.SetProperty(PropCreateSync, true)
	}
	return saved
}

// restoreSessionFlags puts the pre-session flag values back on f.
func restoreSessionFlags(f *Feature, saved featureFlags) {
	if saved.hadAllowPicking {
		f.SetProperty(PropAllowPicking, saved.allowPicking)
	} else {
		f.DeleteProperty(PropAllowPicking)
	}
	if saved.hadCreateSync {
		f.SetProperty(PropCreateSync, saved.createSync)
	} else {
		f.DeleteProperty(PropCreateSync)
	}
}
