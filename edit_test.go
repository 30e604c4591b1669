package geoscribe

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func newPointFeature(pos r3.Vec) *Feature {
	return NewFeature(NewGeometry(GeometryPoint, pos))
}

func TestEditModeSwitch(t *testing.T) {
	app := NewApp(newPlanarMap())
	layer := NewVectorLayer("features")
	f := newPointFeature(r3.Vec{X: 1})
	layer.AddFeatures(f)

	session := StartEditFeaturesSession(app, layer, ModeTranslate)
	session.SetFeatures([]*Feature{f})

	var changes []TransformationMode
	session.ModeChanged.Listen(func(m TransformationMode) { changes = append(changes, m) })

	session.SetMode(ModeRotate)
	if session.Mode() != ModeRotate {
		t.Errorf("Mode() = %v, want rotate", session.Mode())
	}
	if len(changes) != 1 || changes[0] != ModeRotate {
		t.Fatalf("ModeChanged fired %v, want [rotate]", changes)
	}

	// Rotate handles replaced the translate gizmo.
	handleWithAxis(t, session.Scratch(), AxisZ)

	// Same mode again: no event.
	session.SetMode(ModeRotate)
	if len(changes) != 1 {
		t.Errorf("ModeChanged fired %d times after redundant SetMode, want 1", len(changes))
	}
}

func TestEditExtrudeClampOnPlanarMap(t *testing.T) {
	app := NewApp(newPlanarMap())
	layer := NewVectorLayer("features")
	session := StartEditFeaturesSession(app, layer, ModeTranslate)

	var changes []TransformationMode
	session.ModeChanged.Listen(func(m TransformationMode) { changes = append(changes, m) })

	// Extrude needs a 3D backend; the request is rejected but the event still
	// fires once so UI toggles can snap back.
	session.SetMode(ModeExtrude)

	if session.Mode() != ModeTranslate {
		t.Errorf("Mode() = %v, want translate", session.Mode())
	}
	if len(changes) != 1 || changes[0] != ModeTranslate {
		t.Errorf("ModeChanged fired %v, want [translate]", changes)
	}
}

func TestEditExtrudeDowngradeOnMapSwap(t *testing.T) {
	app := NewApp(newGlobe(0))
	layer := NewVectorLayer("features")
	f := newPointFeature(r3.Vec{X: 1})
	layer.AddFeatures(f)

	session := StartEditFeaturesSession(app, layer, ModeExtrude)
	session.SetFeatures([]*Feature{f})

	var changes []TransformationMode
	session.ModeChanged.Listen(func(m TransformationMode) { changes = append(changes, m) })

	app.Maps.SetActiveMap(newPlanarMap())

	if session.Mode() != ModeTranslate {
		t.Errorf("Mode() = %v after losing the 3D map, want translate", session.Mode())
	}
	if len(changes) != 1 || changes[0] != ModeTranslate {
		t.Errorf("ModeChanged fired %v, want [translate]", changes)
	}
	if session.IsStopped() {
		t.Error("map swap stopped the session")
	}
}

func TestEditMapSwapKeepsMode(t *testing.T) {
	app := NewApp(newPlanarMap())
	layer := NewVectorLayer("features")
	f := newPointFeature(r3.Vec{X: 1})
	layer.AddFeatures(f)

	session := StartEditFeaturesSession(app, layer, ModeRotate)
	session.SetFeatures([]*Feature{f})

	fired := 0
	session.ModeChanged.Listen(func(TransformationMode) { fired++ })

	app.Maps.SetActiveMap(newGlobe(0))

	if session.Mode() != ModeRotate {
		t.Errorf("Mode() = %v, want rotate", session.Mode())
	}
	if fired != 0 {
		t.Errorf("ModeChanged fired %d times on a mode-preserving swap, want 0", fired)
	}
	// The rebuilt rotate gizmo gains the 3D axes.
	handleWithAxis(t, session.Scratch(), AxisX)
	handleWithAxis(t, session.Scratch(), AxisY)
	handleWithAxis(t, session.Scratch(), AxisZ)
}

func TestEditFlagSnapshotRestore(t *testing.T) {
	app := NewApp(newPlanarMap())
	layer := NewVectorLayer("features")
	plain := newPointFeature(r3.Vec{})
	flagged := newPointFeature(r3.Vec{X: 1})
	flagged.SetProperty(PropAllowPicking, true)
	layer.AddFeatures(plain, flagged)

	session := StartEditFeaturesSession(app, layer, ModeTranslate)
	session.SetFeatures([]*Feature{plain, flagged})

	if plain.AllowPicking() || flagged.AllowPicking() {
		t.Error("selected features still pickable during the session")
	}
	if v, _ := plain.Property(PropCreateSync); v != true {
		t.Error("selected feature missing the create-sync flag")
	}

	// Swapping the selection restores the old set exactly.
	session.SetFeatures(nil)

	if _, ok := plain.Property(PropAllowPicking); ok {
		t.Error("flag not removed from a feature that had none before")
	}
	if _, ok := plain.Property(PropCreateSync); ok {
		t.Error("create-sync flag not removed on restore")
	}
	if v, _ := flagged.Property(PropAllowPicking); v != true {
		t.Error("pre-existing allow-picking value not restored")
	}
}

func TestEditEmptySelectionIsIdle(t *testing.T) {
	app := NewApp(newPlanarMap())
	layer := NewVectorLayer("features")

	session := StartEditFeaturesSession(app, layer, ModeTranslate)
	session.SetFeatures(nil)

	if n := session.Scratch().Features().Len(); n != 0 {
		t.Errorf("scratch holds %d handles with no selection, want 0", n)
	}

	// Drag events on nothing are ignored without error.
	sendEvent(t, app, &PointerEvent{Type: EventDrag, Position: r3.Vec{X: 1}, Map: app.Maps.ActiveMap()})
	sendEvent(t, app, &PointerEvent{Type: EventDragEnd, Position: r3.Vec{X: 1}, Map: app.Maps.ActiveMap()})
}

func TestEditRightClickPickOverride(t *testing.T) {
	app := NewApp(newPlanarMap())
	layer := NewVectorLayer("features")
	f := newPointFeature(r3.Vec{X: 1})
	layer.AddFeatures(f)

	session := StartEditFeaturesSession(app, layer, ModeTranslate)
	session.SetFeatures([]*Feature{f})

	if f.AllowPicking() {
		t.Fatal("selected feature pickable before the override")
	}

	sendEvent(t, app, &PointerEvent{Type: EventDown, Button: MouseButtonRight, Feature: f, Map: app.Maps.ActiveMap()})
	if !f.AllowPicking() {
		t.Error("right-button press did not re-enable picking")
	}

	sendEvent(t, app, &PointerEvent{Type: EventUp, Button: MouseButtonRight, Feature: f, Map: app.Maps.ActiveMap()})
	if f.AllowPicking() {
		t.Error("release did not restore pick-disable")
	}
}

func TestEditStopRestoresFlags(t *testing.T) {
	app := NewApp(newPlanarMap())
	layer := NewVectorLayer("features")
	f := newPointFeature(r3.Vec{X: 1})
	layer.AddFeatures(f)

	session := StartEditFeaturesSession(app, layer, ModeTranslate)
	session.SetFeatures([]*Feature{f})
	session.Stop()

	if _, ok := f.Property(PropAllowPicking); ok {
		t.Error("allow-picking flag survived session stop")
	}
	if !session.Scratch().IsDestroyed() {
		t.Error("scratch layer not destroyed on stop")
	}
	if got := app.EventHandler.ExclusiveID(); got != "" {
		t.Errorf("ExclusiveID() = %q after stop, want empty", got)
	}
}

func TestEditSetFeaturesMidDragEndsDrag(t *testing.T) {
	app := NewApp(newPlanarMap())
	layer := NewVectorLayer("features")
	a := newPointFeature(r3.Vec{X: 1})
	b := newPointFeature(r3.Vec{X: 5})
	c := newPointFeature(r3.Vec{X: 9})
	layer.AddFeatures(a, b, c)

	session := StartEditFeaturesSession(app, layer, ModeTranslate)
	session.SetFeatures([]*Feature{a})

	handle := handleWithAxis(t, session.Scratch(), AxisXY)
	start := vertexPosition(handle)
	sendEvent(t, app, &PointerEvent{Type: EventDragStart, Position: start, Feature: handle, Map: app.Maps.ActiveMap()})

	// Replacing the selection ends the drag; its reference state belongs to
	// the old set.
	session.SetFeatures([]*Feature{a, b, c})
	if session.handler.Dragging() {
		t.Fatal("drag reference survived a selection change")
	}

	sendEvent(t, app, &PointerEvent{Type: EventDrag, Position: r3.Add(start, r3.Vec{X: 2}), Map: app.Maps.ActiveMap()})
	for i, f := range []*Feature{a, b, c} {
		want := r3.Vec{X: float64(1 + 4*i)}
		if got := f.Geometry().Coordinate(0); !vecNear(got, want) {
			t.Errorf("feature %d coordinate = %v after stale drag event, want %v", i, got, want)
		}
	}

	// A fresh drag on the rebuilt gizmo moves the whole new set.
	handle = handleWithAxis(t, session.Scratch(), AxisXY)
	start = vertexPosition(handle)
	end := r3.Add(start, r3.Vec{X: 2})
	dragHandle(t, app, handle, start, end, end)
	for i, f := range []*Feature{a, b, c} {
		want := r3.Vec{X: float64(3 + 4*i)}
		if got := f.Geometry().Coordinate(0); !vecNear(got, want) {
			t.Errorf("feature %d coordinate = %v after new drag, want %v", i, got, want)
		}
	}
}

func TestEditStopMidDrag(t *testing.T) {
	app := NewApp(newPlanarMap())
	layer := NewVectorLayer("features")
	f := newPointFeature(r3.Vec{X: 1})
	layer.AddFeatures(f)

	session := StartEditFeaturesSession(app, layer, ModeTranslate)
	session.SetFeatures([]*Feature{f})

	handle := handleWithAxis(t, session.Scratch(), AxisXY)
	start := vertexPosition(handle)
	sendEvent(t, app, &PointerEvent{Type: EventDragStart, Position: start, Feature: handle, Map: app.Maps.ActiveMap()})
	sendEvent(t, app, &PointerEvent{Type: EventDrag, Position: r3.Add(start, r3.Vec{X: 2}), Map: app.Maps.ActiveMap()})

	session.Stop()

	// The partial drag result stays; no trailing event may move it further.
	want := r3.Vec{X: 3}
	if got := f.Geometry().Coordinate(0); !vecNear(got, want) {
		t.Fatalf("coordinate = %v after stop mid-drag, want %v", got, want)
	}
	sendEvent(t, app, &PointerEvent{Type: EventDrag, Position: r3.Add(start, r3.Vec{X: 9}), Map: app.Maps.ActiveMap()})
	if got := f.Geometry().Coordinate(0); !vecNear(got, want) {
		t.Errorf("coordinate = %v after post-stop drag event, want %v", got, want)
	}
}
