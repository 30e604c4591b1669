package geoscribe

// Vec2 is a 2D vector used for screen-space pixel positions.
// World-space geometry uses gonum's r3.Vec throughout.
type Vec2 struct {
	X, Y float64
}

// SessionType identifies the kind of editing session.
type SessionType uint8

const (
	SessionTypeCreate       SessionType = iota // point-by-point geometry creation
	SessionTypeEditGeometry                    // per-vertex editing of a single feature
	SessionTypeEditFeatures                    // transformation of one or more features
	SessionTypeSelect                          // click-to-select features from a layer
)

// GeometryType distinguishes sketching and validity rules for a Geometry.
type GeometryType uint8

const (
	GeometryPoint      GeometryType = iota // single coordinate
	GeometryLineString                     // open coordinate sequence, minimum 2
	GeometryPolygon                        // closed ring, minimum 3
	GeometryCircle                         // center plus a point on the radius
	GeometryBBox                           // two opposite corners
)

// String returns the geometry type name.
func (t GeometryType) String() string {
	switch t {
	case GeometryPoint:
		return "Point"
	case GeometryLineString:
		return "LineString"
	case GeometryPolygon:
		return "Polygon"
	case GeometryCircle:
		return "Circle"
	case GeometryBBox:
		return "BBox"
	default:
		return "Unknown"
	}
}

// TransformationMode selects how an edit-features session converts drag
// deltas into geometry changes.
type TransformationMode uint8

const (
	ModeTranslate TransformationMode = iota // offset every coordinate by the drag vector
	ModeRotate                              // rotate about the pivot on the plane orthogonal to the axis
	ModeScale                               // stretch along a single axis about the pivot
	ModeExtrude                             // vertical extrusion; 3D maps only
)

// String returns the mode name.
func (m TransformationMode) String() string {
	switch m {
	case ModeTranslate:
		return "translate"
	case ModeRotate:
		return "rotate"
	case ModeScale:
		return "scale"
	case ModeExtrude:
		return "extrude"
	default:
		return "unknown"
	}
}

// MapType identifies the rendering backend behind a Map.
type MapType uint8

const (
	Map2D      MapType = iota // planar renderer
	Map3D                     // globe renderer with terrain and a camera
	MapOblique                // oblique aerial imagery renderer
)

// AxisName identifies the axis or plane a transformation handle drives.
type AxisName uint8

const (
	AxisNone AxisName = iota
	AxisX
	AxisY
	AxisZ
	AxisXY
	AxisXZ
	AxisYZ
)

// String returns the axis name.
func (a AxisName) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	case AxisXY:
		return "XY"
	case AxisXZ:
		return "XZ"
	case AxisYZ:
		return "YZ"
	default:
		return "none"
	}
}

// EventType identifies a kind of pointer event.
type EventType uint8

const (
	EventDown      EventType = iota // pointer button pressed
	EventUp                         // pointer button released
	EventMove                       // pointer moved with no button held
	EventClick                      // press then release without exceeding the drag dead zone
	EventDblClick                   // two clicks in quick succession
	EventDragStart                  // movement exceeded the drag dead zone
	EventDrag                       // pointer moved while dragging
	EventDragEnd                    // pointer released after dragging
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
)

// Well-known feature property keys. Sessions toggle these for the duration of
// an edit and restore the prior values on stop; renderers and pickers consume
// them.
const (
	// PropAllowPicking suppresses a feature's own hit-testing when false, so
	// a vertex or handle dragged on top of it is not intercepted.
	PropAllowPicking = "geoscribe:allowPicking"

	// PropCreateSync marks a feature as actively being authored. External
	// renderers treat such features specially (e.g. live restyling).
	PropCreateSync = "geoscribe:createSync"

	// PropExtrudedHeight is the vertical extrusion of a feature in world
	// units, written by the extrude transformation on drag end.
	PropExtrudedHeight = "extrudedHeight"

	// PropAltitudeMode controls vertical placement of a feature. The extrude
	// transformation forces it to AltitudeAbsolute.
	PropAltitudeMode = "altitudeMode"

	propVertexIndex = "geoscribe:vertexIndex"
	propHandleAxis  = "geoscribe:handleAxis"
)

// Altitude mode values for PropAltitudeMode.
const (
	AltitudeClampToGround = "clampToGround"
	AltitudeAbsolute      = "absolute"
)
