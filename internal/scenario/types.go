package scenario

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Well-known vehicle param keys used by the emergency scenario data.
const (
	ParamPriority      = "priority"
	ParamBluelight     = "has.bluelight.device"
	ParamRerouting     = "device.rerouting.probability"
	ParamDriveAfterRed = "junctionModel.driveAfterRedTime"
)

// Priority levels carried in the "priority" vehicle param.
// 0 is normal traffic, 1-3 are ascending emergency levels.
const (
	PriorityNormal = 0
	PriorityMax    = 3
)

// RouteFile is the root of a SUMO route file (.rou.xml): vehicle type
// definitions, named routes and the scheduled vehicle instances.
type RouteFile struct {
	XMLName  xml.Name      `xml:"routes"`
	VTypes   []VehicleType `xml:"vType"`
	Routes   []Route       `xml:"route"`
	Vehicles []Vehicle     `xml:"vehicle"`
}

// VehicleType mirrors a vType element. Numeric attributes stay strings so a
// parse/write cycle reproduces exactly what the file's authors wrote.
// Attributes outside the modeled set (sigma, minGap, tau, ...) are kept in
// Attrs so the engine still sees them after a rewrite.
type VehicleType struct {
	ID          string     `xml:"id,attr"`
	VClass      string     `xml:"vClass,attr,omitempty"`
	GUIShape    string     `xml:"guiShape,attr,omitempty"`
	Accel       string     `xml:"accel,attr,omitempty"`
	Decel       string     `xml:"decel,attr,omitempty"`
	Length      string     `xml:"length,attr,omitempty"`
	MaxSpeed    string     `xml:"maxSpeed,attr,omitempty"`
	SpeedFactor string     `xml:"speedFactor,attr,omitempty"`
	Color       string     `xml:"color,attr,omitempty"`
	Attrs       []xml.Attr `xml:",any,attr"`
}

// Route is a named, ordered path of network edges.
type Route struct {
	ID    string     `xml:"id,attr"`
	Edges string     `xml:"edges,attr"`
	Attrs []xml.Attr `xml:",any,attr"`
}

// EdgeList splits the whitespace-separated edge attribute into the
// ordered list of edge identifiers.
func (r Route) EdgeList() []string {
	return strings.Fields(r.Edges)
}

// Vehicle is one scheduled vehicle instance bound to a route.
type Vehicle struct {
	ID          string     `xml:"id,attr"`
	Type        string     `xml:"type,attr"`
	Route       string     `xml:"route,attr"`
	Depart      string     `xml:"depart,attr"`
	DepartLane  string     `xml:"departLane,attr,omitempty"`
	DepartSpeed string     `xml:"departSpeed,attr,omitempty"`
	Color       string     `xml:"color,attr,omitempty"`
	Attrs       []xml.Attr `xml:",any,attr"`
	Params      []Param    `xml:"param"`
}

// Param is a nested key/value pair on a vehicle.
type Param struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

// Param returns the value of the named param and whether it was present.
func (v Vehicle) Param(key string) (string, bool) {
	for _, p := range v.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Priority returns the vehicle's priority level. Vehicles without a
// priority param are normal traffic (level 0). The boolean reports whether
// the param was present and parsed as an integer.
func (v Vehicle) Priority() (int, bool) {
	raw, ok := v.Param(ParamPriority)
	if !ok {
		return PriorityNormal, false
	}
	level, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return PriorityNormal, false
	}
	return level, true
}

// DepartSeconds parses the depart attribute as simulation seconds.
// Symbolic departs such as "triggered" report ok=false.
func (v Vehicle) DepartSeconds() (float64, bool) {
	t, err := strconv.ParseFloat(strings.TrimSpace(v.Depart), 64)
	if err != nil {
		return 0, false
	}
	return t, true
}

// AdditionalFile is the root of a SUMO additional file. Only tlLogic
// elements are modeled; other additionals (polygons, POIs) are opaque
// to this toolkit and pass through the engine untouched.
type AdditionalFile struct {
	XMLName  xml.Name  `xml:"additional"`
	TLLogics []TLLogic `xml:"tlLogic"`
}

// TLLogic is one traffic-light program for a junction.
type TLLogic struct {
	ID        string     `xml:"id,attr"`
	Type      string     `xml:"type,attr,omitempty"`
	ProgramID string     `xml:"programID,attr,omitempty"`
	Offset    string     `xml:"offset,attr,omitempty"`
	Attrs     []xml.Attr `xml:",any,attr"`
	Phases    []Phase    `xml:"phase"`
}

// Phase is one timed state of a traffic-light program. The state string
// holds one signal character per controlled direction. Timing attributes
// of actuated programs (minDur, maxDur) ride along in Attrs.
type Phase struct {
	Duration float64    `xml:"duration,attr"`
	State    string     `xml:"state,attr"`
	Attrs    []xml.Attr `xml:",any,attr"`
}

// Scenario aggregates every input the engine loads for one simulation.
type Scenario struct {
	Dir           string
	Config        *SimConfig
	Routes        *RouteFile
	TrafficLights []TLLogic
}
