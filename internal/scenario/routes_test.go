package scenario

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

const sampleRoutes = `<?xml version="1.0" encoding="UTF-8"?>
<routes>
  <vType id="ambulance" vClass="emergency" guiShape="emergency" accel="3.5" decel="6.0" maxSpeed="41.67" speedFactor="1.5" color="255,255,255" sigma="0.5" minGap="1.0" emergencyDecel="9.0"/>
  <vType id="car" vClass="passenger"/>
  <route id="route_hospital_north" edges="e12 e13 e14 e22"/>
  <route id="route_center" edges="e1 e2" color="0,255,255"/>
  <vehicle id="amb_0" type="ambulance" route="route_hospital_north" depart="5" departLane="best" departSpeed="max" color="255,0,0" departPos="base">
    <param key="priority" value="1"/>
    <param key="has.bluelight.device" value="true"/>
    <param key="device.rerouting.probability" value="1"/>
    <param key="junctionModel.driveAfterRedTime" value="0"/>
  </vehicle>
  <vehicle id="car_0" type="car" route="route_center" depart="0"/>
</routes>
`

func TestParseRoutes(t *testing.T) {
	rf, err := ParseRoutes(strings.NewReader(sampleRoutes))
	if err != nil {
		t.Fatalf("ParseRoutes failed: %v", err)
	}

	if len(rf.VTypes) != 2 {
		t.Errorf("expected 2 vTypes, got %d", len(rf.VTypes))
	}
	if len(rf.Routes) != 2 {
		t.Errorf("expected 2 routes, got %d", len(rf.Routes))
	}
	if len(rf.Vehicles) != 2 {
		t.Errorf("expected 2 vehicles, got %d", len(rf.Vehicles))
	}

	edges := rf.Routes[0].EdgeList()
	want := []string{"e12", "e13", "e14", "e22"}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("edge list = %v, want %v", edges, want)
	}

	amb := rf.Vehicles[0]
	if amb.ID != "amb_0" || amb.Type != "ambulance" || amb.Route != "route_hospital_north" {
		t.Errorf("unexpected vehicle attributes: %+v", amb)
	}
	if amb.DepartLane != "best" || amb.DepartSpeed != "max" || amb.Color != "255,0,0" {
		t.Errorf("unexpected departure policy: %+v", amb)
	}

	if v, ok := amb.Param(ParamBluelight); !ok || v != "true" {
		t.Errorf("bluelight param = %q, %v", v, ok)
	}
	if _, ok := amb.Param("no.such.param"); ok {
		t.Error("lookup of absent param should report ok=false")
	}
}

func TestVehiclePriority(t *testing.T) {
	rf, err := ParseRoutes(strings.NewReader(sampleRoutes))
	if err != nil {
		t.Fatalf("ParseRoutes failed: %v", err)
	}

	if level, ok := rf.Vehicles[0].Priority(); !ok || level != 1 {
		t.Errorf("ambulance priority = %d, %v, want 1, true", level, ok)
	}
	// car_0 carries no priority param: normal traffic
	if level, ok := rf.Vehicles[1].Priority(); ok || level != PriorityNormal {
		t.Errorf("car priority = %d, %v, want 0, false", level, ok)
	}
}

func TestVehicleDepartSeconds(t *testing.T) {
	v := Vehicle{Depart: "12.5"}
	if sec, ok := v.DepartSeconds(); !ok || sec != 12.5 {
		t.Errorf("DepartSeconds = %g, %v", sec, ok)
	}

	v.Depart = "triggered"
	if _, ok := v.DepartSeconds(); ok {
		t.Error("symbolic depart should report ok=false")
	}
}

// TestRouteFileRoundTrip verifies that a parse/write/parse cycle preserves
// every field the engine consumes. The scenario data is hand-maintained,
// so serialization must never silently alter it.
func TestRouteFileRoundTrip(t *testing.T) {
	first, err := ParseRoutes(strings.NewReader(sampleRoutes))
	if err != nil {
		t.Fatalf("first parse failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteRoutes(&buf, first); err != nil {
		t.Fatalf("WriteRoutes failed: %v", err)
	}

	second, err := ParseRoutes(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("round trip changed data:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

// The engine reads far more attributes than the toolkit models (sigma,
// minGap, departPos, ...). They must ride through a rewrite untouched.
func TestRouteFileKeepsUnmodeledAttributes(t *testing.T) {
	rf, err := ParseRoutes(strings.NewReader(sampleRoutes))
	if err != nil {
		t.Fatalf("ParseRoutes failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteRoutes(&buf, rf); err != nil {
		t.Fatalf("WriteRoutes failed: %v", err)
	}

	out := buf.String()
	for _, attr := range []string{
		`sigma="0.5"`,
		`minGap="1.0"`,
		`emergencyDecel="9.0"`,
		`color="0,255,255"`,
		`departPos="base"`,
	} {
		if !strings.Contains(out, attr) {
			t.Errorf("attribute %s lost in rewrite:\n%s", attr, out)
		}
	}
}

func TestRouteIndex(t *testing.T) {
	rf := &RouteFile{Routes: []Route{
		{ID: "a", Edges: "e1"},
		{ID: "b", Edges: "e2 e3"},
	}}

	idx := rf.RouteIndex()
	if len(idx) != 2 {
		t.Fatalf("expected 2 indexed routes, got %d", len(idx))
	}
	if idx["b"].Edges != "e2 e3" {
		t.Errorf("unexpected route b: %+v", idx["b"])
	}
}
