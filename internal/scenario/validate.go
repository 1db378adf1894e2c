package scenario

import (
	"fmt"
	"strings"
)

// Severity classifies a validation finding.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "ERROR"
	}
	return "WARNING"
}

// Issue is one validation finding.
type Issue struct {
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return i.Severity.String() + ": " + i.Message
}

// Report collects the findings of one validation pass.
type Report struct {
	Issues []Issue
}

func (r *Report) errorf(format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{SeverityError, fmt.Sprintf(format, args...)})
}

func (r *Report) warnf(format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{SeverityWarning, fmt.Sprintf(format, args...)})
}

// ErrorCount returns the number of error-severity findings.
func (r *Report) ErrorCount() int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			n++
		}
	}
	return n
}

// OK reports whether the pass found no errors.
func (r *Report) OK() bool {
	return r.ErrorCount() == 0
}

// Validate checks the scenario's internal consistency. It never mutates
// the data: findings are reported and the caller decides what to do.
//
// strictRouteRefs controls how a vehicle referencing an undefined route is
// classified. The engine's own ignore-route-errors option has the same
// split: lenient runs skip such vehicles, strict runs refuse to start.
func Validate(s *Scenario, strictRouteRefs bool) *Report {
	rep := &Report{}

	validateRoutes(rep, s.Routes)
	validateVehicles(rep, s.Routes, strictRouteRefs)
	validateTrafficLights(rep, s.TrafficLights)

	return rep
}

func validateRoutes(rep *Report, rf *RouteFile) {
	seen := make(map[string]bool, len(rf.Routes))
	for _, route := range rf.Routes {
		if route.ID == "" {
			rep.errorf("route with empty id")
			continue
		}
		if seen[route.ID] {
			rep.errorf("duplicate route id %q", route.ID)
		}
		seen[route.ID] = true
		if len(route.EdgeList()) == 0 {
			rep.errorf("route %q has no edges", route.ID)
		}
	}
}

func validateVehicles(rep *Report, rf *RouteFile, strictRouteRefs bool) {
	routes := rf.RouteIndex()
	types := make(map[string]bool, len(rf.VTypes))
	for _, vt := range rf.VTypes {
		types[vt.ID] = true
	}

	seen := make(map[string]bool, len(rf.Vehicles))
	lastDepart := make(map[string]float64)

	for _, veh := range rf.Vehicles {
		if veh.ID == "" {
			rep.errorf("vehicle with empty id")
			continue
		}
		if seen[veh.ID] {
			rep.errorf("duplicate vehicle id %q", veh.ID)
		}
		seen[veh.ID] = true

		if veh.Type != "" && len(types) > 0 && !types[veh.Type] {
			rep.warnf("vehicle %q references undeclared vType %q", veh.ID, veh.Type)
		}

		keys := make(map[string]bool, len(veh.Params))
		for _, p := range veh.Params {
			if keys[p.Key] {
				rep.errorf("vehicle %q has duplicate param %q", veh.ID, p.Key)
			}
			keys[p.Key] = true
		}

		if _, ok := routes[veh.Route]; !ok {
			if strictRouteRefs {
				rep.errorf("vehicle %q references undefined route %q", veh.ID, veh.Route)
			} else {
				rep.warnf("vehicle %q references undefined route %q (engine will skip it)", veh.ID, veh.Route)
			}
		}

		validatePriority(rep, veh)

		// Staggered release within one route should not go backwards.
		if t, ok := veh.DepartSeconds(); ok {
			if prev, seen := lastDepart[veh.Route]; seen && t < prev {
				rep.warnf("vehicle %q departs at %g, before the previous vehicle on route %q (%g)",
					veh.ID, t, veh.Route, prev)
			}
			lastDepart[veh.Route] = t
		}
	}
}

func validatePriority(rep *Report, veh Vehicle) {
	raw, present := veh.Param(ParamPriority)
	if !present {
		return
	}

	level, parsed := veh.Priority()
	if !parsed {
		rep.errorf("vehicle %q has non-numeric priority %q", veh.ID, raw)
		return
	}
	if level < PriorityNormal || level > PriorityMax {
		rep.errorf("vehicle %q has priority %d, outside 0-%d", veh.ID, level, PriorityMax)
		return
	}
	if level == PriorityNormal {
		return
	}

	// Emergency vehicles in the scenario data always carry the device
	// params the engine's right-of-way logic reads. Their absence is a
	// data-entry slip, not a fatal condition.
	var missing []string
	for _, key := range []string{ParamBluelight, ParamRerouting, ParamDriveAfterRed} {
		if _, ok := veh.Param(key); !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		rep.warnf("emergency vehicle %q (priority %d) is missing params: %s",
			veh.ID, level, strings.Join(missing, ", "))
	}

	if expected, ok := ExpectedPriority(veh.Type); ok && expected != level {
		rep.warnf("vehicle %q of type %q has priority %d, convention assigns %d",
			veh.ID, veh.Type, level, expected)
	}
}

func validateTrafficLights(rep *Report, programs []TLLogic) {
	seen := make(map[string]bool, len(programs))
	for _, tl := range programs {
		key := tl.ID + "/" + tl.ProgramID
		if seen[key] {
			rep.errorf("duplicate traffic-light program %q/%q", tl.ID, tl.ProgramID)
		}
		seen[key] = true

		if len(tl.Phases) == 0 {
			rep.errorf("traffic-light program %q/%q has no phases", tl.ID, tl.ProgramID)
			continue
		}
		width := len(tl.Phases[0].State)
		for i, ph := range tl.Phases {
			if !ValidSignalState(ph.State) {
				rep.errorf("traffic-light program %q/%q phase %d has invalid state %q",
					tl.ID, tl.ProgramID, i, ph.State)
				continue
			}
			if len(ph.State) != width {
				rep.errorf("traffic-light program %q/%q phase %d state width %d differs from phase 0 width %d",
					tl.ID, tl.ProgramID, i, len(ph.State), width)
			}
			if ph.Duration <= 0 {
				rep.errorf("traffic-light program %q/%q phase %d has non-positive duration %g",
					tl.ID, tl.ProgramID, i, ph.Duration)
			}
		}
	}
}
