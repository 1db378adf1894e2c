package scenario

// EmergencyPriorities is the priority level conventionally assigned to
// each emergency vehicle type in the scenario data. The convention is
// observed in the files, never enforced: the validator only warns when a
// vehicle of a known type carries a different level.
var EmergencyPriorities = map[string]int{
	"ambulance": 1,
	"firetruck": 2,
	"police":    3,
}

// ExpectedPriority returns the conventional priority for a vehicle type,
// or ok=false for types with no convention (normal traffic).
func ExpectedPriority(vtype string) (int, bool) {
	level, ok := EmergencyPriorities[vtype]
	return level, ok
}
