package scenario

import (
	"fmt"
	"log"
	"path/filepath"
)

// LoadScenario loads the configuration file plus every route and
// additional file it references, resolving relative paths against the
// scenario directory. Route files are merged in reference order.
func LoadScenario(dir, configName string) (*Scenario, error) {
	cfgPath := filepath.Join(dir, configName)
	cfg, err := LoadSimConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	s := &Scenario{
		Dir:    dir,
		Config: cfg,
		Routes: &RouteFile{},
	}

	routeFiles := cfg.RouteFiles()
	if len(routeFiles) == 0 {
		return nil, fmt.Errorf("%s: input section names no route-files", cfgPath)
	}
	for _, name := range routeFiles {
		rf, err := LoadRoutes(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		s.Routes.VTypes = append(s.Routes.VTypes, rf.VTypes...)
		s.Routes.Routes = append(s.Routes.Routes, rf.Routes...)
		s.Routes.Vehicles = append(s.Routes.Vehicles, rf.Vehicles...)
	}

	for _, name := range cfg.AdditionalFiles() {
		af, err := LoadAdditional(filepath.Join(dir, name))
		if err != nil {
			// Additional files that are not XML at all are a hard error;
			// ones without tlLogic elements simply contribute none.
			return nil, err
		}
		if len(af.TLLogics) == 0 {
			log.Printf("No traffic-light programs in %s", name)
			continue
		}
		s.TrafficLights = append(s.TrafficLights, af.TLLogics...)
	}

	log.Printf("Scenario loaded: %d routes, %d vehicles, %d vTypes, %d tl programs",
		len(s.Routes.Routes), len(s.Routes.Vehicles), len(s.Routes.VTypes), len(s.TrafficLights))

	return s, nil
}
