package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/sumo-emergency/scenario-tools/internal/config"
	"github.com/sumo-emergency/scenario-tools/internal/scenario"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	scenarioDir := flag.String("scenario-dir", cfg.ScenarioDir, "Directory holding the scenario input files")
	configFile := flag.String("config", cfg.ConfigFile, "SUMO configuration file name")
	strict := flag.Bool("strict", cfg.StrictRouteRefs, "Treat undefined route references as errors")
	flag.Parse()

	s, err := scenario.LoadScenario(*scenarioDir, *configFile)
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}

	report := scenario.Validate(s, *strict)
	for _, issue := range report.Issues {
		fmt.Println(issue)
	}

	if !report.OK() {
		log.Printf("Validation failed: %d error(s), %d warning(s)",
			report.ErrorCount(), len(report.Issues)-report.ErrorCount())
		os.Exit(1)
	}
	log.Printf("Scenario valid: %d warning(s)", len(report.Issues))
}
