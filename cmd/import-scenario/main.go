package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/sumo-emergency/scenario-tools/internal/config"
	"github.com/sumo-emergency/scenario-tools/internal/db"
	"github.com/sumo-emergency/scenario-tools/internal/scenario"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dbPath := flag.String("db", cfg.DatabasePath, "Path to SQLite index database")
	scenarioDir := flag.String("scenario-dir", cfg.ScenarioDir, "Directory holding the scenario input files")
	configFile := flag.String("config", cfg.ConfigFile, "SUMO configuration file name")
	flag.Parse()

	s, err := scenario.LoadScenario(*scenarioDir, *configFile)
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}

	// Refuse to index data the engine itself would refuse.
	report := scenario.Validate(s, cfg.StrictRouteRefs)
	for _, issue := range report.Issues {
		log.Println(issue)
	}
	if !report.OK() {
		log.Fatalf("Scenario has %d validation error(s), not importing", report.ErrorCount())
	}

	database, err := db.Connect(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	if err := database.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	runID, err := database.ImportScenario(ctx, s)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("SUCCESS: run %s imported (%d routes, %d vehicles, %d tl programs)",
		runID, len(s.Routes.Routes), len(s.Routes.Vehicles), len(s.TrafficLights))
}
