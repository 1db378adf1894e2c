package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/sumo-emergency/scenario-tools/internal/api"
	"github.com/sumo-emergency/scenario-tools/internal/config"
	"github.com/sumo-emergency/scenario-tools/internal/db"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dbPath := flag.String("db", cfg.DatabasePath, "Path to SQLite index database")
	port := flag.Int("port", cfg.APIPort, "HTTP listen port")
	flag.Parse()

	database, err := db.Connect(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	repo := api.NewScenarioRepository(database)
	router := api.NewRouter(repo)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Scenario index API listening on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
