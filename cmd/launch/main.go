package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sumo-emergency/scenario-tools/internal/config"
	"github.com/sumo-emergency/scenario-tools/internal/launcher"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	scenarioDir := flag.String("scenario-dir", cfg.ScenarioDir, "Directory holding the scenario input files")
	configFile := flag.String("config", cfg.ConfigFile, "SUMO configuration file name")
	binary := flag.String("binary", cfg.SumoBinary, "SUMO engine binary")
	modeName := flag.String("mode", cfg.LaunchMode, "Launch mode: gui, emergency or traci")
	delayMS := flag.Int("delay", cfg.GUIDelayMS, "GUI frame delay in milliseconds")
	flag.Parse()

	mode, err := launcher.ParseMode(*modeName)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// Ctrl-C tears down the engine process too.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := &launcher.Launcher{
		Binary:     *binary,
		Dir:        *scenarioDir,
		ConfigFile: *configFile,
		DelayMS:    *delayMS,
	}

	code, err := l.Run(ctx, mode)
	if err != nil {
		var missing *launcher.MissingFilesError
		if errors.As(err, &missing) {
			for _, name := range missing.Missing {
				log.Printf("Missing required input file: %s", name)
			}
			log.Printf("%d file(s) missing, engine not started", len(missing.Missing))
		} else {
			log.Printf("Launch failed: %v", err)
		}
		os.Exit(1)
	}

	if code != 0 {
		log.Printf("Engine exited with status %d", code)
	}
	os.Exit(code)
}
