package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the scenario tools
type Config struct {
	// Scenario inputs
	ScenarioDir string
	ConfigFile  string

	// Engine invocation
	SumoBinary string
	LaunchMode string
	GUIDelayMS int

	// Validation
	StrictRouteRefs bool

	// Index database
	DatabasePath string

	// Inspector API
	APIPort int
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		// Scenario inputs
		ScenarioDir: getEnv("SCENARIO_DIR", "."),
		ConfigFile:  getEnv("SUMO_CONFIG", "osm.sumocfg"),

		// Engine invocation
		SumoBinary: getEnv("SUMO_BINARY", "sumo-gui"),
		LaunchMode: getEnv("LAUNCH_MODE", "gui"),
		GUIDelayMS: getEnvInt("GUI_DELAY_MS", 100),

		// Validation
		StrictRouteRefs: getEnvBool("STRICT_ROUTE_REFS", false),

		// Index database
		DatabasePath: getEnv("SQLITE_DATABASE", "scenario.db"),

		// Inspector API
		APIPort: getEnvInt("API_PORT", 8090),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
