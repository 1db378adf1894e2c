package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sumo-emergency/scenario-tools/internal/db"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// RouteRecord is one indexed route.
type RouteRecord struct {
	RouteID   string `json:"routeId"`
	Edges     string `json:"edges"`
	EdgeCount int    `json:"edgeCount"`
}

// VehicleRecord is one indexed vehicle with its params.
type VehicleRecord struct {
	VehicleID   string            `json:"vehicleId"`
	Type        string            `json:"type"`
	RouteID     string            `json:"routeId"`
	Depart      string            `json:"depart"`
	DepartLane  string            `json:"departLane,omitempty"`
	DepartSpeed string            `json:"departSpeed,omitempty"`
	Color       string            `json:"color,omitempty"`
	Priority    int               `json:"priority"`
	Params      map[string]string `json:"params,omitempty"`
}

// ImportRun describes the import the index currently reflects.
type ImportRun struct {
	RunID          string `json:"runId"`
	ImportedAt     string `json:"importedAt"`
	ScenarioDir    string `json:"scenarioDir"`
	RouteCount     int    `json:"routeCount"`
	VehicleCount   int    `json:"vehicleCount"`
	TLProgramCount int    `json:"tlProgramCount"`
}

// VehicleFilter narrows vehicle listings. Nil fields match everything.
type VehicleFilter struct {
	RouteID  string
	Priority *int
}

// ScenarioRepository serves read queries over the scenario index.
type ScenarioRepository struct {
	database *db.DB
}

// NewScenarioRepository creates a repository over an open index database.
func NewScenarioRepository(database *db.DB) *ScenarioRepository {
	return &ScenarioRepository{database: database}
}

// Ping checks database connectivity for the health endpoint.
func (r *ScenarioRepository) Ping(ctx context.Context) error {
	return r.database.Conn().PingContext(ctx)
}

// GetAllRoutes returns every indexed route ordered by id.
func (r *ScenarioRepository) GetAllRoutes(ctx context.Context) ([]RouteRecord, error) {
	rows, err := r.database.Conn().QueryContext(ctx,
		"SELECT route_id, edges, edge_count FROM routes ORDER BY route_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	var routes []RouteRecord
	for rows.Next() {
		var rec RouteRecord
		if err := rows.Scan(&rec.RouteID, &rec.Edges, &rec.EdgeCount); err != nil {
			return nil, err
		}
		routes = append(routes, rec)
	}
	return routes, rows.Err()
}

// GetVehicles returns indexed vehicles matching the filter, ordered by
// depart time then id, with their params attached.
func (r *ScenarioRepository) GetVehicles(ctx context.Context, filter VehicleFilter) ([]VehicleRecord, error) {
	query := `
		SELECT vehicle_id, vtype, route_id, depart, depart_lane, depart_speed, color, priority
		FROM vehicles WHERE 1=1`
	var args []interface{}
	if filter.RouteID != "" {
		query += " AND route_id = ?"
		args = append(args, filter.RouteID)
	}
	if filter.Priority != nil {
		query += " AND priority = ?"
		args = append(args, *filter.Priority)
	}
	query += " ORDER BY CAST(depart AS REAL), vehicle_id"

	rows, err := r.database.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []VehicleRecord
	for rows.Next() {
		var rec VehicleRecord
		if err := rows.Scan(&rec.VehicleID, &rec.Type, &rec.RouteID, &rec.Depart,
			&rec.DepartLane, &rec.DepartSpeed, &rec.Color, &rec.Priority); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range vehicles {
		params, err := r.vehicleParams(ctx, vehicles[i].VehicleID)
		if err != nil {
			return nil, err
		}
		vehicles[i].Params = params
	}
	return vehicles, nil
}

func (r *ScenarioRepository) vehicleParams(ctx context.Context, vehicleID string) (map[string]string, error) {
	rows, err := r.database.Conn().QueryContext(ctx,
		"SELECT param_key, param_value FROM vehicle_params WHERE vehicle_id = ?", vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query params for %s: %w", vehicleID, err)
	}
	defer rows.Close()

	params := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		params[key] = value
	}
	return params, rows.Err()
}

// GetLatestRun returns the most recent import run.
func (r *ScenarioRepository) GetLatestRun(ctx context.Context) (*ImportRun, error) {
	var run ImportRun
	err := r.database.Conn().QueryRowContext(ctx, `
		SELECT run_id, imported_at_utc, scenario_dir, route_count, vehicle_count, tl_program_count
		FROM import_runs ORDER BY imported_at_utc DESC LIMIT 1`).
		Scan(&run.RunID, &run.ImportedAt, &run.ScenarioDir,
			&run.RouteCount, &run.VehicleCount, &run.TLProgramCount)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	return &run, nil
}

// GetPriorityCounts delegates to the index stats query.
func (r *ScenarioRepository) GetPriorityCounts(ctx context.Context) ([]db.PriorityCount, error) {
	return r.database.PriorityCounts(ctx)
}

// GetRouteUsages delegates to the index stats query.
func (r *ScenarioRepository) GetRouteUsages(ctx context.Context) ([]db.RouteUsage, error) {
	return r.database.RouteUsages(ctx)
}
