package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sumo-emergency/scenario-tools/internal/scenario"
)

// ImportScenario replaces the index contents with the given scenario and
// records an import run. Returns the new run's id.
func (db *DB) ImportScenario(ctx context.Context, s *scenario.Scenario) (string, error) {
	runID := uuid.New().String()
	importedAt := time.Now().UTC().Format(time.RFC3339)

	db.LockWrite()
	defer db.UnlockWrite()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The index always reflects exactly one scenario.
	for _, table := range []string{"tl_phases", "tl_programs", "vehicle_params", "vehicles", "routes"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return "", fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO import_runs (run_id, imported_at_utc, scenario_dir, route_count, vehicle_count, tl_program_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		runID, importedAt, s.Dir,
		len(s.Routes.Routes), len(s.Routes.Vehicles), len(s.TrafficLights),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record import run: %w", err)
	}

	routeStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO routes (route_id, run_id, edges, edge_count) VALUES (?, ?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("failed to prepare route insert: %w", err)
	}
	defer routeStmt.Close()

	for _, route := range s.Routes.Routes {
		if _, err := routeStmt.ExecContext(ctx, route.ID, runID, route.Edges, len(route.EdgeList())); err != nil {
			return "", fmt.Errorf("failed to insert route %s: %w", route.ID, err)
		}
	}

	vehStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vehicles (vehicle_id, run_id, vtype, route_id, depart, depart_lane, depart_speed, color, priority)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare vehicle insert: %w", err)
	}
	defer vehStmt.Close()

	paramStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO vehicle_params (vehicle_id, param_key, param_value) VALUES (?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("failed to prepare param insert: %w", err)
	}
	defer paramStmt.Close()

	for _, veh := range s.Routes.Vehicles {
		priority, _ := veh.Priority()
		_, err := vehStmt.ExecContext(ctx,
			veh.ID, runID, veh.Type, veh.Route, veh.Depart,
			veh.DepartLane, veh.DepartSpeed, veh.Color, priority)
		if err != nil {
			return "", fmt.Errorf("failed to insert vehicle %s: %w", veh.ID, err)
		}
		for _, p := range veh.Params {
			if _, err := paramStmt.ExecContext(ctx, veh.ID, p.Key, p.Value); err != nil {
				return "", fmt.Errorf("failed to insert param %s/%s: %w", veh.ID, p.Key, err)
			}
		}
	}

	tlStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tl_programs (junction_id, program_id, run_id, tl_type, tl_offset)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare tl program insert: %w", err)
	}
	defer tlStmt.Close()

	phaseStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tl_phases (junction_id, program_id, phase_index, duration, state)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare phase insert: %w", err)
	}
	defer phaseStmt.Close()

	for _, tl := range s.TrafficLights {
		if _, err := tlStmt.ExecContext(ctx, tl.ID, tl.ProgramID, runID, tl.Type, tl.Offset); err != nil {
			return "", fmt.Errorf("failed to insert tl program %s: %w", tl.ID, err)
		}
		for i, ph := range tl.Phases {
			if _, err := phaseStmt.ExecContext(ctx, tl.ID, tl.ProgramID, i, ph.Duration, ph.State); err != nil {
				return "", fmt.Errorf("failed to insert phase %s/%d: %w", tl.ID, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit import: %w", err)
	}

	return runID, nil
}
