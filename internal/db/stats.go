package db

import (
	"context"
	"fmt"
)

// PriorityCount is the number of scheduled vehicles at one priority level.
type PriorityCount struct {
	Priority int `json:"priority"`
	Count    int `json:"count"`
}

// PriorityCounts aggregates vehicles per priority level, ascending.
func (db *DB) PriorityCounts(ctx context.Context) ([]PriorityCount, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT priority, COUNT(*) FROM vehicles
		GROUP BY priority ORDER BY priority`)
	if err != nil {
		return nil, fmt.Errorf("failed to query priority counts: %w", err)
	}
	defer rows.Close()

	var counts []PriorityCount
	for rows.Next() {
		var pc PriorityCount
		if err := rows.Scan(&pc.Priority, &pc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, pc)
	}
	return counts, rows.Err()
}

// RouteUsage is how many vehicles are scheduled on one route.
type RouteUsage struct {
	RouteID      string `json:"routeId"`
	EdgeCount    int    `json:"edgeCount"`
	VehicleCount int    `json:"vehicleCount"`
}

// RouteUsages returns per-route vehicle counts, busiest first. Routes with
// no scheduled vehicles are included with a zero count.
func (db *DB) RouteUsages(ctx context.Context) ([]RouteUsage, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT r.route_id, r.edge_count, COUNT(v.vehicle_id)
		FROM routes r
		LEFT JOIN vehicles v ON v.route_id = r.route_id
		GROUP BY r.route_id, r.edge_count
		ORDER BY COUNT(v.vehicle_id) DESC, r.route_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query route usage: %w", err)
	}
	defer rows.Close()

	var usages []RouteUsage
	for rows.Next() {
		var u RouteUsage
		if err := rows.Scan(&u.RouteID, &u.EdgeCount, &u.VehicleCount); err != nil {
			return nil, err
		}
		usages = append(usages, u)
	}
	return usages, rows.Err()
}

// DanglingRouteRefs returns ids of vehicles whose route is not in the
// route table. A clean scenario returns an empty slice.
func (db *DB) DanglingRouteRefs(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT v.vehicle_id FROM vehicles v
		LEFT JOIN routes r ON r.route_id = v.route_id
		WHERE r.route_id IS NULL
		ORDER BY v.vehicle_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dangling refs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
