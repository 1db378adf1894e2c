package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumo-emergency/scenario-tools/internal/db"
)

// fakeRepo serves canned data and records the filters it was asked for.
type fakeRepo struct {
	routes     []RouteRecord
	vehicles   []VehicleRecord
	run        *ImportRun
	priorities []db.PriorityCount
	usages     []db.RouteUsage

	pingErr    error
	lastFilter VehicleFilter
}

func (f *fakeRepo) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeRepo) GetAllRoutes(ctx context.Context) ([]RouteRecord, error) {
	return f.routes, nil
}

func (f *fakeRepo) GetVehicles(ctx context.Context, filter VehicleFilter) ([]VehicleRecord, error) {
	f.lastFilter = filter
	return f.vehicles, nil
}

func (f *fakeRepo) GetLatestRun(ctx context.Context) (*ImportRun, error) {
	if f.run == nil {
		return nil, ErrNotFound
	}
	return f.run, nil
}

func (f *fakeRepo) GetPriorityCounts(ctx context.Context) ([]db.PriorityCount, error) {
	return f.priorities, nil
}

func (f *fakeRepo) GetRouteUsages(ctx context.Context) ([]db.RouteUsage, error) {
	return f.usages, nil
}

func doRequest(t *testing.T, repo Repository, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(repo)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, &fakeRepo{}, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, &fakeRepo{pingErr: errors.New("db gone")}, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetRoutes(t *testing.T) {
	repo := &fakeRepo{routes: []RouteRecord{
		{RouteID: "r1", Edges: "e1 e2", EdgeCount: 2},
	}}

	rec := doRequest(t, repo, "/api/routes")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RoutesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "r1", resp.Routes[0].RouteID)
}

func TestGetVehiclesFilters(t *testing.T) {
	repo := &fakeRepo{vehicles: []VehicleRecord{{VehicleID: "amb_0", Priority: 1}}}

	rec := doRequest(t, repo, "/api/vehicles?route_id=r1&priority=1")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "r1", repo.lastFilter.RouteID)
	require.NotNil(t, repo.lastFilter.Priority)
	assert.Equal(t, 1, *repo.lastFilter.Priority)

	var resp VehiclesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestGetVehiclesBadPriority(t *testing.T) {
	rec := doRequest(t, &fakeRepo{}, "/api/vehicles?priority=urgent")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStats(t *testing.T) {
	repo := &fakeRepo{
		run:        &ImportRun{RunID: "run-1", VehicleCount: 10},
		priorities: []db.PriorityCount{{Priority: 0, Count: 8}, {Priority: 1, Count: 2}},
		usages:     []db.RouteUsage{{RouteID: "r1", VehicleCount: 10}},
	}

	rec := doRequest(t, repo, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Run)
	assert.Equal(t, "run-1", resp.Run.RunID)
	assert.Len(t, resp.Priorities, 2)
}

func TestGetStatsEmptyIndex(t *testing.T) {
	// No import yet: stats still serve, run is omitted
	rec := doRequest(t, &fakeRepo{}, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Run)
}
