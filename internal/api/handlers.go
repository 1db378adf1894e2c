package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/sumo-emergency/scenario-tools/internal/db"
)

// Repository defines the queries the HTTP layer needs.
type Repository interface {
	Ping(ctx context.Context) error
	GetAllRoutes(ctx context.Context) ([]RouteRecord, error)
	GetVehicles(ctx context.Context, filter VehicleFilter) ([]VehicleRecord, error)
	GetLatestRun(ctx context.Context) (*ImportRun, error)
	GetPriorityCounts(ctx context.Context) ([]db.PriorityCount, error)
	GetRouteUsages(ctx context.Context) ([]db.RouteUsage, error)
}

// Handler handles HTTP requests for the scenario index
type Handler struct {
	repo Repository
}

// NewHandler creates a new handler with the given repository
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// RoutesResponse is the JSON response structure for GET /api/routes
type RoutesResponse struct {
	Routes []RouteRecord `json:"routes"`
	Count  int           `json:"count"`
}

// VehiclesResponse is the JSON response structure for GET /api/vehicles
type VehiclesResponse struct {
	Vehicles []VehicleRecord `json:"vehicles"`
	Count    int             `json:"count"`
}

// StatsResponse is the JSON response structure for GET /api/stats
type StatsResponse struct {
	Run        *ImportRun         `json:"run,omitempty"`
	Priorities []db.PriorityCount `json:"priorities"`
	Routes     []db.RouteUsage    `json:"routes"`
}

// ErrorResponse is the JSON error response structure
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the chi router with all index endpoints mounted.
func NewRouter(repo Repository) http.Handler {
	h := NewHandler(repo)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", h.Health)
	r.Get("/api/routes", h.GetRoutes)
	r.Get("/api/vehicles", h.GetVehicles)
	r.Get("/api/stats", h.GetStats)

	return r
}

// Health handles GET /health with a database connectivity test
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetRoutes handles GET /api/routes
func (h *Handler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.repo.GetAllRoutes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RoutesResponse{Routes: routes, Count: len(routes)})
}

// GetVehicles handles GET /api/vehicles with optional route_id and
// priority query filters
func (h *Handler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	filter := VehicleFilter{RouteID: r.URL.Query().Get("route_id")}

	if raw := r.URL.Query().Get("priority"); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "priority must be an integer"})
			return
		}
		filter.Priority = &level
	}

	vehicles, err := h.repo.GetVehicles(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VehiclesResponse{Vehicles: vehicles, Count: len(vehicles)})
}

// GetStats handles GET /api/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	run, err := h.repo.GetLatestRun(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		writeError(w, err)
		return
	}

	priorities, err := h.repo.GetPriorityCounts(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	routes, err := h.repo.GetRouteUsages(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{Run: run, Priorities: priorities, Routes: routes})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	log.Printf("Request failed: %v", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
