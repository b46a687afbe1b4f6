package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/pitstop-labs/pitstop/internal/api/response"
)

// DBPinger verifies connectivity to the backing database.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// healthResponse is the payload of the health endpoint.
type healthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// HealthHandler reports service liveness and database connectivity.
type HealthHandler struct {
	db      DBPinger
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db DBPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// ServeHTTP handles GET /health. A reachable database reports 200 ok;
// otherwise 503 degraded.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Version: h.version, Database: "ok"}
	status := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	response.Success(w, status, "Health checked", resp)
}
