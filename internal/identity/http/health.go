package http

import (
	"net/http"
	"time"

	"github.com/midgardlabs/tenantauth/internal/identity/store"
	"github.com/midgardlabs/tenantauth/pkg/httpx"
)

type healthResponse struct {
	Success  bool   `json:"success"`
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
	Version  string `json:"version"`
}

// HealthHandler reports service and database connectivity status.
func HealthHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := healthResponse{
			Success:  true,
			Status:   "ok",
			Database: "connected",
			Uptime:   time.Since(startTime).String(),
			Version:  version,
		}
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			response.Success = false
			response.Status = "error"
			response.Database = "disconnected"
			statusCode = http.StatusInternalServerError
		}

		httpx.WriteJSON(w, statusCode, response)
	}
}
