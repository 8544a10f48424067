// internal/app/features/health/handler.go
package health

import (
	"context"
	"net/http"

	"github.com/mergington/activities/internal/app/system/httpjson"
	"github.com/mergington/activities/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client  *mongo.Client // nil when the memory backend is active
	Backend string
	Log     *zap.Logger
}

// NewHandler constructs a health Handler. Client is nil for the memory
// backend, in which case there is no database to probe.
func NewHandler(client *mongo.Client, backend string, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Backend: backend,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Backend  string `json:"backend"`
	Database string `json:"database,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// Memory backend: 200 and { "status":"ok", "backend":"memory" }.
// Mongo backend: pings the primary; 200 with "database":"connected" on
// success, 503 with the error detail on failure.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "ok",
		Backend: h.Backend,
	}

	if h.Client == nil {
		httpjson.Write(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		httpjson.Write(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp.Database = "connected"
	httpjson.Write(w, http.StatusOK, resp)
}
