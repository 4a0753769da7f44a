package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/baharkarakas/wallet-service/internal/api/httpx"
	"github.com/baharkarakas/wallet-service/internal/models"
)

// Pinger is satisfied by *pgxpool.Pool and the memory store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	DB  Pinger
	Now func() time.Time
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{DB: db, Now: time.Now}
}

type healthResp struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
}

// GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	ts := h.Now().UTC().Format(models.TimestampLayout)
	if err := h.DB.Ping(ctx); err != nil {
		slog.Error("health check", "err", err)
		httpx.WriteJSON(w, http.StatusServiceUnavailable, healthResp{
			Status:    "error",
			Message:   "Database connection failed",
			Timestamp: ts,
		})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, healthResp{Status: "ok", Timestamp: ts})
}
