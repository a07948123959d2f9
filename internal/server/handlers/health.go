package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"galaxy-server/internal/session"
	"galaxy-server/internal/shared/response"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Engine    string `json:"engine"`
	Store     string `json:"store"`
	StoreName string `json:"store_name"`
}

// HealthSource reports on the session binding and its snapshot store.
type HealthSource interface {
	Binding() session.Binding
	StoreHealth(ctx context.Context) (string, error)
}

type HealthHandler struct {
	source HealthSource
}

func NewHealthHandler(source HealthSource) *HealthHandler {
	return &HealthHandler{source: source}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	engineStatus := "unbound"
	if _, ok := h.source.Binding().(session.Bound); ok {
		engineStatus = "bound"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	storeStatus := "connected"
	storeName, err := h.source.StoreHealth(ctx)
	if err != nil {
		storeStatus = "disconnected"
		logger.Warn("Session store ping failed", "store", storeName, "error", err)
	}

	status := "healthy"
	if err != nil {
		status = "degraded"
	}

	response.Success(w, http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().Format(time.RFC3339),
		Engine:    engineStatus,
		Store:     storeStatus,
		StoreName: storeName,
	})
}
