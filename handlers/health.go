package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type HealthHandler struct {
	logger *zap.Logger
}

func NewHealthHandler(logger *zap.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
		h.logger.Error("❌ Failed to write health check response", zap.Error(err))
	}
}

// SetupEndpoints registers /health; OPTIONS is routed so a CORS middleware can answer preflights.
func (h *HealthHandler) SetupEndpoints(router *mux.Router, middlewares ...mux.MiddlewareFunc) {
	router.Handle("/health", chain(http.HandlerFunc(h.HandleHealth), middlewares)).
		Methods(http.MethodGet, http.MethodOptions)
	h.logger.Info("✅ GET /health endpoint registered")
}
