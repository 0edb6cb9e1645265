package handlers

import (
	"context"

	"github.com/fasthttp/router"
	xhttp "github.com/nimasrn/debt-ledger/pkg/http"
	"github.com/nimasrn/debt-ledger/pkg/logger"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checker HealthChecker
}

func RegisterHealthRoutes(e *router.Group, h *HealthHandler) {
	e.GET("/health", h.GetHealth)
}

func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{
		checker: checker,
	}
}

func (h *HealthHandler) GetHealth(ctx *xhttp.RequestCtx) {
	if err := h.checker.Ping(ctx); err != nil {
		logger.Error("health check failed", "error", err)
		writeJSON(ctx, xhttp.StatusInternalServerError, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "ok"})
}
