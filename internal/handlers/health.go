package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness and the reachability of backing stores
type HealthHandler struct {
	checks map[string]func(context.Context) error
}

func NewHealthHandler(checks map[string]func(context.Context) error) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// HealthCheck returns 200 when every dependency answers, 503 otherwise
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			deps[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "up"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "degraded"
	}
	return c.JSON(status, echo.Map{
		"status":       overall,
		"service":      "socialfeed-api",
		"dependencies": deps,
	})
}
