// handlers_health.go - Health check handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/resume-analyzer/backend/internal/classify"
)

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	version string
	model   classify.Stats
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, model classify.Stats) HealthHandler {
	return &HealthHandlerImpl{
		version: version,
		model:   model,
	}
}

// HandleHealth returns server health status. The process only starts
// after the model artifacts loaded, so reaching this handler implies
// the model is ready.
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"model":   h.model,
	})
}
