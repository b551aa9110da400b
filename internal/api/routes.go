// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/resume-analyzer/backend/internal/classify"
	"github.com/resume-analyzer/backend/internal/storage"
	"github.com/resume-analyzer/backend/internal/upload"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Validator  *upload.Validator
	Store      *storage.TempStore
	Extractor  TextExtractor
	Classifier RoleClassifier
	Version    string
	ModelStats classify.Stats
}

// Handlers holds all handler instances
type Handlers struct {
	Pages   PageHandler
	Predict PredictHandler
	Health  HealthHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	predict := NewPredictHandler(deps.Validator, deps.Store, deps.Extractor, deps.Classifier)

	return &Handlers{
		Pages:   predict,
		Predict: predict,
		Health:  NewHealthHandler(deps.Version, deps.ModelStats),
	}
}

// RegisterRoutes registers all routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	// HTML surface
	e.GET("/", handlers.Pages.HandleIndex)
	e.POST("/predict", handlers.Pages.HandlePredictPage)

	// Liveness endpoint
	e.GET("/health", handlers.Health.HandleHealth)

	// JSON API
	apiGroup := e.Group("/api")
	apiGroup.GET("/health", handlers.Health.HandleHealth)
	apiGroup.POST("/predict", handlers.Predict.HandlePredictAPI)
}
