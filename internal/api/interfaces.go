// interfaces.go - Handler dependency contracts
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/resume-analyzer/backend/internal/models"
)

// TextExtractor produces plain text from a stored document.
type TextExtractor interface {
	Text(filePath string) (string, error)
}

// RoleClassifier scores extracted text against the loaded model.
type RoleClassifier interface {
	Predict(text string) ([]models.Prediction, error)
}

// PageHandler serves the HTML surface.
type PageHandler interface {
	HandleIndex(c echo.Context) error
	HandlePredictPage(c echo.Context) error
}

// PredictHandler serves the JSON prediction API.
type PredictHandler interface {
	HandlePredictAPI(c echo.Context) error
}

// HealthHandler serves the liveness probe.
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}
