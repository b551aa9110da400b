// handlers_predict.go - Resume upload and prediction handlers
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/resume-analyzer/backend/internal/models"
	"github.com/resume-analyzer/backend/internal/storage"
	"github.com/resume-analyzer/backend/internal/upload"
)

// PredictHandlerImpl implements the PageHandler and PredictHandler
// interfaces. Both surfaces share one pipeline: validate, persist to a
// temp path, extract, score, clean up, respond.
type PredictHandlerImpl struct {
	validator  *upload.Validator
	store      *storage.TempStore
	extractor  TextExtractor
	classifier RoleClassifier
}

// NewPredictHandler creates a new prediction handler instance
func NewPredictHandler(validator *upload.Validator, store *storage.TempStore, extractor TextExtractor, classifier RoleClassifier) *PredictHandlerImpl {
	return &PredictHandlerImpl{
		validator:  validator,
		store:      store,
		extractor:  extractor,
		classifier: classifier,
	}
}

// HandleIndex renders the upload form page. The size hint comes from
// the validator so the page always matches the enforced limit.
func (h *PredictHandlerImpl) HandleIndex(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", map[string]interface{}{
		"MaxUploadSize": formatSize(h.validator.MaxSize()),
	})
}

// formatSize renders a byte count with a binary suffix.
func formatSize(n int64) string {
	switch {
	case n >= 1<<30 && n%(1<<30) == 0:
		return fmt.Sprintf("%dG", n>>30)
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dM", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dK", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

// HandlePredictPage accepts a multipart resume upload and renders the
// results page, or the error page on any failure.
func (h *PredictHandlerImpl) HandlePredictPage(c echo.Context) error {
	result, err := h.run(c)
	if err != nil {
		apiErr := toAPIError(err)
		return c.Render(apiErr.Status, "error.html", map[string]interface{}{
			"Message": apiErr.Message,
		})
	}

	return c.Render(http.StatusOK, "results.html", result)
}

// HandlePredictAPI is the JSON twin of HandlePredictPage
func (h *PredictHandlerImpl) HandlePredictAPI(c echo.Context) error {
	result, err := h.run(c)
	if err != nil {
		return toAPIError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// run executes the prediction pipeline for one request. The temp upload
// is removed on every exit path after it has been saved.
func (h *PredictHandlerImpl) run(c echo.Context) (*models.PredictionResult, error) {
	fh, err := c.FormFile("resume")
	if err != nil {
		return nil, NewBadRequestError("no resume file provided", err)
	}

	if err := h.validator.Validate(fh.Filename, fh.Size); err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, NewInternalError("failed to open uploaded file", err)
	}
	defer src.Close()

	saved, err := h.store.Save(fh.Filename, src)
	if err != nil {
		return nil, NewInternalError("failed to store uploaded file", err)
	}
	defer h.store.Remove(saved)

	text, err := h.extractor.Text(saved.Path)
	if err != nil {
		return nil, err
	}

	predictions, err := h.classifier.Predict(text)
	if err != nil {
		return nil, NewInternalError("prediction failed", err)
	}

	return &models.PredictionResult{
		FileName:    fh.Filename,
		Predictions: predictions,
	}, nil
}
