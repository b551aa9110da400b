// errors.go - Structured error handling for API responses
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/resume-analyzer/backend/internal/extract"
	"github.com/resume-analyzer/backend/internal/upload"
)

// APIError represents a structured API error response
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewInternalError creates a 500 Internal Server Error
func NewInternalError(message string, cause error) *APIError {
	err := &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// toAPIError converts pipeline errors into the API error taxonomy.
// Validation failures map to 400, unreadable documents to 422 and
// everything else to 500.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var validationErr *upload.ValidationError
	if errors.As(err, &validationErr) {
		return &APIError{
			Status:  http.StatusBadRequest,
			Code:    "VALIDATION_ERROR",
			Message: validationErr.Reason,
		}
	}

	var extractionErr *extract.ExtractionError
	if errors.As(err, &extractionErr) {
		return &APIError{
			Status:  http.StatusUnprocessableEntity,
			Code:    "EXTRACTION_ERROR",
			Message: "could not read the uploaded document",
			Details: extractionErr.Error(),
		}
	}

	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "UNKNOWN_ERROR",
		Message: "An unexpected error occurred",
		Details: err.Error(),
	}
}

// NewErrorHandler returns the central Echo error handler. API routes get
// a JSON body; page routes get the rendered error template. Details are
// stripped outside development mode.
func NewErrorHandler(development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var apiErr *APIError

		switch e := err.(type) {
		case *APIError:
			apiErr = e
		case *echo.HTTPError:
			apiErr = &APIError{
				Status:  e.Code,
				Code:    "HTTP_ERROR",
				Message: fmt.Sprintf("%v", e.Message),
			}
		default:
			apiErr = toAPIError(err)
		}

		if !development {
			apiErr.Details = ""
		}

		if strings.HasPrefix(c.Request().URL.Path, "/api/") {
			c.JSON(apiErr.Status, apiErr)
			return
		}

		if renderErr := c.Render(apiErr.Status, "error.html", map[string]interface{}{
			"Message": apiErr.Message,
		}); renderErr != nil {
			c.String(apiErr.Status, apiErr.Message)
		}
	}
}
