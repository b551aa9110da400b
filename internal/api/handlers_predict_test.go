// handlers_predict_test.go - Tests for the prediction pipeline handlers
package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/resume-analyzer/backend/internal/classify"
	"github.com/resume-analyzer/backend/internal/extract"
	"github.com/resume-analyzer/backend/internal/models"
	"github.com/resume-analyzer/backend/internal/storage"
	"github.com/resume-analyzer/backend/internal/testutil"
	"github.com/resume-analyzer/backend/internal/upload"
	"github.com/resume-analyzer/backend/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	renderer, err := web.NewRenderer()
	require.NoError(t, err)
	e.Renderer = renderer
	e.HTTPErrorHandler = NewErrorHandler(true)
	return e
}

func newTestDeps(t *testing.T, extractor TextExtractor, classifier RoleClassifier) (*Dependencies, *storage.TempStore) {
	t.Helper()
	store, err := storage.NewTempStore(t.TempDir())
	require.NoError(t, err)

	return &Dependencies{
		Validator:  upload.NewValidator(16 << 20),
		Store:      store,
		Extractor:  extractor,
		Classifier: classifier,
		Version:    "test",
		ModelStats: classify.Stats{Classes: 4, Terms: 5},
	}, store
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func assertUploadDirEmpty(t *testing.T, store *storage.TempStore) {
	t.Helper()
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary upload must be deleted before the response is sent")
}

func TestHandlePredictPage_Success(t *testing.T) {
	classifier, err := testutil.NewTestClassifier()
	require.NoError(t, err)

	deps, store := newTestDeps(t, &testutil.StaticExtractor{
		TextValue: "Data Scientist with 5 years of Python and SQL experience",
	}, classifier)
	handlers := NewHandlers(deps)

	e := newTestEcho(t)
	body, contentType := multipartBody(t, "resume", "resume.pdf", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handlers.Pages.HandlePredictPage(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, "resume.pdf")
	assert.Contains(t, page, "Data Scientist")
	assert.Contains(t, page, "Confidence:")
	assertUploadDirEmpty(t, store)
}

func TestHandlePredictPage_NoFile(t *testing.T) {
	deps, _ := newTestDeps(t, &testutil.StaticExtractor{}, &testutil.StaticClassifier{})
	handlers := NewHandlers(deps)

	e := newTestEcho(t)
	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handlers.Pages.HandlePredictPage(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no resume file provided")
}

func TestHandlePredictPage_UnsupportedType(t *testing.T) {
	deps, store := newTestDeps(t, &testutil.StaticExtractor{}, &testutil.StaticClassifier{})
	handlers := NewHandlers(deps)

	e := newTestEcho(t)
	body, contentType := multipartBody(t, "resume", "resume.txt", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handlers.Pages.HandlePredictPage(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported file type")
	assertUploadDirEmpty(t, store)
}

func TestHandlePredictPage_FileTooLarge(t *testing.T) {
	deps, store := newTestDeps(t, &testutil.StaticExtractor{}, &testutil.StaticClassifier{})
	deps.Validator = upload.NewValidator(8)
	handlers := NewHandlers(deps)

	e := newTestEcho(t)
	body, contentType := multipartBody(t, "resume", "resume.pdf", []byte("more than eight bytes"))
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handlers.Pages.HandlePredictPage(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "file too large")
	assertUploadDirEmpty(t, store)
}

func TestHandlePredictPage_ExtractionError(t *testing.T) {
	deps, store := newTestDeps(t, &testutil.StaticExtractor{
		Err: &extract.ExtractionError{Format: "pdf", Err: extract.ErrNoText},
	}, &testutil.StaticClassifier{})
	handlers := NewHandlers(deps)

	e := newTestEcho(t)
	body, contentType := multipartBody(t, "resume", "corrupt.pdf", []byte("garbage"))
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handlers.Pages.HandlePredictPage(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not read the uploaded document")
	assertUploadDirEmpty(t, store)
}

func TestHandleIndex(t *testing.T) {
	deps, _ := newTestDeps(t, &testutil.StaticExtractor{}, &testutil.StaticClassifier{})
	handlers := NewHandlers(deps)

	e := newTestEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handlers.Pages.HandleIndex(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="resume"`)
	assert.Contains(t, rec.Body.String(), "16M")
}

func TestHandleIndex_HintTracksValidatorLimit(t *testing.T) {
	deps, _ := newTestDeps(t, &testutil.StaticExtractor{}, &testutil.StaticClassifier{})
	deps.Validator = upload.NewValidator(4 << 20)
	handlers := NewHandlers(deps)

	e := newTestEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handlers.Pages.HandleIndex(c))

	assert.Contains(t, rec.Body.String(), "4M")
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{16 << 20, "16M"},
		{512 << 10, "512K"},
		{2 << 30, "2G"},
		{1500, "1500 bytes"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSize(tt.n))
	}
}

// The full pipeline against the real extractor registry: a well-formed
// PDF goes in, three ranked roles come out, and the temp upload is gone.
func TestHandlePredictPage_RealPDFUpload(t *testing.T) {
	classifier, err := testutil.NewTestClassifier()
	require.NoError(t, err)

	deps, store := newTestDeps(t, extract.NewRegistry(), classifier)
	handlers := NewHandlers(deps)

	e := newTestEcho(t)
	RegisterRoutes(e, handlers)

	pdfData := testutil.MinimalPDF(
		"Data Scientist with Python and SQL experience",
		"Security and data engineering background",
	)
	body, contentType := multipartBody(t, "resume", "resume.pdf", pdfData)
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, "resume.pdf")
	assert.Contains(t, page, "Data Scientist")
	assert.Contains(t, page, "Security Engineer")
	assert.Contains(t, page, "Backend Developer")
	assertUploadDirEmpty(t, store)
}

func TestHandlePredictAPI_Success(t *testing.T) {
	classifier, err := testutil.NewTestClassifier()
	require.NoError(t, err)

	deps, store := newTestDeps(t, &testutil.StaticExtractor{
		TextValue: "security engineer with python",
	}, classifier)
	handlers := NewHandlers(deps)

	e := newTestEcho(t)
	RegisterRoutes(e, handlers)

	body, contentType := multipartBody(t, "resume", "resume.docx", []byte("PK fake docx"))
	req := httptest.NewRequest(http.MethodPost, "/api/predict", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.PredictionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "resume.docx", result.FileName)
	require.Len(t, result.Predictions, 3)
	assert.True(t, result.Predictions[0].Confidence >= result.Predictions[1].Confidence)
	assert.True(t, result.Predictions[1].Confidence >= result.Predictions[2].Confidence)
	assertUploadDirEmpty(t, store)
}

func TestHandlePredictAPI_ValidationError(t *testing.T) {
	deps, _ := newTestDeps(t, &testutil.StaticExtractor{}, &testutil.StaticClassifier{})
	handlers := NewHandlers(deps)

	e := newTestEcho(t)
	RegisterRoutes(e, handlers)

	body, contentType := multipartBody(t, "resume", "resume.txt", []byte("nope"))
	req := httptest.NewRequest(http.MethodPost, "/api/predict", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
}

func TestHandlePredictAPI_WrongFieldName(t *testing.T) {
	deps, _ := newTestDeps(t, &testutil.StaticExtractor{}, &testutil.StaticClassifier{})
	handlers := NewHandlers(deps)

	e := newTestEcho(t)
	RegisterRoutes(e, handlers)

	body, contentType := multipartBody(t, "document", "resume.pdf", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/predict", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "BAD_REQUEST", apiErr.Code)
}
