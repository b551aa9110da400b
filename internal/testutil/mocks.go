// Package testutil provides mocks and fixture builders for tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/resume-analyzer/backend/internal/classify"
	"github.com/resume-analyzer/backend/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

// StaticExtractor returns a fixed text (or error) for any path.
type StaticExtractor struct {
	TextValue string
	Err       error
}

func (e *StaticExtractor) Text(filePath string) (string, error) {
	if e.Err != nil {
		return "", e.Err
	}
	return e.TextValue, nil
}

// StaticClassifier returns a fixed prediction list (or error).
type StaticClassifier struct {
	Predictions []models.Prediction
	Err         error
}

func (c *StaticClassifier) Predict(text string) ([]models.Prediction, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Predictions, nil
}

// NewTestVectorizer builds a small fitted vectorizer over a fixed
// vocabulary of tech terms.
func NewTestVectorizer() *classify.Vectorizer {
	return &classify.Vectorizer{
		Vocabulary: map[string]int{
			"python":   0,
			"data":     1,
			"sql":      2,
			"react":    3,
			"security": 4,
		},
		Idf: []float64{1.2, 1.5, 1.1, 1.8, 2.0},
	}
}

// NewTestModel builds a small fitted linear model with four classes
// over the test vectorizer's five features.
func NewTestModel() *classify.LinearModel {
	return &classify.LinearModel{
		Classes: []string{"Data Scientist", "Backend Developer", "Frontend Developer", "Security Engineer"},
		Coef: [][]float64{
			{0.9, 1.1, 0.4, -0.2, -0.5},
			{0.5, -0.1, 0.8, 0.1, -0.2},
			{-0.3, -0.4, 0.0, 1.2, -0.6},
			{-0.2, -0.1, 0.1, -0.3, 1.4},
		},
		Intercept: []float64{0.1, 0.0, -0.1, -0.2},
	}
}

// NewTestClassifier combines the test artifacts into a classifier.
func NewTestClassifier() (*classify.Classifier, error) {
	return classify.New(NewTestVectorizer(), NewTestModel())
}

// WriteArtifacts serializes the test artifacts into dir and returns the
// vectorizer and model paths.
func WriteArtifacts(dir string) (vectorizerPath, modelPath string, err error) {
	vectorizerPath = filepath.Join(dir, "vectorizer.msgpack")
	modelPath = filepath.Join(dir, "job_role_model.msgpack")

	vecData, err := msgpack.Marshal(NewTestVectorizer())
	if err != nil {
		return "", "", fmt.Errorf("encoding vectorizer: %w", err)
	}
	if err := os.WriteFile(vectorizerPath, vecData, 0644); err != nil {
		return "", "", err
	}

	modelData, err := msgpack.Marshal(NewTestModel())
	if err != nil {
		return "", "", fmt.Errorf("encoding model: %w", err)
	}
	if err := os.WriteFile(modelPath, modelData, 0644); err != nil {
		return "", "", err
	}

	return vectorizerPath, modelPath, nil
}
