// Package classify runs resume text through the pre-trained vectorizer
// and classifier artifacts.
package classify

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/resume-analyzer/backend/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

// resultCount is the number of ranked roles returned per prediction.
const resultCount = 3

// ModelError reports artifacts that are missing or incompatible. It is
// fatal at startup; the server never serves requests without a loaded
// model.
type ModelError struct {
	Path string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("loading model artifact %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("model artifacts incompatible: %v", e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// Stats describes the loaded artifacts, reported by the health endpoint.
type Stats struct {
	Classes int `json:"classes"`
	Terms   int `json:"terms"`
}

// Classifier combines the two artifacts into the inference pipeline.
// Both are read-only after load and safe for concurrent readers.
type Classifier struct {
	vectorizer *Vectorizer
	model      *LinearModel
}

// New builds a Classifier from already-decoded artifacts, validating
// that they are dimensionally compatible.
func New(vectorizer *Vectorizer, model *LinearModel) (*Classifier, error) {
	if err := vectorizer.validate(); err != nil {
		return nil, &ModelError{Err: err}
	}
	if err := model.validate(len(vectorizer.Idf)); err != nil {
		return nil, &ModelError{Err: err}
	}
	return &Classifier{vectorizer: vectorizer, model: model}, nil
}

// Load reads both msgpack artifacts from disk and builds the Classifier.
func Load(vectorizerPath, modelPath string) (*Classifier, error) {
	var vectorizer Vectorizer
	if err := loadArtifact(vectorizerPath, &vectorizer); err != nil {
		return nil, err
	}

	var model LinearModel
	if err := loadArtifact(modelPath, &model); err != nil {
		return nil, err
	}

	return New(&vectorizer, &model)
}

func loadArtifact(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ModelError{Path: path, Err: err}
	}
	if err := msgpack.Unmarshal(data, v); err != nil {
		return &ModelError{Path: path, Err: err}
	}
	return nil
}

// Predict returns the top 3 roles by decision score descending, ties
// broken by the model's native class order.
func (c *Classifier) Predict(text string) ([]models.Prediction, error) {
	features := c.vectorizer.Transform(text)
	scores := c.model.DecisionScores(features)

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	confidence := softmax(scores)

	predictions := make([]models.Prediction, 0, resultCount)
	for _, idx := range order[:resultCount] {
		predictions = append(predictions, models.Prediction{
			Role:       c.model.Classes[idx],
			Score:      scores[idx],
			Confidence: confidence[idx],
		})
	}

	return predictions, nil
}

// Stats returns the dimensions of the loaded artifacts.
func (c *Classifier) Stats() Stats {
	return Stats{
		Classes: len(c.model.Classes),
		Terms:   c.vectorizer.Terms(),
	}
}

// softmax maps decision scores onto (0, 1) preserving their order.
func softmax(scores []float64) []float64 {
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}

	out := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		out[i] = math.Exp(s - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
