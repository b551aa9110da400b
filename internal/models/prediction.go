package models

import "time"

// UploadedFile represents a resume persisted to a temporary path for the
// duration of a single request.
type UploadedFile struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	Path    string    `json:"-"`
	SavedAt time.Time `json:"savedAt"`
}

// Prediction is a single (role, score) pair produced by the classifier.
// Score is the raw decision value; Confidence is the softmax-normalized
// score across all classes.
type Prediction struct {
	Role       string  `json:"role"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// PredictionResult holds the ranked predictions for one uploaded resume.
type PredictionResult struct {
	FileName    string       `json:"fileName"`
	Predictions []Prediction `json:"predictions"`
}
