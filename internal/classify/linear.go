package classify

import "fmt"

// LinearModel is a fitted one-vs-rest linear classifier: one weight row
// and intercept per class, in the model's native class order.
type LinearModel struct {
	Classes   []string    `msgpack:"classes"`
	Coef      [][]float64 `msgpack:"coef"`
	Intercept []float64   `msgpack:"intercept"`
}

// DecisionScores returns one decision value per class for the given
// sparse feature vector.
func (m *LinearModel) DecisionScores(features map[int]float64) []float64 {
	scores := make([]float64, len(m.Classes))
	for i, row := range m.Coef {
		s := m.Intercept[i]
		for idx, val := range features {
			s += row[idx] * val
		}
		scores[i] = s
	}
	return scores
}

func (m *LinearModel) validate(featureDim int) error {
	if len(m.Classes) < resultCount {
		return fmt.Errorf("model has %d classes, need at least %d", len(m.Classes), resultCount)
	}
	if len(m.Coef) != len(m.Classes) {
		return fmt.Errorf("model has %d classes but %d coefficient rows", len(m.Classes), len(m.Coef))
	}
	if len(m.Intercept) != len(m.Classes) {
		return fmt.Errorf("model has %d classes but %d intercepts", len(m.Classes), len(m.Intercept))
	}
	for i, row := range m.Coef {
		if len(row) != featureDim {
			return fmt.Errorf("coefficient row %d has %d weights, vectorizer produces %d features", i, len(row), featureDim)
		}
	}
	return nil
}
