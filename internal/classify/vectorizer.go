package classify

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// tokenPattern matches word tokens of two or more characters, the same
// tokenization the vectorizer was fitted with.
var tokenPattern = regexp.MustCompile(`[\pL\pN]{2,}`)

// Vectorizer is a fitted TF-IDF vectorizer: a learned vocabulary plus
// the matching inverse-document-frequency weights. It is read-only
// after load and safe for concurrent use.
type Vectorizer struct {
	Vocabulary map[string]int `msgpack:"vocabulary"`
	Idf        []float64      `msgpack:"idf"`
}

// Transform converts raw text into an l2-normalized sparse TF-IDF
// vector keyed by vocabulary index. Out-of-vocabulary tokens are
// dropped.
func (v *Vectorizer) Transform(text string) map[int]float64 {
	counts := make(map[int]int)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if idx, ok := v.Vocabulary[tok]; ok {
			counts[idx]++
		}
	}

	vec := make(map[int]float64, len(counts))
	var norm float64
	for idx, n := range counts {
		w := float64(n) * v.Idf[idx]
		vec[idx] = w
		norm += w * w
	}

	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}

	return vec
}

// Terms returns the vocabulary size.
func (v *Vectorizer) Terms() int {
	return len(v.Vocabulary)
}

func (v *Vectorizer) validate() error {
	if len(v.Vocabulary) == 0 {
		return fmt.Errorf("empty vocabulary")
	}
	if len(v.Idf) != len(v.Vocabulary) {
		return fmt.Errorf("vocabulary has %d terms but idf has %d weights", len(v.Vocabulary), len(v.Idf))
	}
	for term, idx := range v.Vocabulary {
		if idx < 0 || idx >= len(v.Idf) {
			return fmt.Errorf("term %q maps to out-of-range index %d", term, idx)
		}
	}
	return nil
}
