// Package upload validates incoming resume uploads before any bytes are
// written to disk.
package upload

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError reports an upload the user can correct: wrong file
// type or a file over the configured size limit.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validator checks a declared filename and byte length against the
// configured limits. It has no side effects.
type Validator struct {
	maxSize int64
	allowed map[string]bool
}

// NewValidator creates a Validator that accepts PDF and DOCX uploads up
// to maxSize bytes.
func NewValidator(maxSize int64) *Validator {
	return &Validator{
		maxSize: maxSize,
		allowed: map[string]bool{
			".pdf":  true,
			".docx": true,
		},
	}
}

// Validate accepts only filenames with a supported extension
// (case-insensitive) and a byte length within the limit.
func (v *Validator) Validate(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !v.allowed[ext] {
		return &ValidationError{
			Reason: fmt.Sprintf("unsupported file type %q: only PDF and DOCX resumes are accepted", ext),
		}
	}
	if size > v.maxSize {
		return &ValidationError{
			Reason: fmt.Sprintf("file too large: %d bytes exceeds the %d byte limit", size, v.maxSize),
		}
	}
	return nil
}

// MaxSize returns the configured upload size limit in bytes.
func (v *Validator) MaxSize() int64 {
	return v.maxSize
}
