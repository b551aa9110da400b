// Package extract converts uploaded resume documents into plain text.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNoText reports a document from which no text could be recovered,
// e.g. a scanned image-only resume.
var ErrNoText = errors.New("document contains no extractable text")

// ExtractionError reports a document the underlying parser could not
// read. It is user-correctable: the upload was accepted but the content
// is corrupt or unreadable.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s text: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extractor produces plain text from one document format.
type Extractor interface {
	// Name returns the unique name of the extractor.
	Name() string
	// Extensions returns the filename extensions this extractor handles.
	Extensions() []string
	// Extract reads the file and returns its plain text.
	Extract(filePath string) (string, error)
}

// Registry dispatches to the extractor registered for a file's
// extension.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry creates a registry with the PDF and DOCX extractors.
func NewRegistry() *Registry {
	r := &Registry{byExt: make(map[string]Extractor)}
	r.Register(NewPDFExtractor())
	r.Register(NewDocxExtractor())
	return r
}

// Register adds an extractor for all of its extensions.
func (r *Registry) Register(e Extractor) {
	for _, ext := range e.Extensions() {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// Find returns the extractor for a filename's extension.
func (r *Registry) Find(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	e, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("no extractor registered for %q", ext)
	}
	return e, nil
}

// Text extracts plain text from filePath, dispatching on its extension.
// A document that yields only whitespace is reported as an
// ExtractionError wrapping ErrNoText.
func (r *Registry) Text(filePath string) (string, error) {
	e, err := r.Find(filePath)
	if err != nil {
		return "", &ExtractionError{Format: "document", Err: err}
	}

	text, err := e.Extract(filePath)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{Format: e.Name(), Err: ErrNoText}
	}

	return text, nil
}
