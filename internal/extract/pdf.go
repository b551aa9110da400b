package extract

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor reads pages sequentially and concatenates their plain
// text. A page with no extractable text (e.g. a scanned image)
// contributes an empty string rather than failing the document.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (e *PDFExtractor) Name() string {
	return "pdf"
}

func (e *PDFExtractor) Extensions() []string {
	return []string{".pdf"}
}

func (e *PDFExtractor) Extract(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", &ExtractionError{Format: "pdf", Err: err}
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || text == "" {
			// Page without recoverable text contributes nothing.
			continue
		}
		if b.Len() > 0 {
			// Keep words on a page boundary from running together.
			b.WriteByte('\n')
		}
		b.WriteString(text)
	}

	return b.String(), nil
}
