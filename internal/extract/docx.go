package extract

import (
	"encoding/xml"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// DocxExtractor concatenates paragraph text in document order.
type DocxExtractor struct{}

func NewDocxExtractor() *DocxExtractor {
	return &DocxExtractor{}
}

func (e *DocxExtractor) Name() string {
	return "docx"
}

func (e *DocxExtractor) Extensions() []string {
	return []string{".docx"}
}

func (e *DocxExtractor) Extract(filePath string) (string, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", &ExtractionError{Format: "docx", Err: err}
	}
	defer r.Close()

	return flattenDocumentXML(r.Editable().GetContent()), nil
}

// flattenDocumentXML pulls the text runs (<w:t>) out of a
// WordprocessingML body, one line per paragraph (</w:p>).
func flattenDocumentXML(content string) string {
	dec := xml.NewDecoder(strings.NewReader(content))
	var b strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return b.String()
}
