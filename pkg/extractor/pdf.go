package extractor

import (
	"bytes"
	"strings"

	"ai-learning-be/internal/pkg/apperr"

	"github.com/ledongthuc/pdf"
)

// PDFTextExtractor pulls plain text out of text-based PDFs. Scanned PDFs
// (no extractable text layer) are rejected rather than silently ingested
// as empty content.
type PDFTextExtractor struct{}

var _ PDFExtractor = (*PDFTextExtractor)(nil)

func NewPDFTextExtractor() *PDFTextExtractor {
	return &PDFTextExtractor{}
}

func (e *PDFTextExtractor) Extract(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperr.Wrap(apperr.KindValidation,
			"could not read the PDF; it may be corrupted or password-protected", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single broken page should not sink the document.
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return "", apperr.New(apperr.KindValidation,
			"no text could be extracted from this PDF; it may be a scanned image")
	}
	return strings.Join(pages, "\n"), nil
}
