// Package pdftext converts source PDFs into page-concatenated plain text.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/complianceworks/fda483/internal/common"
)

// Extractor turns a source document into plain text. The batch orchestrator
// depends on this contract so tests can substitute canned text.
type Extractor interface {
	Extract(path string) (string, error)
}

// Reader extracts text with the pure-Go pdf parser. Stateless.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// Extract returns the document's text, one page after another, each page
// terminated by a newline. Any parse failure is a per-case fatal read error.
func (r *Reader) Extract(path string) (string, error) {
	f, doc, err := pdf.Open(path)
	if err != nil {
		return "", common.NewAppError("PDF_READ_ERROR", fmt.Sprintf("open %s: %v", path, err), common.ErrPDFRead)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", common.NewAppError("PDF_READ_ERROR", fmt.Sprintf("page %d of %s: %v", i, path, err), common.ErrPDFRead)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}
