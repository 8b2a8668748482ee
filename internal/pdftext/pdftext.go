package pdftext

import (
	"bytes"
	"fmt"

	"github.com/dslipak/pdf"
)

// Extractor returns the plain text of a statement file.
type Extractor interface {
	Extract(path string) (string, error)
}

// PDFExtractor extracts the embedded text layer of a PDF. Scanned
// statements without a text layer come back empty, which the pipeline
// treats as "nothing to extract" rather than an error.
type PDFExtractor struct{}

// Extract opens a PDF and returns its plain text.
func (PDFExtractor) Extract(path string) (string, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("reading text: %w", err)
	}
	return buf.String(), nil
}
