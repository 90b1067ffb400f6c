package pdftext

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// Extract pulls the plain text out of a PDF. Layout is not preserved; the
// result feeds summarization and retrieval, not display.
func Extract(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}

	return buf.String(), nil
}

// ExtractBytes is a convenience wrapper for uploaded files already in memory.
func ExtractBytes(data []byte) (string, error) {
	return Extract(bytes.NewReader(data), int64(len(data)))
}
