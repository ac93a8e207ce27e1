package invoice

import (
	"fmt"
	"io"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// PDFReader pulls plain text out of PDF documents using mupdf.
type PDFReader struct {
	logger *zap.Logger
}

// NewPDFReader creates a PDF text reader.
func NewPDFReader(logger *zap.Logger) *PDFReader {
	return &PDFReader{logger: logger}
}

// Text extracts the text of every page and joins pages with a newline.
// A page that cannot be read contributes an empty string; a stream that
// cannot be opened as a PDF at all is a hard error for the caller.
func (r *PDFReader) Text(reader io.Reader, name string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open %s as PDF: %w", name, err)
	}
	defer doc.Close()

	pages := make([]string, doc.NumPage())
	for n := range pages {
		text, err := doc.Text(n)
		if err != nil {
			r.logger.Warn("Failed to extract page text",
				zap.String("file", name),
				zap.Int("page", n),
				zap.Error(err))
			continue
		}
		pages[n] = text
	}

	return strings.Join(pages, "\n"), nil
}
