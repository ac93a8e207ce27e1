package invoice

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// FileError records a source file that could not be processed. The rest
// of the batch is unaffected.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Extractor turns PDF files into Invoice records. Absent fields are the
// expected common case; only an unopenable PDF is an error.
type Extractor struct {
	reader *PDFReader
	logger *zap.Logger
}

// NewExtractor creates an invoice extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{
		reader: NewPDFReader(logger),
		logger: logger,
	}
}

// ExtractFromText runs every field heuristic over already extracted text
// and assembles the record. Line items are not extracted.
func ExtractFromText(text, filename string) *Invoice {
	net, tax, gross := ExtractTotals(text)

	return &Invoice{
		SourcePDF:     filename,
		InvoiceNumber: ExtractInvoiceNumber(text),
		InvoiceDate:   ExtractInvoiceDate(text),
		BuyerName:     ExtractBuyer(text),
		SellerName:    ExtractSeller(text),
		Currency:      ExtractCurrency(text),
		NetTotal:      net,
		TaxAmount:     tax,
		GrossTotal:    gross,
		LineItems:     []LineItem{},
	}
}

// ExtractFromReader reads one PDF stream and extracts an invoice from
// it. The filename is kept on the record as the fallback identifier.
func (e *Extractor) ExtractFromReader(r io.Reader, filename string) (*Invoice, error) {
	text, err := e.reader.Text(r, filename)
	if err != nil {
		return nil, err
	}

	inv := ExtractFromText(text, filename)

	e.logger.Debug("Extracted invoice",
		zap.String("file", filename),
		zap.String("invoice_id", inv.ID()))

	return inv, nil
}

// ExtractFromDir processes every *.pdf file directly inside dir, in
// whatever order the filesystem yields. A file that fails to open as a
// PDF is reported in the returned FileError slice and the batch
// continues; only listing the directory itself can fail hard.
func (e *Extractor) ExtractFromDir(dir string) ([]*Invoice, []FileError, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var invoices []*Invoice
	var failures []FileError

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			e.logger.Error("Failed to open PDF", zap.String("path", path), zap.Error(err))
			failures = append(failures, FileError{File: entry.Name(), Err: err})
			continue
		}

		inv, err := e.ExtractFromReader(f, entry.Name())
		f.Close()
		if err != nil {
			e.logger.Error("Failed to extract invoice", zap.String("path", path), zap.Error(err))
			failures = append(failures, FileError{File: entry.Name(), Err: err})
			continue
		}

		invoices = append(invoices, inv)
	}

	e.logger.Info("Extracted invoices from directory",
		zap.String("dir", dir),
		zap.Int("invoice_count", len(invoices)),
		zap.Int("failure_count", len(failures)))

	return invoices, failures, nil
}
