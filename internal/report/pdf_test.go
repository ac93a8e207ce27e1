package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prahallad321/invoice-qc-service/internal/invoice"
)

func f(v float64) *float64 { return &v }

func sampleInvoice() *invoice.Invoice {
	d := invoice.NewDate(2023, time.December, 31)
	return &invoice.Invoice{
		SourcePDF:     "sample.pdf",
		InvoiceNumber: "AUFNR1",
		SellerName:    "Muster Gmbh",
		BuyerName:     "Beispiel Ag",
		InvoiceDate:   &d,
		Currency:      "EUR",
		NetTotal:      f(100),
		TaxAmount:     f(19),
		GrossTotal:    f(119),
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   *float64
		currency string
		expected string
	}{
		{name: "absent amount", amount: nil, currency: "EUR", expected: "-"},
		{name: "no currency", amount: f(12.5), currency: "", expected: "12.50"},
		{name: "euro symbol", amount: f(119), currency: "EUR", expected: "€ 119.00"},
		{name: "lowercase code", amount: f(5), currency: "usd", expected: "$ 5.00"},
		{name: "unknown code has no symbol", amount: f(5), currency: "GBP", expected: "5.00"},
		{name: "thousands grouping", amount: f(1234.56), currency: "EUR", expected: "€ 1,234.56"},
		{name: "grouping repeats per three digits", amount: f(1234567.891), currency: "", expected: "1,234,567.89"},
		{name: "negative amount", amount: f(-1234.5), currency: "USD", expected: "$ -1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(tt.amount, tt.currency))
		})
	}
}

func TestWritePDF(t *testing.T) {
	renderer := NewPDFRenderer()

	valid := true
	var buf bytes.Buffer
	require.NoError(t, renderer.WritePDF(sampleInvoice(), &valid, &buf))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output should be a PDF document")
	assert.Greater(t, buf.Len(), 500)
}

func TestWritePDF_EmptyInvoice(t *testing.T) {
	renderer := NewPDFRenderer()

	// A record with every field absent must still render; the report
	// shows placeholders instead of failing.
	var buf bytes.Buffer
	require.NoError(t, renderer.WritePDF(&invoice.Invoice{}, nil, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestCreateFile(t *testing.T) {
	renderer := NewPDFRenderer()

	path := t.TempDir() + "/report.pdf"
	invalid := false
	require.NoError(t, renderer.CreateFile(sampleInvoice(), &invalid, path))

	assert.FileExists(t, path)
}
