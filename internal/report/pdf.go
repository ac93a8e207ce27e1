// Package report renders validation output for humans: a per-invoice QC
// report PDF and an XLSX workbook for a whole batch. The core pipeline
// never calls into this package; persistence is the caller's job.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/Prahallad321/invoice-qc-service/internal/invoice"
)

var currencySymbols = map[string]string{
	"EUR": "€",
	"INR": "₹",
	"USD": "$",
}

// FormatCurrency renders an amount with the currency symbol, or "-" for
// an absent amount. Amounts carry two decimals and comma-grouped
// thousands, e.g. "€ 1,234.56".
func FormatCurrency(amount *float64, currency string) string {
	if amount == nil {
		return "-"
	}
	if currency == "" {
		return formatAmount(*amount)
	}
	symbol := currencySymbols[strings.ToUpper(currency)]
	return strings.TrimSpace(symbol + " " + formatAmount(*amount))
}

func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	dot := strings.Index(s, ".")
	whole, frac := s[:dot], s[dot:]
	for i := len(whole) - 3; i > 0; i -= 3 {
		whole = whole[:i] + "," + whole[i:]
	}
	return sign + whole + frac
}

// PDFRenderer draws per-invoice QC reports.
type PDFRenderer struct{}

// NewPDFRenderer creates a QC report renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// WritePDF renders the QC report for one invoice to w. status carries
// the validator verdict when known.
func (r *PDFRenderer) WritePDF(inv *invoice.Invoice, status *bool, w io.Writer) error {
	pdf := r.build(inv, status)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render report for %s: %w", inv.ID(), err)
	}
	return nil
}

// CreateFile renders the QC report for one invoice into a file.
func (r *PDFRenderer) CreateFile(inv *invoice.Invoice, status *bool, path string) error {
	pdf := r.build(inv, status)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write report for %s: %w", inv.ID(), err)
	}
	return nil
}

func (r *PDFRenderer) build(inv *invoice.Invoice, status *bool) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Title
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Invoice QC Report", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	statusLabel := "-"
	fillR, fillG, fillB := 245, 245, 245
	if status != nil {
		if *status {
			statusLabel = "valid"
			fillR, fillG, fillB = 182, 242, 181
		} else {
			statusLabel = "invalid"
			fillR, fillG, fillB = 255, 179, 179
		}
	}

	invoiceDate := ""
	if inv.InvoiceDate != nil {
		invoiceDate = inv.InvoiceDate.String()
	}

	// Header table: identifier, parties, date, gross total, status.
	headers := []string{"Invoice ID", "Buyer", "Seller", "Invoice Date", "Gross Total", "Status"}
	values := []string{
		inv.ID(),
		inv.BuyerName,
		inv.SellerName,
		invoiceDate,
		FormatCurrency(inv.GrossTotal, inv.Currency),
		statusLabel,
	}
	widths := []float64{28, 38, 38, 26, 26, 18}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(245, 245, 245)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for i, v := range values {
		fill := i == len(values)-1
		if fill {
			pdf.SetFillColor(fillR, fillG, fillB)
		}
		pdf.CellFormat(widths[i], 7, tr(v), "1", 0, "L", fill, 0, "")
	}
	pdf.Ln(12)

	// Buyer / seller boxes
	buyer := inv.BuyerName
	if buyer == "" {
		buyer = "Buyer"
	}
	seller := inv.SellerName
	if seller == "" {
		seller = "Seller"
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(87, 12, tr(buyer), "1", 0, "L", false, 0, "")
	pdf.CellFormat(87, 12, tr(seller), "1", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Invoice info and totals, side by side.
	left := [][2]string{
		{"Invoice Number", firstNonEmpty(inv.InvoiceNumber, inv.ID())},
		{"Invoice Date", firstNonEmpty(invoiceDate, "-")},
	}
	right := [][2]string{
		{"Currency", firstNonEmpty(inv.Currency, "-")},
		{"Net Total", FormatCurrency(inv.NetTotal, inv.Currency)},
		{"Tax Total", FormatCurrency(inv.TaxAmount, inv.Currency)},
		{"Gross Total", FormatCurrency(inv.GrossTotal, inv.Currency)},
	}

	y := pdf.GetY()
	r.keyValueBlock(pdf, tr, 20, y, "Invoice Information", left)
	r.keyValueBlock(pdf, tr, 110, y, "Currency / Totals", right)

	rows := len(right)
	pdf.SetY(y + float64(rows+1)*6 + 6)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "Line items not included in this version.", "", 1, "L", false, 0, "")

	return pdf
}

func (r *PDFRenderer) keyValueBlock(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, title string, rows [][2]string) {
	pdf.SetXY(x, y)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(80, 6, title, "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		pdf.SetX(x)
		pdf.CellFormat(35, 6, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, tr(row[1]), "", 1, "L", false, 0, "")
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
