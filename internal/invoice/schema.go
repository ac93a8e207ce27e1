// Package invoice holds the canonical invoice record and the heuristics
// that populate it from raw PDF text. The record is shared by the
// validator, the CLI, the HTTP API and the report renderers.
package invoice

import (
	"fmt"
	"strings"
	"time"
)

// UnknownInvoiceID is the identifier used when an invoice carries neither
// an invoice number nor a source filename.
const UnknownInvoiceID = "UNKNOWN_INVOICE"

// DateLayout is the wire format for invoice dates.
const DateLayout = "2006-01-02"

// Date is a calendar date. It serializes as an ISO-8601 date string
// (no time component) in JSON.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON renders the date as "yyyy-mm-dd".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON accepts "yyyy-mm-dd" strings.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// String returns the ISO-8601 form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// LineItem is one row of an invoice. Line-item extraction is not
// implemented; the slice on Invoice stays empty for now.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// Invoice is the canonical record produced by extraction. Every field is
// optional: empty strings and nil pointers mean "not found". Absent
// fields still appear in the JSON output, pointers as explicit nulls.
// An Invoice is built once by the extractor and never mutated afterwards.
type Invoice struct {
	SourcePDF     string     `json:"source_pdf"`
	InvoiceNumber string     `json:"invoice_number"`
	SellerName    string     `json:"seller_name"`
	BuyerName     string     `json:"buyer_name"`
	InvoiceDate   *Date      `json:"invoice_date"`
	Currency      string     `json:"currency"`
	NetTotal      *float64   `json:"net_total"`
	TaxAmount     *float64   `json:"tax_amount"`
	GrossTotal    *float64   `json:"gross_total"`
	LineItems     []LineItem `json:"line_items"`
}

// ID returns the unified identifier used for filenames, report lookups
// and table rows: the invoice number, falling back to the source
// filename, falling back to UnknownInvoiceID. It is derived on every
// call, never stored.
func (inv *Invoice) ID() string {
	if inv.InvoiceNumber != "" {
		return inv.InvoiceNumber
	}
	if inv.SourcePDF != "" {
		return inv.SourcePDF
	}
	return UnknownInvoiceID
}
