// Package validator runs rule checks over extracted invoices and builds
// the corpus-level validation report. Rule violations are data (error
// code strings), never Go errors: validation always computes the full
// list and never short-circuits.
package validator

import (
	"math"
	"strings"

	"github.com/Prahallad321/invoice-qc-service/internal/invoice"
)

var allowedCurrencies = map[string]bool{
	"INR": true,
	"USD": true,
	"EUR": true,
	"GBP": true,
}

// Result is the validation outcome for one invoice. Errors keep the
// order the rules ran in; duplicate detection, when it fires, is always
// the last entry.
type Result struct {
	InvoiceID string   `json:"invoice_id"`
	IsValid   bool     `json:"is_valid"`
	Errors    []string `json:"errors"`
}

// Summary aggregates a whole batch.
type Summary struct {
	TotalInvoices   int            `json:"total_invoices"`
	ValidInvoices   int            `json:"valid_invoices"`
	InvalidInvoices int            `json:"invalid_invoices"`
	ErrorCounts     map[string]int `json:"error_counts"`
}

// Report is the corpus-level validation report, one Result per input
// invoice in input order.
type Report struct {
	Results []Result `json:"results"`
	Summary Summary  `json:"summary"`
}

// dupKey identifies repeated invoices within a batch. Absent number and
// date are valid key components, so invoices missing both collide with
// each other.
type dupKey struct {
	number  string
	date    string
	hasDate bool
}

func keyOf(inv *invoice.Invoice) dupKey {
	k := dupKey{number: inv.InvoiceNumber}
	if inv.InvoiceDate != nil {
		k.date = inv.InvoiceDate.String()
		k.hasDate = true
	}
	return k
}

// ValidateInvoice checks a single invoice and returns its error codes in
// rule order: completeness, currency format, non-negativity, totals
// consistency, date sanity. Pure function of the invoice.
func ValidateInvoice(inv *invoice.Invoice) []string {
	var errs []string

	// Completeness
	if inv.InvoiceNumber == "" {
		errs = append(errs, "missing:invoice_number")
	}
	if inv.InvoiceDate == nil {
		errs = append(errs, "missing:invoice_date")
	}
	if inv.SellerName == "" {
		errs = append(errs, "missing:seller_name")
	}
	if inv.BuyerName == "" {
		errs = append(errs, "missing:buyer_name")
	}

	// Format
	if inv.Currency != "" && !allowedCurrencies[strings.ToUpper(inv.Currency)] {
		errs = append(errs, "invalid:currency:"+inv.Currency)
	}

	for _, f := range []struct {
		name  string
		value *float64
	}{
		{"net_total", inv.NetTotal},
		{"tax_amount", inv.TaxAmount},
		{"gross_total", inv.GrossTotal},
	} {
		if f.value != nil && *f.value < 0 {
			errs = append(errs, "invalid:negative:"+f.name)
		}
	}

	// Business rule: net + tax ≈ gross. Compared in whole cents so that
	// a difference of exactly 0.02 stays inside the tolerance.
	if inv.NetTotal != nil && inv.TaxAmount != nil && inv.GrossTotal != nil {
		expected := math.Round((*inv.NetTotal + *inv.TaxAmount) * 100)
		provided := math.Round(*inv.GrossTotal * 100)
		if math.Abs(expected-provided) > 2 {
			errs = append(errs, "rule:totals_mismatch")
		}
	}

	// Anomaly: date range sanity
	if inv.InvoiceDate != nil {
		if year := inv.InvoiceDate.Year(); year < 2000 || year > 2100 {
			errs = append(errs, "anomaly:invoice_date_out_of_range")
		}
	}

	return errs
}

// ValidateInvoices validates a batch in input order, flagging the second
// and later occurrences of a (number, date) key as duplicates. Validity
// means an empty error list; error counts are keyed by the full code
// string, offending currency value included.
func ValidateInvoices(invoices []*invoice.Invoice) *Report {
	results := make([]Result, 0, len(invoices))
	errorCounts := make(map[string]int)
	seen := make(map[dupKey]bool)

	valid := 0
	for _, inv := range invoices {
		key := keyOf(inv)
		duplicate := seen[key]
		if !duplicate {
			seen[key] = true
		}

		errs := ValidateInvoice(inv)
		if duplicate {
			errs = append(errs, "duplicate:invoice")
		}

		for _, e := range errs {
			errorCounts[e]++
		}

		if len(errs) == 0 {
			valid++
		}
		if errs == nil {
			errs = []string{}
		}

		results = append(results, Result{
			InvoiceID: inv.ID(),
			IsValid:   len(errs) == 0,
			Errors:    errs,
		})
	}

	return &Report{
		Results: results,
		Summary: Summary{
			TotalInvoices:   len(invoices),
			ValidInvoices:   valid,
			InvalidInvoices: len(invoices) - valid,
			ErrorCounts:     errorCounts,
		},
	}
}
