package invoice

import (
	"regexp"
	"strings"
)

var (
	invoiceNumberRe = regexp.MustCompile(`AUFNR\d+`)
	// Order confirmation line, e.g. "Bestellung AUFNR12345 ... vom 31.12.2023".
	// The gap between the order number and "vom" may span lines.
	invoiceDateRe = regexp.MustCompile(`(?s)Bestellung\s+AUFNR\d+.*?vom\s+(\d{2}\.\d{2}\.\d{4}|\d{4}-\d{2}-\d{2})`)
	postalCodeRe  = regexp.MustCompile(`\b[0-9]{5}\b`)
	sellerLineRe  = regexp.MustCompile(`\n([A-Za-z\s]+(?:Corporation|GmbH|Ltd))`)
	sellerLooseRe = regexp.MustCompile(`\b([A-Za-z ]{4,40}(?:Corporation|GmbH|Ltd))\b`)
	numberTokenRe = regexp.MustCompile(`[€]?\s*[\d.,]+`)
)

var (
	netKeywords   = []string{"netto", "net total", "net amount", "subtotal"}
	taxKeywords   = []string{"mwst", "tax", "vat", "gst"}
	grossKeywords = []string{"gesamt", "gross", "total"}
)

// ExtractInvoiceNumber returns the first order-number token (AUFNR
// followed by digits), or "" when the text has none.
func ExtractInvoiceNumber(text string) string {
	return invoiceNumberRe.FindString(text)
}

// ExtractInvoiceDate finds the order date on the "Bestellung ... vom"
// line and parses it.
func ExtractInvoiceDate(text string) *Date {
	m := invoiceDateRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return ParseDate(m[1])
}

// ExtractBuyer assumes the buyer block sits right above an address line
// containing "Deutschland" or a 5-digit postal code, and returns the
// normalized line before the first such anchor. An anchor on the very
// first line has no predecessor and scanning keeps going.
func ExtractBuyer(text string) string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), "deutschland") || postalCodeRe.MatchString(line) {
			if i > 0 {
				return NormalizeName(lines[i-1])
			}
		}
	}
	return ""
}

// ExtractSeller looks for a line holding a company with a known legal
// form (Corporation, GmbH, Ltd), then falls back to a looser scan
// anywhere in the text.
func ExtractSeller(text string) string {
	if m := sellerLineRe.FindStringSubmatch(text); m != nil {
		return NormalizeName(m[1])
	}
	if m := sellerLooseRe.FindStringSubmatch(text); m != nil {
		return NormalizeName(m[1])
	}
	return ""
}

// ExtractCurrency detects EUR markers. No other currency is recognized
// from text.
func ExtractCurrency(text string) string {
	if strings.Contains(text, "EUR") || strings.Contains(text, "€") {
		return "EUR"
	}
	return ""
}

// ExtractTotals scans every line for its last number-like token and
// assigns the parsed value to net, tax and/or gross depending on the
// keywords the line carries. The keyword sets are checked independently
// in net, tax, gross order, so one line can fill several categories, and
// a later matching line overwrites an earlier assignment.
func ExtractTotals(text string) (net, tax, gross *float64) {
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)

		numbers := numberTokenRe.FindAllString(line, -1)
		if len(numbers) == 0 {
			continue
		}

		value := ParseAmount(numbers[len(numbers)-1])
		if value == nil || *value == 0 {
			continue
		}

		if containsAny(lower, netKeywords) {
			net = value
		}
		if containsAny(lower, taxKeywords) {
			tax = value
		}
		if containsAny(lower, grossKeywords) {
			gross = value
		}
	}
	return net, tax, gross
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
