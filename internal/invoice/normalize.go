package invoice

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// junkTokens cut trailing noise off extracted company names. Tokens are
// applied one after another, each to the already truncated value.
var junkTokens = []string{"bestellung", "auftrag", "fax", "tel", "vom", "im auftrag von"}

var dateLayouts = []string{"02.01.2006", DateLayout}

// ParseAmount converts strings like "€ 1.234,56", "1234,56" or "1234.56"
// to a number. A comma marks European formatting: periods are dropped as
// thousands separators and the comma becomes the decimal point. This is
// lossy for formats that use the comma as a thousands separator; that
// ambiguity is accepted, the invoices handled here use EUR conventions.
// Returns nil when the remainder does not parse.
func ParseAmount(text string) *float64 {
	text = strings.ReplaceAll(text, "EUR", "")
	text = strings.ReplaceAll(text, "€", "")
	text = strings.TrimSpace(text)

	if strings.Contains(text, ",") {
		text = strings.ReplaceAll(text, ".", "")
		text = strings.ReplaceAll(text, ",", ".")
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseDate tries dd.mm.yyyy and then yyyy-mm-dd. The first layout that
// parses wins; nil when neither matches.
func ParseDate(value string) *Date {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &Date{Time: t}
		}
	}
	return nil
}

// NormalizeName isolates a company name: newlines collapse to spaces,
// then each junk token truncates the working value at its first
// occurrence. Each pass lowercases the working value before matching, so
// tokens apply sequentially to the progressively truncated string. The
// result is title-cased and trimmed.
func NormalizeName(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "\n", " "))
	for _, t := range junkTokens {
		value = strings.ToLower(value)
		if idx := strings.Index(value, t); idx >= 0 {
			value = value[:idx]
		}
	}
	return strings.TrimSpace(titleCase(value))
}

// titleCase upper-cases the first letter of every word and lower-cases
// the rest, where a word starts after any non-letter rune.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
