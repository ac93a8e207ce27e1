package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInvoiceText = `Muster Handel GmbH
Musterstrasse 1
10115 Berlin
Deutschland

Bestellung AUFNR10023
im Auftrag von Einkauf
vom 31.12.2023

Pos Beschreibung Menge
Netto 100,00 EUR
MwSt 19,00 EUR
Gesamt 119,00 EUR`

func TestExtractInvoiceNumber(t *testing.T) {
	assert.Equal(t, "AUFNR10023", ExtractInvoiceNumber(sampleInvoiceText))
	assert.Equal(t, "AUFNR1", ExtractInvoiceNumber("AUFNR1 and AUFNR2"))
	assert.Empty(t, ExtractInvoiceNumber("no order number here"))
}

func TestExtractInvoiceDate(t *testing.T) {
	d := ExtractInvoiceDate(sampleInvoiceText)
	require.NotNil(t, d)
	assert.Equal(t, NewDate(2023, time.December, 31).Time, d.Time)

	iso := ExtractInvoiceDate("Bestellung AUFNR7 vom 2024-01-15")
	require.NotNil(t, iso)
	assert.Equal(t, NewDate(2024, time.January, 15).Time, iso.Time)

	assert.Nil(t, ExtractInvoiceDate("Bestellung AUFNR7 ohne Datum"))
	assert.Nil(t, ExtractInvoiceDate("vom 31.12.2023"))
}

func TestExtractBuyer(t *testing.T) {
	t.Run("postal code anchors the line above", func(t *testing.T) {
		assert.Equal(t, "Musterstrasse 1", ExtractBuyer(sampleInvoiceText))
	})

	t.Run("deutschland anchor", func(t *testing.T) {
		text := "Beispiel AG\nDeutschland"
		assert.Equal(t, "Beispiel Ag", ExtractBuyer(text))
	})

	t.Run("anchor on first line keeps scanning", func(t *testing.T) {
		text := "Deutschland\nBeispiel AG\n10115 Berlin"
		assert.Equal(t, "Beispiel Ag", ExtractBuyer(text))
	})

	t.Run("no anchor", func(t *testing.T) {
		assert.Empty(t, ExtractBuyer("Beispiel AG\nBerlin"))
	})
}

func TestExtractSeller(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "line starting with newline",
			text:     "Rechnung\nMuster Handel GmbH\nBerlin",
			expected: "Muster Handel Gmbh",
		},
		{
			name:     "fallback loose scan keeps the leading words",
			text:     "issued by Example Trading Ltd today",
			expected: "Issued By Example Trading Ltd",
		},
		{
			name:     "corporation suffix",
			text:     "Rechnung\nGlobal Parts Corporation\n",
			expected: "Global Parts Corporation",
		},
		{
			name:     "no known legal form",
			text:     "Muster Handel AG\nBerlin",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractSeller(tt.text))
		})
	}
}

func TestExtractCurrency(t *testing.T) {
	assert.Equal(t, "EUR", ExtractCurrency("Betrag: 100 EUR"))
	assert.Equal(t, "EUR", ExtractCurrency("Betrag: € 100"))
	assert.Empty(t, ExtractCurrency("Amount: 100 USD"))
}

func TestExtractTotals(t *testing.T) {
	t.Run("german keywords", func(t *testing.T) {
		net, tax, gross := ExtractTotals(sampleInvoiceText)
		require.NotNil(t, net)
		require.NotNil(t, tax)
		require.NotNil(t, gross)
		assert.InDelta(t, 100.0, *net, 1e-9)
		assert.InDelta(t, 19.0, *tax, 1e-9)
		assert.InDelta(t, 119.0, *gross, 1e-9)
	})

	t.Run("last matching line wins", func(t *testing.T) {
		text := "Subtotal 50,00\nSubtotal 75,00"
		net, _, _ := ExtractTotals(text)
		require.NotNil(t, net)
		assert.InDelta(t, 75.0, *net, 1e-9)
	})

	t.Run("last number on the line is used", func(t *testing.T) {
		text := "Position 3 Netto 42,00"
		net, _, _ := ExtractTotals(text)
		require.NotNil(t, net)
		assert.InDelta(t, 42.0, *net, 1e-9)
	})

	t.Run("one line can fill several categories", func(t *testing.T) {
		text := "Net total and gross total 99,00"
		net, _, gross := ExtractTotals(text)
		require.NotNil(t, net)
		require.NotNil(t, gross)
		assert.Equal(t, *net, *gross)
	})

	t.Run("keyword without parsable number", func(t *testing.T) {
		net, tax, gross := ExtractTotals("Netto folgt\nTax tbd")
		assert.Nil(t, net)
		assert.Nil(t, tax)
		assert.Nil(t, gross)
	})
}

func TestExtractFromText(t *testing.T) {
	inv := ExtractFromText(sampleInvoiceText, "sample.pdf")

	assert.Equal(t, "sample.pdf", inv.SourcePDF)
	assert.Equal(t, "AUFNR10023", inv.InvoiceNumber)
	require.NotNil(t, inv.InvoiceDate)
	assert.Equal(t, "2023-12-31", inv.InvoiceDate.String())
	assert.Equal(t, "Musterstrasse 1", inv.BuyerName)
	assert.Equal(t, "Muster Handel Gmbh", inv.SellerName)
	assert.Equal(t, "EUR", inv.Currency)
	require.NotNil(t, inv.GrossTotal)
	assert.InDelta(t, 119.0, *inv.GrossTotal, 1e-9)
	assert.Empty(t, inv.LineItems)
}
