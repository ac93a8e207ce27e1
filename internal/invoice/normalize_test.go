package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{
			name:     "european format with euro sign",
			input:    "€ 1.234,56",
			expected: 1234.56,
			ok:       true,
		},
		{
			name:     "plain decimal",
			input:    "1234.56",
			expected: 1234.56,
			ok:       true,
		},
		{
			name:     "comma decimal without thousands",
			input:    "1234,56",
			expected: 1234.56,
			ok:       true,
		},
		{
			name:     "EUR prefix",
			input:    "EUR 99,90",
			expected: 99.9,
			ok:       true,
		},
		{
			name:  "not a number",
			input: "not a number",
			ok:    false,
		},
		{
			name:  "empty string",
			input: "",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.input)
			if !tt.ok {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tt.expected, *got, 1e-9)
		})
	}
}

func TestParseDate(t *testing.T) {
	german := ParseDate("31.12.2023")
	iso := ParseDate("2023-12-31")

	require.NotNil(t, german)
	require.NotNil(t, iso)
	assert.Equal(t, german.Time, iso.Time)
	assert.Equal(t, NewDate(2023, time.December, 31).Time, german.Time)

	assert.Nil(t, ParseDate("garbage"))
	assert.Nil(t, ParseDate("31/12/2023"))
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain name gets title cased",
			input:    "ACME CORPORATION",
			expected: "Acme Corporation",
		},
		{
			name:     "newlines collapse to spaces",
			input:    "Acme\nGmbH",
			expected: "Acme Gmbh",
		},
		{
			name:     "junk token truncates",
			input:    "Muster GmbH Bestellung 42",
			expected: "Muster Gmbh",
		},
		{
			name:     "tokens apply sequentially to truncated value",
			input:    "Firma Telefax Bestellung",
			expected: "Firma",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}
