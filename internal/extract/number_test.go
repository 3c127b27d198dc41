package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
	}{
		{"$1,234.56", 1234.56},
		{"1.234,56", 1234.56},
		{"€ 2.747,00", 2747.00},
		{"1234.56", 1234.56},
		{"1,56", 1.56},
		{"9.5", 9.5},
		{"USD 49.99", 49.99},
		{"1,234", 1234},
		{"2,100", 2100},
		{"1,234,567", 1234567},
		{"  $ 90.01 ", 90.01},
		{"1500", 1500},
		{".99", 0.99},
	}

	for _, tc := range testCases {
		got, err := ParseAmount(tc.input)
		assert.NoError(t, err, "input: %q", tc.input)
		assert.InDelta(t, tc.expected, got, 0.0001, "input: %q", tc.input)
	}
}

func TestParseAmountRejectsAmbiguous(t *testing.T) {
	// Mixed or malformed separator groupings must be rejected, never guessed.
	for _, input := range []string{
		"12.34.56",
		"1,23,45",
		"1.2345",
		"12,3456",
		"1,23.45",
		"1.234,5678",
		"12,,34",
	} {
		_, err := ParseAmount(input)
		assert.ErrorIs(t, err, ErrAmbiguousAmount, "input: %q", input)
	}
}

func TestParseAmountRejectsEmpty(t *testing.T) {
	for _, input := range []string{"", "free shipping", "$", "..."} {
		_, err := ParseAmount(input)
		assert.ErrorIs(t, err, ErrNoAmount, "input: %q", input)
	}
}

func TestParseAmountRejectsNonPositive(t *testing.T) {
	_, err := ParseAmount("$0")
	assert.ErrorIs(t, err, ErrNonPositiveAmount)

	_, err = ParseAmount("0.00")
	assert.ErrorIs(t, err, ErrNonPositiveAmount)
}
