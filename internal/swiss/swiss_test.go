package swiss

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsCanton(t *testing.T) {
	assert.True(t, IsCanton("ZH"))
	assert.True(t, IsCanton("GE"))
	assert.True(t, IsCanton("TI"))
	assert.False(t, IsCanton("zh"))
	assert.False(t, IsCanton("XX"))
	assert.False(t, IsCanton(""))

	assert.Len(t, Cantons, 26)
}

func TestIsValidPostalCode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"8001", true},
		{"1200", true},
		{"0000", true},
		{"800", false},
		{"80011", false},
		{"8OO1", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidPostalCode(tt.code), "code %q", tt.code)
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+41 44 123 45 67", true},
		{"0041441234567", true},
		{"044 123 45 67", true},
		{"079 123 45 67", true},
		{"+41 44 123", false},
		{"12345", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidPhone(tt.phone), "phone %q", tt.phone)
	}
}

func TestCalculateMWST(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"45.90", "3.53"},  // 3.5343 rounds down
		{"110.00", "8.47"}, // exact
		{"100.00", "7.70"},
		{"0.00", "0.00"},
		{"1.50", "0.12"}, // 0.1155 rounds half up
	}

	for _, tt := range tests {
		amount := decimal.RequireFromString(tt.amount)
		got := CalculateMWST(amount)
		assert.Equal(t, tt.want, got.StringFixed(2), "amount %s", tt.amount)
	}
}

func TestFormatCHF(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"9.90", "CHF 9.90"},
		{"100", "CHF 100.00"},
		{"1234.5", "CHF 1'234.50"},
		{"1234567.89", "CHF 1'234'567.89"},
		{"-59.33", "CHF -59.33"},
	}

	for _, tt := range tests {
		got := FormatCHF(decimal.RequireFromString(tt.amount))
		assert.Equal(t, tt.want, got)
	}
}
