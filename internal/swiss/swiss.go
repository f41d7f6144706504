// Package swiss holds Swiss-market constants and formatting helpers: cantons,
// postal codes, phone numbers, CHF formatting and MWST computation.
package swiss

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// MWSTRate is the standard Swiss VAT rate in percent.
var MWSTRate = decimal.NewFromFloat(7.7)

// Cantons maps the 26 canton codes to their English names.
var Cantons = map[string]string{
	"AG": "Aargau",
	"AI": "Appenzell Innerrhoden",
	"AR": "Appenzell Ausserrhoden",
	"BE": "Bern",
	"BL": "Basel-Landschaft",
	"BS": "Basel-Stadt",
	"FR": "Fribourg",
	"GE": "Geneva",
	"GL": "Glarus",
	"GR": "Graubünden",
	"JU": "Jura",
	"LU": "Lucerne",
	"NE": "Neuchâtel",
	"NW": "Nidwalden",
	"OW": "Obwalden",
	"SG": "St. Gallen",
	"SH": "Schaffhausen",
	"SO": "Solothurn",
	"SZ": "Schwyz",
	"TG": "Thurgau",
	"TI": "Ticino",
	"UR": "Uri",
	"VD": "Vaud",
	"VS": "Valais",
	"ZG": "Zug",
	"ZH": "Zurich",
}

// IsCanton reports whether code is one of the 26 canton codes.
func IsCanton(code string) bool {
	_, ok := Cantons[code]
	return ok
}

var postalCodeRe = regexp.MustCompile(`^\d{4}$`)

// IsValidPostalCode reports whether code is a 4-digit Swiss postal code.
func IsValidPostalCode(code string) bool {
	return postalCodeRe.MatchString(code)
}

var nonDigitRe = regexp.MustCompile(`\D`)

// IsValidPhone reports whether phone looks like a Swiss phone number, either
// in international (+41...) or local form.
func IsValidPhone(phone string) bool {
	cleaned := nonDigitRe.ReplaceAllString(phone, "")
	cleaned = strings.TrimPrefix(cleaned, "00")
	if strings.HasPrefix(cleaned, "41") {
		return len(cleaned) >= 11 && len(cleaned) <= 12
	}
	return len(cleaned) >= 9 && len(cleaned) <= 10
}

// CalculateMWST returns the VAT amount for a net amount at the standard rate,
// rounded to the Rappen. Rounding is half away from zero ("round half up" for
// the non-negative amounts that occur here).
func CalculateMWST(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(MWSTRate).Div(decimal.NewFromInt(100)).Round(2)
}

// FormatCHF renders an amount the Swiss way, with an apostrophe as thousands
// separator: CHF 1'234.50.
func FormatCHF(amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('\'')
		}
		b.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("CHF %s%s.%s", sign, b.String(), fracPart)
}
