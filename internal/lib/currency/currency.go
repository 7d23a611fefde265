// Package currency converts and formats monetary amounts.
//
// Invoice amounts are stored in minor units (cents). List and detail
// views render them in major units with grouping, e.g. 123456 cents
// becomes "$1,234.56". The edit form receives the bare major-unit
// number instead.
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// CentsToMajor converts an amount in cents to major units.
func CentsToMajor(cents int64) float64 {
	major, _ := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).Float64()
	return major
}

// MajorToCents converts a major-unit amount (e.g. a form's dollar
// value) to cents. Decimal arithmetic avoids float drift on values
// like 19.99.
func MajorToCents(major float64) int64 {
	return decimal.NewFromFloat(major).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FormatCents renders an amount in cents as a display string in major
// units with a currency symbol and thousands grouping.
func FormatCents(cents int64) string {
	major := CentsToMajor(cents)
	return printer.Sprintf("$%v", number.Decimal(major,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
