// Package numfmt renders numbers as fixed-width column text for N and F
// dBASE fields.
package numfmt

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Fixed right-aligns numbers in Width characters with Decimals digits after
// the point.
//
// A number that does not fit loses decimals one at a time. Integer columns
// (Decimals == 0) then keep the leading Width characters, the same way
// integers are cut, so the text still parses as an integer. Other columns
// switch to exponent notation with shrinking precision, and if even that is
// too wide the leading Width characters are kept.
type Fixed struct {
	Width    int
	Decimals int
}

// ForField returns the formatter for a column of the given shape.
func ForField(length, decimals int) Fixed {
	if decimals < 0 {
		decimals = 0
	}
	return Fixed{Width: length, Decimals: decimals}
}

// Format returns exactly f.Width characters.
func (f Fixed) Format(v decimal.Decimal) string {
	if f.Width <= 0 {
		return ""
	}
	for dec := f.Decimals; dec >= 0; dec-- {
		if s := v.StringFixed(int32(dec)); len(s) <= f.Width {
			return f.pad(s)
		}
	}

	if f.Decimals == 0 {
		return v.StringFixed(0)[:f.Width]
	}

	fl, _ := v.Float64()
	for prec := f.Width; prec >= 0; prec-- {
		if s := strconv.FormatFloat(fl, 'e', prec, 64); len(s) <= f.Width {
			return f.pad(s)
		}
	}
	return strconv.FormatFloat(fl, 'e', 0, 64)[:f.Width]
}

// FormatFloat is Format for a float64.
func (f Fixed) FormatFloat(v float64) string {
	return f.Format(decimal.NewFromFloat(v))
}

func (f Fixed) pad(s string) string {
	if n := len(s); n < f.Width {
		return strings.Repeat(" ", f.Width-n) + s
	}
	return s
}
