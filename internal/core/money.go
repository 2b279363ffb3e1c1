// Package core holds the domain model and money arithmetic.
//
// All monetary math happens on cents (int64) so sums over any number of
// movements stay exact. Two parsing policies coexist on purpose:
// ParseAmount rejects anything that is not a positive decimal and guards
// the movement-creation boundary, while MinorUnits coerces garbage to
// zero and is only applied to rows that already passed validation when
// they were persisted.
package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var maxCents = decimal.NewFromInt(1<<63 - 1)

// ParseAmount converts an untrusted decimal string into cents.
//
// The value must parse as a finite decimal and be strictly positive;
// anything else returns ErrInvalidAmount. A third decimal digit is
// rounded half-up, so "12.345" becomes 1235 cents.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return 0, ErrInvalidAmount
	}
	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) {
		return 0, ErrInvalidAmount
	}
	return cents.IntPart(), nil
}

// MinorUnits converts a persisted decimal string into cents.
//
// This is the permissive reports-path policy: empty or non-numeric
// input yields 0 instead of an error. The fractional part is padded or
// truncated to exactly two digits, and the sign is reapplied after
// converting the absolute value.
func MinorUnits(s string) int64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
		return 0
	}

	negative := strings.HasPrefix(trimmed, "-")
	unsigned := strings.TrimPrefix(strings.TrimPrefix(trimmed, "-"), "+")

	intPart, fracPart, _ := strings.Cut(unsigned, ".")
	if intPart == "" {
		intPart = "0"
	}
	fracPart = (fracPart + "00")[:2]

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0
	}
	cents, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0
	}

	total := units*100 + cents
	if negative {
		return -total
	}
	return total
}

// FormatCents renders cents as a decimal string with exactly two
// fractional digits. Negative values carry a single leading minus;
// zero is unsigned.
func FormatCents(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + pad2(cents%100)
	if negative {
		return "-" + s
	}
	return s
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
