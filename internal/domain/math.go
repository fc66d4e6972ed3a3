package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const displayPrecision = 6

// ParseAmount parses a raw statement value into a decimal. Providers deliver
// line items as strings that may carry thousands separators or non-numeric
// sentinels ("N/A", "-", empty); those degrade to not-present rather than
// zero, since zero and unknown are distinct states.
func ParseAmount(value string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return decimal.Decimal{}, false
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// FormatRatio rounds a ratio to display precision and strips trailing zeros.
// Presentation-layer helper; the engine itself never rounds.
func FormatRatio(d decimal.Decimal) string {
	s := d.Round(displayPrecision).StringFixed(displayPrecision)
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
