package report

import (
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// MaxDescriptionRunes is the longest description printed before truncation.
const MaxDescriptionRunes = 20

// FormatCurrency renders d as dollars with thousands separators and two
// decimals, e.g. $1,234.56 or $-5.00.
func FormatCurrency(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return "$" + d.StringFixed(2)
	}

	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}

	return "$" + sign + humanize.BigComma(n) + "." + frac
}

// TruncateDescription shortens s to MaxDescriptionRunes runes plus "...",
// and renders an empty description as "-".
func TruncateDescription(s string) string {
	if s == "" {
		return "-"
	}
	if utf8.RuneCountInString(s) <= MaxDescriptionRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxDescriptionRunes]) + "..."
}
