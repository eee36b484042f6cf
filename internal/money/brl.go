// Package money parses and formats Brazilian-Real monetary strings.
package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// brlPattern is the accepted grammar after trimming: optional minus,
// optional "R$" prefix, digits with optional dot-grouped thousands, a
// decimal comma and exactly two decimal digits.
var brlPattern = regexp.MustCompile(`^-?\s*(?:R\$\s*)?(?:\d{1,3}(?:\.\d{3})+|\d+),\d{2}$`)

// ParseBRL converts a Brazilian-formatted amount like "1.234,56",
// "R$ 8.699,53" or "-R$ 187,00" into a decimal value. The boolean is
// false for "no value": empty input, the "-" sentinel used by statement
// exports for an unpopulated column, or anything outside the grammar.
//
// Negativity is decided by a leading minus on the original string, before
// any separator stripping, so "026,00" is a plain positive amount.
func ParseBRL(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return decimal.Zero, false
	}
	if !brlPattern.MatchString(s) {
		return decimal.Zero, false
	}

	negative := strings.HasPrefix(s, "-")

	s = strings.TrimPrefix(s, "-")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// FormatBRL renders a decimal as a Brazilian-formatted amount with
// dot-grouped thousands and a decimal comma, e.g. -1234.5 → "-1.234,50".
func FormatBRL(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	return sign + strings.Join(groups, ".") + "," + fracPart
}
