package procalc

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxPlainLen is the longest plain rendering Format produces for values that
// engineering notation can shorten.
const MaxPlainLen = 20

// Format renders d for display. Trailing fractional zeros are removed. Large
// magnitudes and tiny fractions whose plain form is longer than MaxPlainLen
// are written in engineering notation, e.g. "7.257415615307998967396728211E+306",
// with an exponent that is a multiple of 3. Fractions of moderate magnitude
// stay in plain notation regardless of length.
func Format(d decimal.Decimal) string {
	s := d.String()
	if len(s) <= MaxPlainLen {
		return s
	}
	digits, exp := stripped(d)
	adj := exp + len(digits) - 1
	if d.Exponent() <= 0 && adj >= -6 {
		return s
	}
	return engineering(d.Sign() < 0, digits, adj)
}

// FormatNull renders an invalid NullDecimal as the empty string and a valid
// one as Format does.
func FormatNull(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return Format(d.Decimal)
}

// stripped returns the digits of the absolute value of d's coefficient
// without trailing zeros and the matching exponent.
func stripped(d decimal.Decimal) (string, int) {
	c := d.Coefficient()
	digits := c.Abs(c).String()
	exp := int(d.Exponent())
	t := strings.TrimRight(digits, "0")
	if t == "" {
		return "0", 0
	}
	return t, exp + len(digits) - len(t)
}

// engineering writes digits × 10^adj, where the first digit of digits is in
// the 10^adj place.
func engineering(neg bool, digits string, adj int) string {
	e := adj - mod3(adj)
	n := adj - e + 1
	for len(digits) < n {
		digits += "0"
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(digits[:n])
	if len(digits) > n {
		b.WriteByte('.')
		b.WriteString(digits[n:])
	}
	if e != 0 {
		b.WriteByte('E')
		if e > 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(e))
	}
	return b.String()
}

// mod3 is x mod 3 in [0, 3).
func mod3(x int) int {
	m := x % 3
	if m < 0 {
		m += 3
	}
	return m
}
