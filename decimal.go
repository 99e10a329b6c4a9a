package procalc

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// numDigits returns the number of digits in the coefficient of d.
func numDigits(d decimal.Decimal) int {
	c := d.Coefficient()
	return len(c.Abs(c).String())
}

// round rounds d to prec significant digits, half away from zero.
func round(d decimal.Decimal, prec int) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	n := numDigits(d)
	if n <= prec {
		return d
	}
	// d has n + exp digits before the decimal point.
	places := int32(prec) - (int32(n) + d.Exponent())
	return d.Round(places)
}

// quo computes a/b rounded to prec significant digits. b must be nonzero.
func quo(a, b decimal.Decimal, prec int) decimal.Decimal {
	if a.IsZero() {
		return decimal.Zero
	}
	// Truncate to at least prec+2 significant digits before rounding. The
	// truncated quotient is closer to zero than the exact one by less than one
	// unit in its last place, so rounding it half away from zero gives the
	// same result as rounding the exact quotient.
	ea := int32(numDigits(a)) + a.Exponent()
	eb := int32(numDigits(b)) + b.Exponent()
	places := int32(prec) + 2 - (ea - eb)
	q, _ := a.QuoRem(b, places)
	return round(q, prec)
}

// fromFloat converts a float64 result of the function named fn to a decimal
// rounded to prec digits.
func fromFloat(f float64, fn string, x decimal.Decimal, prec int) (decimal.Decimal, error) {
	switch {
	case math.IsNaN(f):
		return decimal.Zero, &DomainError{X: x, Func: fn}
	case math.IsInf(f, 0):
		return decimal.Zero, &RangeError{Func: fn}
	}
	return round(exactFloat(f), prec), nil
}

// exactFloat returns the exact value of the binary float f, unlike
// decimal.NewFromFloat, which gives the shortest decimal that rounds to f.
func exactFloat(f float64) decimal.Decimal {
	if f == 0 {
		return decimal.Zero
	}
	// f = m × 2^exp with m a 53-bit integer.
	fr, exp := math.Frexp(f)
	m := big.NewInt(int64(math.Ldexp(fr, 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(m.Lsh(m, uint(exp)), 0)
	}
	// m × 2^-k = m × 5^k × 10^-k
	k := int64(-exp)
	m.Mul(m, new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil))
	return decimal.NewFromBigInt(m, int32(-k))
}
