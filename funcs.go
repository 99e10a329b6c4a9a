package procalc

import (
	"math"
	"math/big"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/zephyrtronium/bigfloat"
)

// Func is a builtin function of decimals.
type Func struct {
	// Arity is the number of arguments the function takes.
	Arity int
	// Call evaluates the function on exactly Arity arguments, rounding the
	// result to prec significant digits.
	Call func(args []decimal.Decimal, prec int) (decimal.Decimal, error)
}

var globalfuncs = map[string]Func{
	"sin":  Monadic("sin", math.Sin, nil),
	"cos":  Monadic("cos", math.Cos, nil),
	"tan":  Monadic("tan", math.Tan, nil),
	"sqrt": Monadic("sqrt", math.Sqrt, nonNegative),
	"log":  Monadic("log", math.Log10, positive),
	"ln":   Monadic("ln", math.Log, positive),
	"abs": {1, func(args []decimal.Decimal, prec int) (decimal.Decimal, error) {
		return round(args[0].Abs(), prec), nil
	}},
	"pow": {2, func(args []decimal.Decimal, prec int) (decimal.Decimal, error) {
		return power(args[0], args[1], "pow", prec)
	}},
}

func nonNegative(x decimal.Decimal) bool { return x.Sign() >= 0 }
func positive(x decimal.Decimal) bool    { return x.Sign() > 0 }

// Monadic wraps a float64 function of one variable into a Func. If domain is
// not nil, arguments for which it returns false are a DomainError.
func Monadic(name string, f func(float64) float64, domain func(decimal.Decimal) bool) Func {
	return Func{
		Arity: 1,
		Call: func(args []decimal.Decimal, prec int) (decimal.Decimal, error) {
			x := args[0]
			if domain != nil && !domain(x) {
				return decimal.Zero, &DomainError{X: x, Func: name}
			}
			v, _ := x.Float64()
			return fromFloat(f(v), name, x, prec)
		},
	}
}

// power computes x^y through float64.
func power(x, y decimal.Decimal, name string, prec int) (decimal.Decimal, error) {
	a, _ := x.Float64()
	b, _ := y.Float64()
	return fromFloat(math.Pow(a, b), name, x, prec)
}

func isFunc(name string) bool {
	_, ok := globalfuncs[name]
	return ok
}

// MaxFactorial is the largest argument accepted by the ! operator.
const MaxFactorial = 170

// factorial computes x! exactly and rounds it to prec digits.
func factorial(x decimal.Decimal, prec int) (decimal.Decimal, error) {
	if x.Sign() < 0 || !x.IsInteger() {
		return decimal.Zero, &DomainError{X: x, Func: "factorial"}
	}
	if x.GreaterThan(decimal.NewFromInt(MaxFactorial)) {
		return decimal.Zero, &RangeError{Func: "factorial"}
	}
	n := x.IntPart()
	if n < 2 {
		return decimal.NewFromInt(1), nil
	}
	r := new(big.Int).MulRange(2, n)
	return round(decimal.NewFromBigInt(r, 0), prec), nil
}

// globalconsts holds the constants by name. Each function sets out to the
// constant's value at the precision of out.
var globalconsts = map[string]func(out *big.Float) *big.Float{
	"pi": bigfloat.Pi,
	"π":  bigfloat.Pi,
	"e": func(out *big.Float) *big.Float {
		one := new(big.Float).SetPrec(out.Prec()).SetInt64(1)
		return bigfloat.Exp(out, one)
	},
}

func isConst(name string) bool {
	_, ok := globalconsts[name]
	return ok
}

type constkey struct {
	name string
	prec int
}

// consttexts caches decimal strings of constants by name and precision.
var consttexts sync.Map // constkey -> string

// constText returns the named constant as a decimal literal rounded to prec
// significant digits.
func constText(name string, prec int) string {
	k := constkey{name, prec}
	if s, ok := consttexts.Load(k); ok {
		return s.(string)
	}
	f := globalconsts[name]
	// Carry some guard bits beyond the binary equivalent of prec digits.
	bits := uint(math.Ceil(float64(prec)*math.Log2(10))) + 32
	v := f(new(big.Float).SetPrec(bits))
	d, err := decimal.NewFromString(v.Text('e', prec+4))
	if err != nil {
		panic("procalc: cannot convert constant " + name + ": " + err.Error())
	}
	s := round(d, prec).String()
	consttexts.Store(k, s)
	return s
}
