package procalc

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPrec is the default number of significant decimal digits retained
// after each arithmetic step.
const DefaultPrec = 28

// Context holds settings for evaluating expressions. A Context is immutable,
// so it is safe to use concurrently; each evaluation uses its own stack.
type Context struct {
	prec int
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption(*Context)
}

type precopt int

func (p precopt) ctxOption(ctx *Context) {
	if p > 0 {
		ctx.prec = int(p)
	}
}

// Prec sets the number of significant digits of calculations. Values less
// than 1 leave the precision unchanged.
func Prec(digits int) ContextOption {
	return precopt(digits)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is DefaultPrec.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: DefaultPrec}
	for _, opt := range opts {
		if opt != nil {
			opt.ctxOption(&ctx)
		}
	}
	return &ctx
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() int {
	return ctx.prec
}

var defaultContext = NewContext()

// EvaluateExpression tokenizes, converts, and evaluates src with the default
// precision.
func EvaluateExpression(src string) (decimal.Decimal, error) {
	return defaultContext.EvaluateExpression(src)
}

// EvaluateExpression tokenizes, converts, and evaluates src. Constants are
// resolved to the context's precision.
func (ctx *Context) EvaluateExpression(src string) (decimal.Decimal, error) {
	rpn, err := ctx.ToPostfix(Tokenize(src))
	if err != nil {
		return decimal.Zero, err
	}
	return ctx.Evaluate(rpn)
}

// stack is the value stack of one evaluation.
type stack []decimal.Decimal

func (s *stack) push(v decimal.Decimal) {
	*s = append(*s, v)
}

// popn removes the top n values and returns them in push order. The returned
// slice is only valid until the next push.
func (s *stack) popn(n int) []decimal.Decimal {
	k := len(*s) - n
	r := (*s)[k:]
	*s = (*s)[:k]
	return r
}

// Evaluate runs a postfix token sequence, as produced by ToPostfix, and
// returns the single value it leaves. The first invalid condition stops
// evaluation; no partial result is returned with an error.
func (ctx *Context) Evaluate(postfix []Token) (r decimal.Decimal, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		r = decimal.Zero
		if e, ok := p.(error); ok {
			err = e
			return
		}
		err = fmt.Errorf("%v", p)
	}()
	st := make(stack, 0, len(postfix))
	for _, tok := range postfix {
		if err := ctx.step(&st, tok); err != nil {
			return decimal.Zero, err
		}
	}
	if len(st) != 1 {
		return decimal.Zero, ErrMalformed
	}
	return st[0], nil
}

// step applies one token to the stack.
func (ctx *Context) step(st *stack, tok Token) error {
	switch tok.Kind {
	case TokenNum:
		v, err := parseNum(tok)
		if err != nil {
			return err
		}
		st.push(round(v, ctx.prec))
	case TokenOp:
		if len(*st) < 2 {
			return ErrMalformed
		}
		args := st.popn(2)
		v, err := ctx.binary(tok, args[0], args[1])
		if err != nil {
			return err
		}
		st.push(v)
	case TokenFunc:
		f, ok := globalfuncs[tok.Text]
		if !ok {
			return &TokenError{Col: tok.Pos, Text: tok.Text}
		}
		if len(*st) < f.Arity {
			return &ArityError{Col: tok.Pos, Func: tok.Text, Want: f.Arity}
		}
		v, err := f.Call(st.popn(f.Arity), ctx.prec)
		if err != nil {
			return err
		}
		st.push(v)
	case TokenPercent:
		if len(*st) < 1 {
			return &ArityError{Col: tok.Pos, Func: "%", Want: 1}
		}
		x := st.popn(1)[0]
		st.push(quo(x, hundred, ctx.prec))
	case TokenFactorial:
		if len(*st) < 1 {
			return &ArityError{Col: tok.Pos, Func: "factorial", Want: 1}
		}
		v, err := factorial(st.popn(1)[0], ctx.prec)
		if err != nil {
			return err
		}
		st.push(v)
	default:
		return &TokenError{Col: tok.Pos, Text: tok.Text}
	}
	return nil
}

// binary applies a binary operator.
func (ctx *Context) binary(op Token, a, b decimal.Decimal) (decimal.Decimal, error) {
	switch op.Text {
	case "+":
		return round(a.Add(b), ctx.prec), nil
	case "-":
		return round(a.Sub(b), ctx.prec), nil
	case "*":
		return round(a.Mul(b), ctx.prec), nil
	case "/":
		if b.IsZero() {
			return decimal.Zero, ErrDivisionByZero
		}
		return quo(a, b, ctx.prec), nil
	case "^":
		return power(a, b, "^", ctx.prec)
	default:
		return decimal.Zero, &TokenError{Col: op.Pos, Text: op.Text}
	}
}

// parseNum parses a number token. Literals must contain at least one digit
// and at most one decimal point; "5." and ".5" are accepted.
func parseNum(tok Token) (decimal.Decimal, error) {
	s := tok.Text
	if strings.Count(s, ".") > 1 || strings.Trim(s, ".") == "" || strings.Trim(s, "0123456789.") != "" {
		return decimal.Zero, &TokenError{Col: tok.Pos, Text: s}
	}
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &TokenError{Col: tok.Pos, Text: tok.Text}
	}
	return v, nil
}
