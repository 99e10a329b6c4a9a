package procalc

import "strings"

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
}

// yields reports whether an operator or function p on the stack must be
// output before the incoming operator in is pushed.
func (p operator) yields(in operator) bool {
	if p.prec != in.prec {
		return p.prec > in.prec
	}
	return !in.right
}

// binop gets the operator for a token string. Functions and unknown strings
// have precedence 0.
func binop(text string) operator {
	switch text {
	case "+", "-":
		return operator{1, false}
	case "*", "/":
		return operator{2, false}
	case "^":
		return operator{3, true}
	default:
		return operator{}
	}
}

// ToPostfix converts tokens from Tokenize into postfix order using the
// shunting-yard algorithm. Constants are replaced by number tokens holding
// their values to DefaultPrec digits.
//
// Errors wrap ErrMismatchedParens, ErrMisplacedSeparator, or ErrUnknownToken.
// ToPostfix does not check that operators have operands; Evaluate does.
func ToPostfix(tokens []Token) ([]Token, error) {
	return toPostfix(tokens, DefaultPrec)
}

// ToPostfix is like the package-level ToPostfix, but resolves constants to
// the context's precision.
func (ctx *Context) ToPostfix(tokens []Token) ([]Token, error) {
	return toPostfix(tokens, ctx.prec)
}

func toPostfix(tokens []Token, prec int) ([]Token, error) {
	out := make([]Token, 0, len(tokens))
	var stack []Token
	pop := func() Token {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return t
	}
	// unwind outputs operators and functions until an open parenthesis is on
	// top of the stack. The result is false if none is found.
	unwind := func() bool {
		for len(stack) > 0 {
			if stack[len(stack)-1].Kind == TokenOpen {
				return true
			}
			out = append(out, pop())
		}
		return false
	}
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNum:
			out = append(out, tok)
		case TokenConst:
			out = append(out, Token{Text: constText(tok.Text, prec), Kind: TokenNum, Pos: tok.Pos})
		case TokenFunc, TokenOpen:
			stack = append(stack, tok)
		case TokenOp:
			in := binop(tok.Text)
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind != TokenOp && top.Kind != TokenFunc {
					break
				}
				if !binop(top.Text).yields(in) {
					break
				}
				out = append(out, pop())
			}
			stack = append(stack, tok)
		case TokenClose:
			if !unwind() {
				return nil, &BracketError{Col: tok.Pos, Bracket: tok.Text}
			}
			pop()
			if len(stack) > 0 && stack[len(stack)-1].Kind == TokenFunc {
				out = append(out, pop())
			}
		case TokenSep:
			if !unwind() {
				return nil, &SeparatorError{Col: tok.Pos}
			}
		case TokenPercent, TokenFactorial:
			out = append(out, tok)
		default:
			return nil, &TokenError{Col: tok.Pos, Text: tok.Text}
		}
	}
	for len(stack) > 0 {
		tok := pop()
		if tok.Kind == TokenOpen {
			return nil, &BracketError{Col: tok.Pos, Bracket: tok.Text}
		}
		out = append(out, tok)
	}
	return out, nil
}

// PostfixString renders a token sequence as space-separated token texts.
func PostfixString(tokens []Token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}
