package procalc

import (
	"errors"
	"strconv"

	"github.com/shopspring/decimal"
)

// Error kinds. Every error returned by ToPostfix, Evaluate, and
// EvaluateExpression matches exactly one of these with errors.Is.
var (
	ErrMismatchedParens   = errors.New("mismatched parentheses")
	ErrMisplacedSeparator = errors.New("misplaced separator")
	ErrMalformed          = errors.New("malformed expression")
	ErrDivisionByZero     = errors.New("division by zero")
	ErrDomain             = errors.New("domain error")
	ErrTooLarge           = errors.New("too large")
	ErrUnknownToken       = errors.New("unknown token")
)

// BracketError is an error indicating mismatched parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Bracket is the unmatched parenthesis.
	Bracket string
}

func (err *BracketError) Error() string {
	if err.Bracket == ")" {
		return errpos(err.Col, "close parenthesis with no open parenthesis")
	}
	return errpos(err.Col, "open parenthesis with no close parenthesis")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrMismatchedParens
}

// SeparatorError is an error indicating a comma outside any parentheses. It
// implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "misplaced separator \",\"")
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

func (err *SeparatorError) Unwrap() error {
	return ErrMisplacedSeparator
}

// TokenError is an error indicating a token that cannot be converted or
// evaluated, such as an unknown name or a malformed number. It implements
// InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Text is the token's text.
	Text string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unknown token "+strconv.Quote(err.Text))
}

func (err *TokenError) Pos() int {
	return err.Col
}

func (err *TokenError) Unwrap() error {
	return ErrUnknownToken
}

// ArityError is an error indicating a function or postfix operator applied
// to too few operands. It implements InputError.
type ArityError struct {
	// Col is the position of the function or operator.
	Col int
	// Func is the name of the function, or the postfix operator.
	Func string
	// Want is the number of operands required.
	Want int
}

func (err *ArityError) Error() string {
	if err.Want == 1 {
		return err.Func + " requires 1 arg"
	}
	return err.Func + " requires " + strconv.Itoa(err.Want) + " args"
}

func (err *ArityError) Pos() int {
	return err.Col
}

func (err *ArityError) Unwrap() error {
	return ErrMalformed
}

// DomainError is returned when a function is applied to an argument outside
// its domain. DomainError unwraps to ErrDomain.
type DomainError struct {
	// X is the out-of-domain argument.
	X decimal.Decimal
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	return err.Func + " domain error: " + err.X.String()
}

func (err *DomainError) Unwrap() error {
	return ErrDomain
}

// RangeError is returned when a result cannot be represented, either because
// a factorial argument exceeds MaxFactorial or because a floating-point
// computation overflowed. RangeError unwraps to ErrTooLarge.
type RangeError struct {
	// Func is a name identifying the function.
	Func string
}

func (err *RangeError) Error() string {
	return err.Func + " too large"
}

func (err *RangeError) Unwrap() error {
	return ErrTooLarge
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information.
type InputError interface {
	error
	// Pos returns the position of the error as the 1-based rune column of
	// the token that caused it.
	Pos() int
}

var (
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*ArityError)(nil)
)
