package procalc

import (
	"strconv"
	"strings"
	"unicode"
)

// Token is a lexical token of an expression.
type Token struct {
	// Text is the token's text. Identifiers are lower-cased, and the
	// alternative operator glyphs × and ÷ are replaced by * and /.
	Text string
	// Kind is the token's kind.
	Kind TokenKind
	// Pos is the 1-based rune column at which the token starts.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind classifies tokens.
type TokenKind int

const (
	TokenNone TokenKind = iota
	// TokenNum is a decimal literal. Its text is not guaranteed to be valid.
	TokenNum
	// TokenOp is a binary operator.
	TokenOp
	// TokenFunc is the name of a function.
	TokenFunc
	// TokenConst is the name of a constant.
	TokenConst
	// TokenIdent is a name that is neither a function nor a constant.
	TokenIdent
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
	// TokenSep is a function argument separator.
	TokenSep
	// TokenPercent is the postfix percent operator.
	TokenPercent
	// TokenFactorial is the postfix factorial operator.
	TokenFactorial
)

var tokenKindNames = [...]string{
	TokenNone:      "None",
	TokenNum:       "Num",
	TokenOp:        "Op",
	TokenFunc:      "Func",
	TokenConst:     "Const",
	TokenIdent:     "Ident",
	TokenOpen:      "Open",
	TokenClose:     "Close",
	TokenSep:       "Sep",
	TokenPercent:   "Percent",
	TokenFactorial: "Factorial",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Operators contains the runes which are considered to be binary operators.
// × and ÷ are lexed as * and /.
const Operators = "+-*/^×÷"

// lexer accumulates number and identifier runs.
type lexer struct {
	toks  []Token
	num   strings.Builder
	ident strings.Builder
	// numpos and identpos are the columns where the pending runs started.
	numpos, identpos int
}

// Tokenize splits src into tokens. It never fails: runes that belong to no
// token are dropped, and malformed numbers such as "1.2.3" are left for the
// evaluator to reject.
//
// A "-" at the start of the input or immediately after an operator or open
// parenthesis is a negation, which Tokenize rewrites as "0 -" so that later
// stages only deal with binary subtraction.
func Tokenize(src string) []Token {
	var l lexer
	col := 0
	for _, r := range src {
		col++
		switch {
		case '0' <= r && r <= '9', r == '.':
			l.flushIdent()
			if l.num.Len() == 0 {
				l.numpos = col
			}
			l.num.WriteRune(r)
		case unicode.IsLetter(r):
			l.flushNum()
			if l.ident.Len() == 0 {
				l.identpos = col
			}
			l.ident.WriteRune(r)
		case unicode.IsSpace(r):
			l.flush()
		default:
			l.flush()
			l.symbol(r, col)
		}
	}
	l.flush()
	return negations(l.toks)
}

// symbol emits the token for a single-rune symbol, if r is one.
func (l *lexer) symbol(r rune, col int) {
	switch r {
	case '+', '-', '*', '/', '^':
		l.emit(string(r), TokenOp, col)
	case '×':
		l.emit("*", TokenOp, col)
	case '÷':
		l.emit("/", TokenOp, col)
	case '(':
		l.emit("(", TokenOpen, col)
	case ')':
		l.emit(")", TokenClose, col)
	case ',':
		l.emit(",", TokenSep, col)
	case '%':
		l.emit("%", TokenPercent, col)
	case '!':
		l.emit("!", TokenFactorial, col)
	}
}

func (l *lexer) emit(text string, kind TokenKind, col int) {
	l.toks = append(l.toks, Token{Text: text, Kind: kind, Pos: col})
}

func (l *lexer) flush() {
	l.flushNum()
	l.flushIdent()
}

func (l *lexer) flushNum() {
	if l.num.Len() == 0 {
		return
	}
	l.emit(l.num.String(), TokenNum, l.numpos)
	l.num.Reset()
}

func (l *lexer) flushIdent() {
	if l.ident.Len() == 0 {
		return
	}
	name := strings.ToLower(l.ident.String())
	l.ident.Reset()
	kind := TokenIdent
	switch {
	case isFunc(name):
		kind = TokenFunc
	case isConst(name):
		kind = TokenConst
	}
	l.emit(name, kind, l.identpos)
}

// negations rewrites each unary minus in toks as "0 -". The decision for each
// "-" looks at the preceding token of the original sequence.
func negations(toks []Token) []Token {
	if len(toks) == 0 {
		return nil
	}
	r := make([]Token, 0, len(toks))
	for i, tok := range toks {
		if tok.Kind == TokenOp && tok.Text == "-" {
			if i == 0 || toks[i-1].Kind == TokenOp || toks[i-1].Kind == TokenOpen {
				r = append(r, Token{Text: "0", Kind: TokenNum, Pos: tok.Pos})
			}
		}
		r = append(r, tok)
	}
	return r
}
