package procalc

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	num := func(text string, pos int) Token { return Token{Text: text, Kind: TokenNum, Pos: pos} }
	op := func(text string, pos int) Token { return Token{Text: text, Kind: TokenOp, Pos: pos} }
	cases := []struct {
		name   string
		src    string
		tokens []Token
	}{
		// spaces
		{"empty", "", nil},
		{"spaces", " \t \r\n ", nil},
		// numbers
		{"int", "9876543210", []Token{num("9876543210", 1)}},
		{"real", "12.5", []Token{num("12.5", 1)}},
		{"separated", "1 0", []Token{num("1", 1), num("0", 3)}},
		{"dots", "1.2.3", []Token{num("1.2.3", 1)}},
		{"leading-dot", ".5", []Token{num(".5", 1)}},
		// operators
		{"add", "2+2", []Token{num("2", 1), op("+", 2), num("2", 3)}},
		{"sub", "5-3", []Token{num("5", 1), op("-", 2), num("3", 3)}},
		{"glyphs", "3 × 4 ÷ 2", []Token{num("3", 1), op("*", 3), num("4", 5), op("/", 7), num("2", 9)}},
		{"postfix", "50%+5!", []Token{
			num("50", 1),
			{Text: "%", Kind: TokenPercent, Pos: 3},
			op("+", 4),
			num("5", 5),
			{Text: "!", Kind: TokenFactorial, Pos: 6},
		}},
		// negation
		{"neg-start", "-5+3", []Token{num("0", 1), op("-", 1), num("5", 2), op("+", 3), num("3", 4)}},
		{"neg-op", "2*-3", []Token{num("2", 1), op("*", 2), num("0", 3), op("-", 3), num("3", 4)}},
		{"neg-pow", "2^-1", []Token{num("2", 1), op("^", 2), num("0", 3), op("-", 3), num("1", 4)}},
		{"neg-paren", "(-1)", []Token{
			{Text: "(", Kind: TokenOpen, Pos: 1},
			num("0", 2),
			op("-", 2),
			num("1", 3),
			{Text: ")", Kind: TokenClose, Pos: 4},
		}},
		{"neg-neg", "--1", []Token{num("0", 1), op("-", 1), num("0", 2), op("-", 2), num("1", 3)}},
		// identifiers
		{"func", "SIN(Pi)", []Token{
			{Text: "sin", Kind: TokenFunc, Pos: 1},
			{Text: "(", Kind: TokenOpen, Pos: 4},
			{Text: "pi", Kind: TokenConst, Pos: 5},
			{Text: ")", Kind: TokenClose, Pos: 7},
		}},
		{"args", "pow(2,3)", []Token{
			{Text: "pow", Kind: TokenFunc, Pos: 1},
			{Text: "(", Kind: TokenOpen, Pos: 4},
			num("2", 5),
			{Text: ",", Kind: TokenSep, Pos: 6},
			num("3", 7),
			{Text: ")", Kind: TokenClose, Pos: 8},
		}},
		{"ident", "foo", []Token{{Text: "foo", Kind: TokenIdent, Pos: 1}}},
		{"pi-glyph", "π", []Token{{Text: "π", Kind: TokenConst, Pos: 1}}},
		{"ident-digits", "log10", []Token{{Text: "log", Kind: TokenFunc, Pos: 1}, num("10", 4)}},
		{"digits-ident", "2e", []Token{num("2", 1), {Text: "e", Kind: TokenConst, Pos: 2}}},
		// dropped runes
		{"dropped", "2$3", []Token{num("2", 1), num("3", 3)}},
		{"dropped-only", "$#@", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Tokenize(c.src)
			if !reflect.DeepEqual(got, c.tokens) {
				t.Errorf("tokenizing %q:\n\twant %v\n\tgot  %v", c.src, c.tokens, got)
			}
		})
	}
}

func TestTokenKindString(t *testing.T) {
	cases := []struct {
		kind TokenKind
		want string
	}{
		{TokenNum, "Num"},
		{TokenFactorial, "Factorial"},
		{TokenKind(-1), "TokenKind(-1)"},
		{TokenKind(99), "TokenKind(99)"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("wrong name for %d: want %q, got %q", int(c.kind), c.want, got)
		}
	}
	tok := Token{Text: "+", Kind: TokenOp, Pos: 3}
	if got, want := tok.String(), "Op:+@3"; got != want {
		t.Errorf("wrong token string: want %q, got %q", want, got)
	}
}
