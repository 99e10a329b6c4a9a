package procalc_test

import (
	"testing"

	"github.com/zephyrtronium/procalc"
)

func FuzzToPostfix(f *testing.F) {
	f.Add("x")
	f.Add("-sin(pi)")
	f.Add("1×2")
	f.Fuzz(func(t *testing.T, s string) {
		rpn, err := procalc.ToPostfix(procalc.Tokenize(s))
		if err != nil {
			return
		}
		for _, tok := range rpn {
			switch tok.Kind {
			case procalc.TokenOpen, procalc.TokenClose, procalc.TokenSep, procalc.TokenConst:
				t.Errorf("%q: postfix contains %v", s, tok)
			}
		}
	})
}
