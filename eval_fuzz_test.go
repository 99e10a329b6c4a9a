package procalc_test

import (
	"testing"

	"github.com/zephyrtronium/procalc"
)

func FuzzEvaluateExpression(f *testing.F) {
	f.Add("2+2")
	f.Add("2^3^2")
	f.Add("pow(2, sqrt(-1))!")
	f.Add("1×2÷0%")
	f.Add("((1,2)")
	f.Fuzz(func(t *testing.T, s string) {
		r, err := procalc.EvaluateExpression(s)
		if err != nil {
			if !r.IsZero() {
				t.Errorf("%q: result %s with error %v", s, r, err)
			}
			return
		}
		if procalc.Format(r) != procalc.Format(r) {
			t.Errorf("%q: formatting is not deterministic", s)
		}
	})
}
