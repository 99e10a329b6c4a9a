package procalc_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/zephyrtronium/procalc"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"int", "4", "4"},
		{"zero", "0", "0"},
		{"zero-frac", "0.000", "0"},
		{"trailing", "1.500", "1.5"},
		{"neg", "-0.25", "-0.25"},
		{"int-zeros", "1200", "1200"},
		{"max-plain", "12345678901234567890", "12345678901234567890"},
		{"long-int", "123456789012345678901", "123456789012345678901"},
		{"long-frac", "0.3333333333333333333333333333", "0.3333333333333333333333333333"},
		{"small-frac", "0.0000001234", "0.0000001234"},
		{"huge", "1e30", "1E+30"},
		{"huge-mantissa", "1.2345e25", "12.345E+24"},
		{"huge-neg", "-7.5e22", "-75E+21"},
		{"factorial", "7257415615307998967396728211e279", "7.257415615307998967396728211E+306"},
		{"tiny", "1e-25", "100E-27"},
		{"tiny-neg", "-1.5e-30", "-1.5E-30"},
		{"tiny-long", "1.23456789012345678901e-8", "12.3456789012345678901E-9"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := decimal.RequireFromString(c.in)
			got := procalc.Format(d)
			if got != c.want {
				t.Errorf("formatting %s: want %q, got %q", c.in, c.want, got)
			}
			if again := procalc.Format(d); again != got {
				t.Errorf("formatting %s twice: %q then %q", c.in, got, again)
			}
		})
	}
}

func TestFormatNull(t *testing.T) {
	if got := procalc.FormatNull(decimal.NullDecimal{}); got != "" {
		t.Errorf("invalid NullDecimal: want empty string, got %q", got)
	}
	d := decimal.NewNullDecimal(decimal.RequireFromString("2.50"))
	if got := procalc.FormatNull(d); got != "2.5" {
		t.Errorf("valid NullDecimal: want %q, got %q", "2.5", got)
	}
}

func TestFormatResults(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"2+2", "4"},
		{"50%", "0.5"},
		{"1/8", "0.125"},
		{"2^100", "1.267650600228229401496703205E+30"},
		{"2^64", "18446744073709551616"},
		{"1/3", "0.3333333333333333333333333333"},
		{"-5+3", "-2"},
	}
	for _, c := range cases {
		r, err := procalc.EvaluateExpression(c.src)
		if err != nil {
			t.Errorf("evaluating %q: %v", c.src, err)
			continue
		}
		if got := procalc.Format(r); got != c.want {
			t.Errorf("formatting %q: want %q, got %q", c.src, c.want, got)
		}
	}
}
