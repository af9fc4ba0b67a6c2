package dec

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
)

func assertClose(t *testing.T, got, want *apd.Decimal, tol string) {
	t.Helper()
	diff := Abs(Sub(got, want))
	if diff.Cmp(MustParse(tol)) >= 0 {
		t.Errorf("got %s, want %s (tolerance %s)", got.String(), want.String(), tol)
	}
}

func TestParseExact(t *testing.T) {
	d, err := Parse("0.1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if d.String() != "0.1" {
		t.Errorf("expected exact 0.1, got %s", d.String())
	}

	if _, err := Parse("not a number"); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestFromFloatShortestText(t *testing.T) {
	tests := []struct {
		f    float64
		want string
	}{
		{0.1, "0.1"},
		{1.5, "1.5"},
		{-2.25, "-2.25"},
		{384400000, "384400000"},
	}
	for _, tt := range tests {
		got := FromFloat(tt.f)
		if got.Cmp(MustParse(tt.want)) != 0 {
			t.Errorf("FromFloat(%v) = %s, want %s", tt.f, got.String(), tt.want)
		}
	}
}

func TestFrac(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3.75", "0.75"},
		{"42", "0"},
		{"0.0039", "0.0039"},
	}
	for _, tt := range tests {
		got := Frac(MustParse(tt.in))
		if got.Cmp(MustParse(tt.want)) != 0 {
			t.Errorf("Frac(%s) = %s, want %s", tt.in, got.String(), tt.want)
		}
	}
}

func TestSqrt(t *testing.T) {
	two := MustParse("2")
	root := Sqrt(two)
	assertClose(t, Mul(root, root), two, "1e-70")

	if Sqrt(MustParse("25")).Cmp(MustParse("5")) != 0 {
		t.Error("sqrt of perfect square should be exact")
	}
}

func TestMulQuoRoundTrip(t *testing.T) {
	v := MustParse("123.456")
	s := MustParse("3.7")
	assertClose(t, Quo(Mul(v, s), s), v, "1e-70")
}

func TestNegAbs(t *testing.T) {
	d := MustParse("-4.5")
	if Neg(d).Cmp(MustParse("4.5")) != 0 {
		t.Error("neg of negative should be positive")
	}
	if Abs(d).Cmp(MustParse("4.5")) != 0 {
		t.Error("abs of negative should be positive")
	}
	if d.Cmp(MustParse("-4.5")) != 0 {
		t.Error("operand must not be modified")
	}
}
