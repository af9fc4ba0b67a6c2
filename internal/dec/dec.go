// Package dec binds the engine to its arbitrary-precision decimal provider.
// All arithmetic runs through one shared apd context; operands are treated as
// immutable and every operation allocates a fresh result.
package dec

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// Precision is the number of significant decimal digits carried by every
// arithmetic operation.
const Precision = 80

var ctx = apd.BaseContext.WithPrecision(Precision)

// Parse parses exact decimal text, including scientific notation.
func Parse(s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return d, nil
}

// MustParse is Parse for literals known to be well-formed.
func MustParse(s string) *apd.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromFloat converts a float through its shortest round-trip decimal text.
// Going through text keeps values like 0.1 as the literal 0.1 instead of the
// nearest binary fraction.
func FromFloat(f float64) *apd.Decimal {
	return MustParse(strconv.FormatFloat(f, 'g', -1, 64))
}

func FromInt64(v int64) *apd.Decimal {
	return new(apd.Decimal).SetInt64(v)
}

func Zero() *apd.Decimal { return new(apd.Decimal) }
func One() *apd.Decimal  { return new(apd.Decimal).SetInt64(1) }
func Half() *apd.Decimal { return MustParse("0.5") }

func Add(x, y *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal)
	if _, err := ctx.Add(d, x, y); err != nil {
		panic(err)
	}
	return d
}

func Sub(x, y *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal)
	if _, err := ctx.Sub(d, x, y); err != nil {
		panic(err)
	}
	return d
}

func Mul(x, y *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal)
	if _, err := ctx.Mul(d, x, y); err != nil {
		panic(err)
	}
	return d
}

// Quo divides to context precision. Division by zero is a programmer error
// and panics; callers guard degenerate denominators beforehand.
func Quo(x, y *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal)
	if _, err := ctx.Quo(d, x, y); err != nil {
		panic(err)
	}
	return d
}

func Sqrt(x *apd.Decimal) *apd.Decimal {
	d := new(apd.Decimal)
	if _, err := ctx.Sqrt(d, x); err != nil {
		panic(err)
	}
	return d
}

func Neg(x *apd.Decimal) *apd.Decimal {
	return new(apd.Decimal).Neg(x)
}

func Abs(x *apd.Decimal) *apd.Decimal {
	return new(apd.Decimal).Abs(x)
}

// Frac returns the exact fractional part of x.
func Frac(x *apd.Decimal) *apd.Decimal {
	var integ, frac apd.Decimal
	x.Modf(&integ, &frac)
	return &frac
}
