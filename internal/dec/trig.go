package dec

import (
	"sync"

	"github.com/cockroachdb/apd/v3"
)

// pi to 100 digits, well past the working precision.
const piText = "3.1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679"

const twoPiText = "6.2831853071795864769252867665590057683943387987502116419498891846156328125724179972560696506842341359"

var pi = sync.OnceValue(func() *apd.Decimal { return MustParse(piText) })
var twoPi = sync.OnceValue(func() *apd.Decimal { return MustParse(twoPiText) })

// Pi returns the shared pi constant. Callers must not modify it.
func Pi() *apd.Decimal { return pi() }

// TwoPi returns the shared 2*pi constant. Callers must not modify it.
func TwoPi() *apd.Decimal { return twoPi() }

// Sin evaluates the Taylor series of sin(x) truncated to the given number of
// terms. The engine always asks for 32, which is far beyond convergence for
// angles in [0, 2*pi).
func Sin(x *apd.Decimal, terms int) *apd.Decimal {
	sum := new(apd.Decimal).Set(x)
	term := new(apd.Decimal).Set(x)
	x2 := Mul(x, x)
	for k := 1; k < terms; k++ {
		term = Neg(Quo(Mul(term, x2), FromInt64(int64(2*k)*int64(2*k+1))))
		if term.IsZero() {
			break
		}
		sum = Add(sum, term)
	}
	return sum
}

// Cos evaluates the Taylor series of cos(x) truncated to the given number of
// terms.
func Cos(x *apd.Decimal, terms int) *apd.Decimal {
	sum := One()
	term := One()
	x2 := Mul(x, x)
	for k := 1; k < terms; k++ {
		term = Neg(Quo(Mul(term, x2), FromInt64(int64(2*k-1)*int64(2*k))))
		if term.IsZero() {
			break
		}
		sum = Add(sum, term)
	}
	return sum
}
