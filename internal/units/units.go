// Package units holds the physical constants the engine depends on, built
// once and treated as immutable.
package units

import (
	"sync"

	"github.com/cockroachdb/apd/v3"
	"github.com/san-kum/orrery/internal/dec"
)

var auMeters = sync.OnceValue(func() *apd.Decimal { return dec.MustParse("149597870691") })

// G is the gravitational constant in m^3 kg^-1 s^-2.
var G = sync.OnceValue(func() *apd.Decimal { return dec.MustParse("0.0000000000667408") })

// AUMeters returns one astronomical unit in meters.
func AUMeters() *apd.Decimal { return auMeters() }

func AUToMeters(au *apd.Decimal) *apd.Decimal {
	return dec.Mul(au, auMeters())
}

func MetersToAU(m *apd.Decimal) *apd.Decimal {
	return dec.Quo(m, auMeters())
}
