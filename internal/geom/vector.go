// Package geom implements arbitrary-precision 3D vector and rotation-matrix
// algebra on decimal components.
package geom

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/san-kum/orrery/internal/dec"
)

// ErrDegenerate is returned when a zero-length vector is normalized.
var ErrDegenerate = errors.New("cannot normalize zero-length vector")

// Vector3 is a 3-component decimal vector. Operations never modify their
// operands unless the method name starts with Set or Normalize.
type Vector3 struct {
	X, Y, Z *apd.Decimal
}

func Zero() Vector3 {
	return Vector3{dec.Zero(), dec.Zero(), dec.Zero()}
}

func New(x, y, z *apd.Decimal) Vector3 {
	return Vector3{x, y, z}
}

// FromStrings builds a vector from exact decimal text per component.
func FromStrings(x, y, z string) (Vector3, error) {
	dx, err := dec.Parse(x)
	if err != nil {
		return Vector3{}, err
	}
	dy, err := dec.Parse(y)
	if err != nil {
		return Vector3{}, err
	}
	dz, err := dec.Parse(z)
	if err != nil {
		return Vector3{}, err
	}
	return Vector3{dx, dy, dz}, nil
}

func MustFromStrings(x, y, z string) Vector3 {
	v, err := FromStrings(x, y, z)
	if err != nil {
		panic(err)
	}
	return v
}

// FromFloats builds a vector from floats via their shortest round-trip
// decimal text, never through raw binary bits.
func FromFloats(x, y, z float64) Vector3 {
	return Vector3{dec.FromFloat(x), dec.FromFloat(y), dec.FromFloat(z)}
}

func (v Vector3) Clone() Vector3 {
	return Vector3{
		new(apd.Decimal).Set(v.X),
		new(apd.Decimal).Set(v.Y),
		new(apd.Decimal).Set(v.Z),
	}
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{dec.Add(v.X, o.X), dec.Add(v.Y, o.Y), dec.Add(v.Z, o.Z)}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{dec.Sub(v.X, o.X), dec.Sub(v.Y, o.Y), dec.Sub(v.Z, o.Z)}
}

func (v Vector3) Mul(o Vector3) Vector3 {
	return Vector3{dec.Mul(v.X, o.X), dec.Mul(v.Y, o.Y), dec.Mul(v.Z, o.Z)}
}

func (v Vector3) Div(o Vector3) Vector3 {
	return Vector3{dec.Quo(v.X, o.X), dec.Quo(v.Y, o.Y), dec.Quo(v.Z, o.Z)}
}

func (v Vector3) AddScalar(s *apd.Decimal) Vector3 {
	return Vector3{dec.Add(v.X, s), dec.Add(v.Y, s), dec.Add(v.Z, s)}
}

func (v Vector3) SubScalar(s *apd.Decimal) Vector3 {
	return Vector3{dec.Sub(v.X, s), dec.Sub(v.Y, s), dec.Sub(v.Z, s)}
}

func (v Vector3) MulScalar(s *apd.Decimal) Vector3 {
	return Vector3{dec.Mul(v.X, s), dec.Mul(v.Y, s), dec.Mul(v.Z, s)}
}

func (v Vector3) DivScalar(s *apd.Decimal) Vector3 {
	return Vector3{dec.Quo(v.X, s), dec.Quo(v.Y, s), dec.Quo(v.Z, s)}
}

func (v Vector3) Neg() Vector3 {
	return Vector3{dec.Neg(v.X), dec.Neg(v.Y), dec.Neg(v.Z)}
}

// Set overwrites v with copies of o's components.
func (v *Vector3) Set(o Vector3) {
	v.X = new(apd.Decimal).Set(o.X)
	v.Y = new(apd.Decimal).Set(o.Y)
	v.Z = new(apd.Decimal).Set(o.Z)
}

func (v *Vector3) SetAdd(o Vector3) { v.Set(v.Add(o)) }
func (v *Vector3) SetSub(o Vector3) { v.Set(v.Sub(o)) }
func (v *Vector3) SetMul(o Vector3) { v.Set(v.Mul(o)) }
func (v *Vector3) SetDiv(o Vector3) { v.Set(v.Div(o)) }

func (v *Vector3) SetAddScalar(s *apd.Decimal) { v.Set(v.AddScalar(s)) }
func (v *Vector3) SetSubScalar(s *apd.Decimal) { v.Set(v.SubScalar(s)) }
func (v *Vector3) SetMulScalar(s *apd.Decimal) { v.Set(v.MulScalar(s)) }
func (v *Vector3) SetDivScalar(s *apd.Decimal) { v.Set(v.DivScalar(s)) }

func (v Vector3) Dot(o Vector3) *apd.Decimal {
	return dec.Add(dec.Add(dec.Mul(v.X, o.X), dec.Mul(v.Y, o.Y)), dec.Mul(v.Z, o.Z))
}

// Cross returns the right-handed cross product.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		dec.Sub(dec.Mul(v.Y, o.Z), dec.Mul(v.Z, o.Y)),
		dec.Sub(dec.Mul(v.Z, o.X), dec.Mul(v.X, o.Z)),
		dec.Sub(dec.Mul(v.X, o.Y), dec.Mul(v.Y, o.X)),
	}
}

func (v Vector3) LengthSquared() *apd.Decimal {
	return v.Dot(v)
}

func (v Vector3) Length() *apd.Decimal {
	return dec.Sqrt(v.LengthSquared())
}

func (v Vector3) DistanceTo(o Vector3) *apd.Decimal {
	return v.Sub(o).Length()
}

// Normalized returns a unit-length copy. A zero-length vector is a
// construction bug and reports ErrDegenerate.
func (v Vector3) Normalized() (Vector3, error) {
	l := v.Length()
	if l.IsZero() {
		return Vector3{}, ErrDegenerate
	}
	return v.DivScalar(l), nil
}

// Normalize scales v to unit length in place.
func (v *Vector3) Normalize() error {
	n, err := v.Normalized()
	if err != nil {
		return err
	}
	v.Set(n)
	return nil
}

func (v Vector3) String() string {
	return fmt.Sprintf("{ x: %s, y: %s, z: %s }", v.X.String(), v.Y.String(), v.Z.String())
}
