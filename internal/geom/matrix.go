package geom

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/san-kum/orrery/internal/dec"
)

// trig series length used for every rotation build.
const seriesTerms = 32

// Matrix3 is a 3x3 decimal rotation matrix.
type Matrix3 struct {
	M [3][3]*apd.Decimal
}

// Quat is a quaternion in (x, y, z, w) component order.
type Quat struct {
	X, Y, Z, W *apd.Decimal
}

func Identity() Matrix3 {
	return Matrix3{M: [3][3]*apd.Decimal{
		{dec.One(), dec.Zero(), dec.Zero()},
		{dec.Zero(), dec.One(), dec.Zero()},
		{dec.Zero(), dec.Zero(), dec.One()},
	}}
}

// AxisAngle builds the Rodrigues rotation matrix for a unit axis and an
// angle in radians. The angle is negated to match the rotation sense of the
// reference renderer this engine was originally paired with; together with
// the transposed indexing in Apply the result is a standard right-handed
// rotation by +angle.
func AxisAngle(axis Vector3, angle *apd.Decimal) Matrix3 {
	neg := dec.Neg(angle)
	c := dec.Cos(neg, seriesTerms)
	s := dec.Sin(neg, seriesTerms)
	omc := dec.Sub(dec.One(), c)
	x, y, z := axis.X, axis.Y, axis.Z
	return Matrix3{M: [3][3]*apd.Decimal{
		{
			dec.Add(dec.Mul(dec.Mul(omc, x), x), c),
			dec.Sub(dec.Mul(dec.Mul(omc, x), y), dec.Mul(z, s)),
			dec.Add(dec.Mul(dec.Mul(omc, z), x), dec.Mul(y, s)),
		},
		{
			dec.Add(dec.Mul(dec.Mul(omc, x), y), dec.Mul(z, s)),
			dec.Add(dec.Mul(dec.Mul(omc, y), y), c),
			dec.Sub(dec.Mul(dec.Mul(omc, y), z), dec.Mul(x, s)),
		},
		{
			dec.Sub(dec.Mul(dec.Mul(omc, z), x), dec.Mul(y, s)),
			dec.Add(dec.Mul(dec.Mul(omc, y), z), dec.Mul(x, s)),
			dec.Add(dec.Mul(dec.Mul(omc, z), z), c),
		},
	}}
}

// Apply transforms a vector. The index order is column-first; this is part
// of the rotation-sense convention and must not be "fixed".
func (m Matrix3) Apply(v Vector3) Vector3 {
	return Vector3{
		dec.Add(dec.Add(
			dec.Mul(m.M[0][0], v.X),
			dec.Mul(m.M[1][0], v.Y)),
			dec.Mul(m.M[2][0], v.Z)),
		dec.Add(dec.Add(
			dec.Mul(m.M[0][1], v.X),
			dec.Mul(m.M[1][1], v.Y)),
			dec.Mul(m.M[2][1], v.Z)),
		dec.Add(dec.Add(
			dec.Mul(m.M[0][2], v.X),
			dec.Mul(m.M[1][2], v.Y)),
			dec.Mul(m.M[2][2], v.Z)),
	}
}

// AsQuat extracts the rotation quaternion using Shepperd's trace-based
// algorithm. Branch selection (strict trace > 0, then largest diagonal)
// matters for sign and axis consistency across near-degenerate rotations.
func (m Matrix3) AsQuat() Quat {
	trace := dec.Add(dec.Add(m.M[0][0], m.M[1][1]), m.M[2][2])
	half := dec.Half()

	if trace.Sign() > 0 {
		root := dec.Sqrt(dec.Add(trace, dec.One()))
		w := dec.Mul(half, root)
		halfByRoot := dec.Quo(half, root)
		return Quat{
			X: dec.Mul(dec.Sub(m.M[1][2], m.M[2][1]), halfByRoot),
			Y: dec.Mul(dec.Sub(m.M[2][0], m.M[0][2]), halfByRoot),
			Z: dec.Mul(dec.Sub(m.M[0][1], m.M[1][0]), halfByRoot),
			W: w,
		}
	}

	i := 0
	if m.M[1][1].Cmp(m.M[0][0]) > 0 {
		i = 1
	}
	if m.M[2][2].Cmp(m.M[i][i]) > 0 {
		i = 2
	}
	j := (i + 1) % 3
	k := (i + 2) % 3

	root := dec.Sqrt(dec.Add(dec.Sub(dec.Sub(m.M[i][i], m.M[j][j]), m.M[k][k]), dec.One()))
	var out [4]*apd.Decimal
	out[i] = dec.Mul(half, root)
	halfByRoot := dec.Quo(half, root)
	out[3] = dec.Mul(dec.Sub(m.M[j][k], m.M[k][j]), halfByRoot)
	out[j] = dec.Mul(dec.Add(m.M[j][i], m.M[i][j]), halfByRoot)
	out[k] = dec.Mul(dec.Add(m.M[k][i], m.M[i][k]), halfByRoot)
	return Quat{X: out[0], Y: out[1], Z: out[2], W: out[3]}
}
