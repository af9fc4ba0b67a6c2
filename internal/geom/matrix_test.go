package geom

import (
	"math"
	"testing"

	"github.com/san-kum/orrery/internal/dec"
)

func TestIdentityApply(t *testing.T) {
	v := FromFloats(1.5, -2, 3)
	got := Identity().Apply(v)
	assertVecClose(t, got, v, "1e-70")
}

func TestAxisAngleZeroIsIdentity(t *testing.T) {
	m := AxisAngle(FromFloats(0, 0, 1), dec.Zero())
	id := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if m.M[i][j].Cmp(id.M[i][j]) != 0 {
				t.Errorf("M[%d][%d] = %s, want %s", i, j, m.M[i][j].String(), id.M[i][j].String())
			}
		}
	}
}

func TestAxisAngleQuarterTurn(t *testing.T) {
	angle := dec.Quo(dec.Pi(), dec.MustParse("2"))
	m := AxisAngle(FromFloats(0, 0, 1), angle)
	got := m.Apply(FromFloats(1, 0, 0))
	assertVecClose(t, got, FromFloats(0, 1, 0), "1e-30")
}

func TestAxisAngleRoundTrip(t *testing.T) {
	angle := dec.FromFloat(1.2345)
	axis, err := FromFloats(0.2, 0.9, -0.4).Normalized()
	if err != nil {
		t.Fatal(err)
	}
	forward := AxisAngle(axis, angle)
	back := AxisAngle(axis, dec.Neg(angle))

	v := FromFloats(3, -1, 2)
	assertVecClose(t, back.Apply(forward.Apply(v)), v, "1e-30")
}

func TestAsQuatIdentity(t *testing.T) {
	q := Identity().AsQuat()
	if q.W.Cmp(dec.One()) != 0 {
		t.Errorf("w = %s, want 1", q.W.String())
	}
	if !q.X.IsZero() || !q.Y.IsZero() || !q.Z.IsZero() {
		t.Errorf("vector part = (%s, %s, %s), want zero", q.X.String(), q.Y.String(), q.Z.String())
	}
}

func TestAsQuatBasisAxes(t *testing.T) {
	theta := math.Pi / 3 // trace > 0 branch
	tests := []struct {
		name string
		axis Vector3
	}{
		{"x", FromFloats(1, 0, 0)},
		{"y", FromFloats(0, 1, 0)},
		{"z", FromFloats(0, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := AxisAngle(tt.axis, dec.FromFloat(theta)).AsQuat()

			wantW := math.Cos(theta / 2)
			wantVec := math.Sin(theta / 2)

			gotW, _ := q.W.Float64()
			if math.Abs(gotW-wantW) > 1e-12 {
				t.Errorf("w = %v, want %v", gotW, wantW)
			}

			components := map[string]float64{}
			components["x"], _ = q.X.Float64()
			components["y"], _ = q.Y.Float64()
			components["z"], _ = q.Z.Float64()
			for name, got := range components {
				want := 0.0
				if name == tt.name {
					want = wantVec
				}
				if math.Abs(got-want) > 1e-12 {
					t.Errorf("component %s = %v, want %v", name, got, want)
				}
			}
		})
	}
}

func TestAsQuatLargeAngle(t *testing.T) {
	theta := 2.8 // trace < 0, exercises the swing branch
	q := AxisAngle(FromFloats(0, 0, 1), dec.FromFloat(theta)).AsQuat()

	gotW, _ := q.W.Float64()
	gotZ, _ := q.Z.Float64()
	if math.Abs(gotW-math.Cos(theta/2)) > 1e-12 {
		t.Errorf("w = %v, want %v", gotW, math.Cos(theta/2))
	}
	if math.Abs(gotZ-math.Sin(theta/2)) > 1e-12 {
		t.Errorf("z = %v, want %v", gotZ, math.Sin(theta/2))
	}

	gotX, _ := q.X.Float64()
	gotY, _ := q.Y.Float64()
	if math.Abs(gotX) > 1e-12 || math.Abs(gotY) > 1e-12 {
		t.Errorf("x, y = %v, %v, want 0, 0", gotX, gotY)
	}
}

func TestApplyPreservesLength(t *testing.T) {
	axis, err := FromFloats(1, 1, 1).Normalized()
	if err != nil {
		t.Fatal(err)
	}
	m := AxisAngle(axis, dec.FromFloat(0.7))
	v := FromFloats(2, -3, 5)
	assertDecClose(t, m.Apply(v).Length(), v.Length(), "1e-30")
}
