package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/dec"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/units"
)

func mustUnit(t *testing.T, x, y, z float64) geom.Vector3 {
	t.Helper()
	v, err := geom.FromFloats(x, y, z).Normalized()
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func referenceSystem(t *testing.T) body.Body {
	t.Helper()

	moon := body.Body{
		Name: "moon",
		Dynamics: body.Orbiting{
			Radius:      dec.MustParse("384400000"),
			Period:      dec.MustParse("2332800"),
			PlaneNormal: mustUnit(t, 0.0, 1.0, 0.1),
		},
		Mass:           dec.MustParse("7.3e22"),
		RotationAxis:   mustUnit(t, 0.3, 1.0, 0.2),
		RotationPeriod: dec.MustParse("2332800"),
	}

	earth := body.Body{
		Name: "earth",
		Dynamics: body.Orbiting{
			Radius:      units.AUToMeters(dec.One()),
			Period:      dec.MustParse("31536000"),
			PlaneNormal: mustUnit(t, 0.1, 1.0, 0.0),
		},
		Mass:           dec.MustParse("5.97219e24"),
		RotationAxis:   mustUnit(t, 0.0, 1.0, 0.0),
		RotationPeriod: dec.MustParse("86400"),
		Satellites:     []body.Body{moon},
	}

	return body.Body{
		Name: "sun",
		Dynamics: body.Static{
			Position: geom.MustFromStrings("64959787070023434667", "23454569021239234304", "29349283489"),
		},
		Mass:           dec.MustParse("1.98847e30"),
		RotationAxis:   mustUnit(t, 0.0, 1.0, 0.0),
		RotationPeriod: dec.MustParse("604800"),
		Satellites:     []body.Body{earth},
	}
}

func prepareSim(t *testing.T) *Simulation {
	t.Helper()
	s := New()
	s.AddHierarchy(referenceSystem(t), NoParent)
	return s
}

func toFloat(t *testing.T, v geom.Vector3) float64 {
	t.Helper()
	f, err := v.Length().Float64()
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestAddHierarchy(t *testing.T) {
	s := prepareSim(t)

	sun, err := s.Body("sun")
	if err != nil {
		t.Fatal(err)
	}
	earth, err := s.Body("earth")
	if err != nil {
		t.Fatal(err)
	}
	moon, err := s.Body("moon")
	if err != nil {
		t.Fatal(err)
	}

	// pre-order ids, parent before children
	if sun.ID != 0 || earth.ID != 1 || moon.ID != 2 {
		t.Errorf("ids = %d, %d, %d, want 0, 1, 2", sun.ID, earth.ID, moon.ID)
	}
	if sun.Parent != NoParent {
		t.Errorf("sun parent = %d, want NoParent", sun.Parent)
	}
	if earth.Parent != sun.ID || moon.Parent != earth.ID {
		t.Errorf("parent links broken: earth=%d moon=%d", earth.Parent, moon.Parent)
	}
	if len(sun.Satellites) != 1 || sun.Satellites[0] != earth.ID {
		t.Errorf("sun satellites = %v, want [%d]", sun.Satellites, earth.ID)
	}
	if len(moon.Satellites) != 0 {
		t.Errorf("moon satellites = %v, want none", moon.Satellites)
	}
}

func TestHierarchyResolution(t *testing.T) {
	s := prepareSim(t)
	sun, _ := s.Body("sun")
	earth, _ := s.Body("earth")
	moon, _ := s.Body("moon")

	up := s.HierarchyUp(moon)
	if len(up) != 2 || up[0] != earth || up[1] != sun {
		t.Errorf("moon ancestors wrong: %v", names(up))
	}
	if len(s.HierarchyUp(sun)) != 0 {
		t.Error("root should have no ancestors")
	}

	down := s.HierarchyDown(sun)
	if len(down) != 2 || down[0] != earth || down[1] != moon {
		t.Errorf("sun descendants wrong: %v", names(down))
	}

	// every child is in its parent's down-hierarchy, and the parent appears
	// exactly once in the child's up-chain
	for _, b := range s.Bodies() {
		if b.Parent == NoParent {
			continue
		}
		parent, err := s.BodyByID(b.Parent)
		if err != nil {
			t.Fatal(err)
		}
		found := false
		for _, d := range s.HierarchyDown(parent) {
			if d == b {
				found = true
			}
		}
		if !found {
			t.Errorf("%s missing from parent's down-hierarchy", b.Body.Name)
		}
		count := 0
		for _, a := range s.HierarchyUp(b) {
			if a.ID == b.Parent {
				count++
			}
		}
		if count != 1 {
			t.Errorf("%s: parent appears %d times in up-chain, want 1", b.Body.Name, count)
		}
	}
}

func TestGravityFlux(t *testing.T) {
	s := prepareSim(t)
	if err := s.Update(dec.FromFloat(123123)); err != nil {
		t.Fatal(err)
	}

	earth, err := s.Body("earth")
	if err != nil {
		t.Fatal(err)
	}

	flux, err := s.GravityFlux(earth.Position.Add(geom.FromFloats(6371000, 0, 0)))
	if err != nil {
		t.Fatal(err)
	}

	got := toFloat(t, flux)
	if math.Abs(got-9.82) > 0.01 {
		t.Errorf("flux magnitude = %v, want 9.82 +/- 0.01", got)
	}
}

func TestSurfaceVelocity(t *testing.T) {
	s := prepareSim(t)

	surfVel, err := s.SurfaceVelocity("earth", geom.FromFloats(6371000, 0, 0))
	if err != nil {
		t.Fatal(err)
	}

	got := toFloat(t, surfVel)
	if math.Abs(got-463.31) > 0.01 {
		t.Errorf("surface velocity magnitude = %v, want 463.31 +/- 0.01", got)
	}
}

func TestOrbitalVelocityMagnitude(t *testing.T) {
	s := prepareSim(t)
	if err := s.Update(dec.FromFloat(123123)); err != nil {
		t.Fatal(err)
	}

	earth, _ := s.Body("earth")
	got := toFloat(t, earth.Velocity)
	want := 2 * math.Pi * 149597870691 / 31536000
	if math.Abs(got-want) > 0.01 {
		t.Errorf("earth speed = %v, want %v (backward difference of a 1 AU circle)", got, want)
	}
}

func TestUpdateIdempotent(t *testing.T) {
	s := prepareSim(t)
	at := dec.FromFloat(123123)

	if err := s.Update(at); err != nil {
		t.Fatal(err)
	}
	moon, _ := s.Body("moon")
	first := moon.Position.String()
	firstVel := moon.Velocity.String()

	if err := s.Update(at); err != nil {
		t.Fatal(err)
	}
	if moon.Position.String() != first || moon.Velocity.String() != firstVel {
		t.Error("second update at the same time changed derived state")
	}
}

func TestStaticRootKeepsInitialPosition(t *testing.T) {
	// the schedule walks down from static roots but never includes them, so
	// a root's runtime position stays at the zero initial value
	s := prepareSim(t)
	if err := s.Update(dec.FromFloat(123123)); err != nil {
		t.Fatal(err)
	}
	sun, _ := s.Body("sun")
	if !sun.Position.X.IsZero() || !sun.Position.Y.IsZero() || !sun.Position.Z.IsZero() {
		t.Errorf("sun position = %s, want initial zero", sun.Position)
	}
}

func TestOrbitingRootNeverScheduled(t *testing.T) {
	s := prepareSim(t)

	stray := body.Body{
		Name: "stray",
		Dynamics: body.Orbiting{
			Radius:      dec.MustParse("1000"),
			Period:      dec.MustParse("60"),
			PlaneNormal: mustUnit(t, 0, 1, 0),
		},
		Mass:           dec.MustParse("1"),
		RotationAxis:   mustUnit(t, 0, 1, 0),
		RotationPeriod: dec.MustParse("60"),
	}
	s.AddHierarchy(stray, NoParent)

	if err := s.Update(dec.FromFloat(123123)); err != nil {
		t.Fatal(err)
	}
	b, _ := s.Body("stray")
	if !b.Position.X.IsZero() || !b.Position.Y.IsZero() || !b.Position.Z.IsZero() {
		t.Error("orbiting root without a static ancestor must not be updated")
	}
}

func TestFindClosestStatic(t *testing.T) {
	s := prepareSim(t)
	if err := s.Update(dec.FromFloat(123123)); err != nil {
		t.Fatal(err)
	}

	closest, err := s.FindClosestStatic(geom.FromFloats(1e9, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if closest.Body.Name != "sun" {
		t.Errorf("closest static = %s, want sun", closest.Body.Name)
	}
}

func TestFindClosestStaticNoStaticBodies(t *testing.T) {
	s := New()
	if _, err := s.FindClosestStatic(geom.Zero()); !errors.Is(err, ErrInvariant) {
		t.Errorf("expected ErrInvariant for empty simulation, got %v", err)
	}

	var invErr *InvariantError
	_, err := s.FindClosestStatic(geom.Zero())
	if !errors.As(err, &invErr) || invErr.Cause != CauseNoStaticBody {
		t.Errorf("expected no-static-body cause, got %v", err)
	}
}

func TestFindClosestBody(t *testing.T) {
	s := prepareSim(t)
	if err := s.Update(dec.FromFloat(123123)); err != nil {
		t.Fatal(err)
	}

	moon, _ := s.Body("moon")
	near := moon.Position.Add(geom.FromFloats(1000, 0, 0))
	closest, err := s.FindClosestBody(near)
	if err != nil {
		t.Fatal(err)
	}
	if closest != moon {
		t.Errorf("closest body = %s, want moon", closest.Body.Name)
	}
}

func TestFindClosestBodyLoneStatic(t *testing.T) {
	s := New()
	lone := body.Body{
		Name:           "rock",
		Dynamics:       body.Static{Position: geom.Zero()},
		Mass:           dec.MustParse("1"),
		RotationAxis:   mustUnit(t, 0, 1, 0),
		RotationPeriod: dec.MustParse("60"),
	}
	s.AddHierarchy(lone, NoParent)

	closest, err := s.FindClosestBody(geom.FromFloats(5, 5, 5))
	if err != nil {
		t.Fatal(err)
	}
	if closest.Body.Name != "rock" {
		t.Errorf("closest = %s, want rock", closest.Body.Name)
	}
}

func TestBodyLookupMiss(t *testing.T) {
	s := prepareSim(t)

	_, err := s.Body("pluto")
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("expected ErrInvariant, got %v", err)
	}
	var invErr *InvariantError
	if !errors.As(err, &invErr) || invErr.Cause != CauseLookupMiss {
		t.Errorf("expected lookup-miss cause, got %v", err)
	}

	if _, err := s.BodyByID(99); !errors.Is(err, ErrInvariant) {
		t.Errorf("expected ErrInvariant for unknown id, got %v", err)
	}
}

func TestGravityFluxAtBodyCenterFails(t *testing.T) {
	s := prepareSim(t)
	if err := s.Update(dec.FromFloat(123123)); err != nil {
		t.Fatal(err)
	}
	moon, _ := s.Body("moon")

	_, err := s.GravityFlux(moon.Position)
	var invErr *InvariantError
	if !errors.As(err, &invErr) || invErr.Cause != CauseDegenerateNormalize {
		t.Errorf("expected degenerate-normalize cause, got %v", err)
	}
}

func names(bodies []*SimulatedBody) []string {
	out := make([]string, 0, len(bodies))
	for _, b := range bodies {
		out = append(out, b.Body.Name)
	}
	return out
}
