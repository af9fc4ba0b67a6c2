// Package sim is the orbital-mechanics engine: it flattens a body tree into
// id-indexed runtime records, advances them to an absolute time with
// closed-form circular-orbit kinematics, and answers spatial queries.
package sim

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/dec"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/units"
)

// NoParent marks a root record.
const NoParent = -1

// SimulatedBody is the mutable runtime record for one registered body.
// Position, Velocity and Orientation are overwritten together by Update and
// start at zero/identity.
type SimulatedBody struct {
	ID          int
	Body        body.Body
	Position    geom.Vector3
	Velocity    geom.Vector3
	Orientation geom.Matrix3
	Parent      int
	Satellites  []int
}

// Simulation owns the flat collection of simulated bodies. Ids are dense
// from 0 and assigned in pre-order, parent before children. The instance is
// single-owner; there is no internal locking.
type Simulation struct {
	bodies    []*SimulatedBody
	idCounter int
}

func New() *Simulation {
	return &Simulation{bodies: make([]*SimulatedBody, 0)}
}

// AddHierarchy flattens a body tree into the simulation, copying every
// descriptor, and returns the id of the root of the inserted subtree. Pass
// NoParent for an independent root; a forest of roots is fine.
func (s *Simulation) AddHierarchy(b body.Body, parentID int) int {
	id := s.idCounter
	s.idCounter++
	sb := &SimulatedBody{
		ID:          id,
		Body:        b.Clone(),
		Position:    geom.Zero(),
		Velocity:    geom.Zero(),
		Orientation: geom.Identity(),
		Parent:      parentID,
	}
	s.bodies = append(s.bodies, sb)
	for _, sat := range b.Satellites {
		sb.Satellites = append(sb.Satellites, s.AddHierarchy(sat, id))
	}
	return id
}

// Bodies returns the records in insertion order. The slice is shared; treat
// it as read-only.
func (s *Simulation) Bodies() []*SimulatedBody {
	return s.bodies
}

// Body looks a record up by name with a linear scan.
func (s *Simulation) Body(name string) (*SimulatedBody, error) {
	for _, b := range s.bodies {
		if b.Body.Name == name {
			return b, nil
		}
	}
	return nil, &InvariantError{Cause: CauseLookupMiss, Detail: fmt.Sprintf("no body named %q", name)}
}

// BodyByID looks a record up by id with a linear scan.
func (s *Simulation) BodyByID(id int) (*SimulatedBody, error) {
	for _, b := range s.bodies {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, &InvariantError{Cause: CauseLookupMiss, Detail: fmt.Sprintf("no body with id %d", id)}
}

// HierarchyUp returns the ancestor chain of b, nearest first. A root gets an
// empty chain.
func (s *Simulation) HierarchyUp(b *SimulatedBody) []*SimulatedBody {
	chain := make([]*SimulatedBody, 0)
	for b.Parent != NoParent {
		parent, err := s.BodyByID(b.Parent)
		if err != nil {
			break
		}
		chain = append(chain, parent)
		b = parent
	}
	return chain
}

// HierarchyDown returns every descendant of b in depth-first pre-order:
// each satellite immediately followed by its own subtree, then the next
// sibling. b itself is not included.
func (s *Simulation) HierarchyDown(b *SimulatedBody) []*SimulatedBody {
	result := make([]*SimulatedBody, 0)
	for _, id := range b.Satellites {
		sat, err := s.BodyByID(id)
		if err != nil {
			continue
		}
		result = append(result, sat)
		result = append(result, s.HierarchyDown(sat)...)
	}
	return result
}

// bodyPosition evaluates the closed-form position at time t. Orbiting bodies
// need their parent's position already written for this tick; Update's
// schedule ordering guarantees that.
func (s *Simulation) bodyPosition(t *apd.Decimal, b *SimulatedBody) (geom.Vector3, error) {
	switch dyn := b.Body.Dynamics.(type) {
	case body.Static:
		return dyn.Position.Clone(), nil
	case body.Orbiting:
		if b.Parent == NoParent {
			return geom.Vector3{}, &InvariantError{Cause: CauseUnreachableParent, Detail: b.Body.Name}
		}
		parent, err := s.BodyByID(b.Parent)
		if err != nil {
			return geom.Vector3{}, &InvariantError{Cause: CauseUnreachableParent, Detail: b.Body.Name}
		}
		progression := dec.Frac(dec.Quo(t, dyn.Period))
		angle := dec.Mul(dec.TwoPi(), progression)
		rotation := geom.AxisAngle(dyn.PlaneNormal, angle)
		offset := rotation.Apply(geom.New(dyn.Radius, dec.Zero(), dec.Zero()))
		return offset.Add(parent.Position), nil
	default:
		panic(fmt.Sprintf("unknown dynamics %T for body %q", b.Body.Dynamics, b.Body.Name))
	}
}

// bodyOrientation evaluates the spin orientation at time t.
func (s *Simulation) bodyOrientation(t *apd.Decimal, b *SimulatedBody) geom.Matrix3 {
	progression := dec.Frac(dec.Quo(t, b.Body.RotationPeriod))
	angle := dec.Mul(dec.TwoPi(), progression)
	return geom.AxisAngle(b.Body.RotationAxis, angle)
}

// Update advances the simulation to the absolute time t. The schedule is the
// pre-order walk below every Static body, so a parent's position is always
// written before a dependent child reads it. Velocity is a one-unit backward
// difference of position. The three derived fields of each body are
// committed as a group; the first invariant violation aborts the pass.
//
// Hierarchies rooted at an Orbiting body with no Static ancestor are never
// scheduled, and a Static root's own record keeps its initial position.
func (s *Simulation) Update(t *apd.Decimal) error {
	schedule := make([]int, 0, len(s.bodies))
	for _, b := range s.bodies {
		if _, ok := b.Body.Dynamics.(body.Static); !ok {
			continue
		}
		for _, d := range s.HierarchyDown(b) {
			schedule = append(schedule, d.ID)
		}
	}

	before := dec.Sub(t, dec.One())
	for _, id := range schedule {
		b, err := s.BodyByID(id)
		if err != nil {
			return err
		}
		position, err := s.bodyPosition(t, b)
		if err != nil {
			return err
		}
		positionBefore, err := s.bodyPosition(before, b)
		if err != nil {
			return err
		}
		b.Position = position
		b.Velocity = position.Sub(positionBefore)
		b.Orientation = s.bodyOrientation(t, b)
	}
	return nil
}

// SurfaceVelocity returns the spin-only velocity of a point given relative
// to the named body's center: omega cross r, with omega along the rotation
// axis at 2*pi over the rotation period. The body's own orbital velocity is
// not included.
func (s *Simulation) SurfaceVelocity(name string, relativePoint geom.Vector3) (geom.Vector3, error) {
	b, err := s.Body(name)
	if err != nil {
		return geom.Vector3{}, err
	}
	angular := dec.Quo(dec.TwoPi(), b.Body.RotationPeriod)
	omega := b.Body.RotationAxis.MulScalar(angular)
	return omega.Cross(relativePoint), nil
}

// FindClosestStatic returns the Static body nearest to point, first
// registered winning ties. A simulation without any Static body cannot
// answer and reports an invariant violation.
func (s *Simulation) FindClosestStatic(point geom.Vector3) (*SimulatedBody, error) {
	var closest *SimulatedBody
	var minDistance *apd.Decimal
	for _, b := range s.bodies {
		if _, ok := b.Body.Dynamics.(body.Static); !ok {
			continue
		}
		distance := b.Position.DistanceTo(point)
		if closest == nil || distance.Cmp(minDistance) < 0 {
			closest = b
			minDistance = distance
		}
	}
	if closest == nil {
		return nil, &InvariantError{Cause: CauseNoStaticBody}
	}
	return closest, nil
}

// FindClosestBody returns the body nearest to point within the down
// hierarchy of the closest Static body, or that Static body itself when it
// has no descendants.
func (s *Simulation) FindClosestBody(point geom.Vector3) (*SimulatedBody, error) {
	closestStatic, err := s.FindClosestStatic(point)
	if err != nil {
		return nil, err
	}
	down := s.HierarchyDown(closestStatic)
	if len(down) == 0 {
		return closestStatic, nil
	}
	closest := down[0]
	minDistance := closest.Position.DistanceTo(point)
	for _, b := range down[1:] {
		distance := b.Position.DistanceTo(point)
		if distance.Cmp(minDistance) < 0 {
			closest = b
			minDistance = distance
		}
	}
	return closest, nil
}

// GravityFlux sums the Newtonian field contributions of the local system
// (the closest Static body plus its full subtree) at point. Distant systems
// are never summed; the result is a locally-valid approximation.
func (s *Simulation) GravityFlux(point geom.Vector3) (geom.Vector3, error) {
	closestStatic, err := s.FindClosestStatic(point)
	if err != nil {
		return geom.Vector3{}, err
	}
	local := append(s.HierarchyDown(closestStatic), closestStatic)

	flux := geom.Zero()
	for _, b := range local {
		relative := b.Position.Sub(point)
		direction, err := relative.Normalized()
		if err != nil {
			return geom.Vector3{}, &InvariantError{Cause: CauseDegenerateNormalize, Detail: b.Body.Name}
		}
		strength := dec.Quo(dec.Mul(units.G(), b.Body.Mass), relative.LengthSquared())
		flux = flux.Add(direction.MulScalar(strength))
	}
	return flux, nil
}
