// Package body defines the immutable input descriptors for a celestial
// hierarchy. The engine copies these at registration; runtime state lives in
// the sim package.
package body

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/san-kum/orrery/internal/geom"
)

// Dynamics is the sealed set of motion variants. Exactly Static and Orbiting
// implement it.
type Dynamics interface {
	isDynamics()
}

// Static is a fixed, time-independent global position. Static bodies anchor
// hierarchies.
type Static struct {
	Position geom.Vector3
}

// Orbiting is a closed-form circular orbit around the parent body.
type Orbiting struct {
	Radius      *apd.Decimal
	Period      *apd.Decimal
	PlaneNormal geom.Vector3 // unit vector
}

func (Static) isDynamics()   {}
func (Orbiting) isDynamics() {}

// Body describes one celestial body and its satellites. Names are assumed
// globally unique within a simulation.
type Body struct {
	Name           string
	Dynamics       Dynamics
	Mass           *apd.Decimal
	RotationAxis   geom.Vector3 // unit vector
	RotationPeriod *apd.Decimal
	Satellites     []Body
}

// Clone deep-copies the body and its subtree.
func (b Body) Clone() Body {
	c := Body{
		Name:           b.Name,
		Mass:           new(apd.Decimal).Set(b.Mass),
		RotationAxis:   b.RotationAxis.Clone(),
		RotationPeriod: new(apd.Decimal).Set(b.RotationPeriod),
	}
	switch dyn := b.Dynamics.(type) {
	case Static:
		c.Dynamics = Static{Position: dyn.Position.Clone()}
	case Orbiting:
		c.Dynamics = Orbiting{
			Radius:      new(apd.Decimal).Set(dyn.Radius),
			Period:      new(apd.Decimal).Set(dyn.Period),
			PlaneNormal: dyn.PlaneNormal.Clone(),
		}
	}
	if len(b.Satellites) > 0 {
		c.Satellites = make([]Body, 0, len(b.Satellites))
		for _, sat := range b.Satellites {
			c.Satellites = append(c.Satellites, sat.Clone())
		}
	}
	return c
}
