// Package config loads and saves yaml system definitions and converts them
// into body descriptors.
package config

import (
	"fmt"
	"os"

	"github.com/cockroachdb/apd/v3"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/dec"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/units"
)

// SystemSpec is a named forest of body trees.
type SystemSpec struct {
	Name   string     `yaml:"name"`
	Bodies []BodySpec `yaml:"bodies"`
}

// BodySpec describes one body. Exactly one of Static and Orbit must be set.
// Scalar quantities are decimal text so configs stay exact; orientation
// vectors are floats and get normalized during conversion.
type BodySpec struct {
	Name       string       `yaml:"name"`
	Mass       string       `yaml:"mass"`
	Static     *StaticSpec  `yaml:"static,omitempty"`
	Orbit      *OrbitSpec   `yaml:"orbit,omitempty"`
	Rotation   RotationSpec `yaml:"rotation"`
	Satellites []BodySpec   `yaml:"satellites,omitempty"`
}

type StaticSpec struct {
	Position [3]string `yaml:"position"`
}

type OrbitSpec struct {
	Radius   string     `yaml:"radius,omitempty"`
	RadiusAU float64    `yaml:"radius_au,omitempty"`
	Period   string     `yaml:"period"`
	Normal   [3]float64 `yaml:"normal"`
}

type RotationSpec struct {
	Axis   [3]float64 `yaml:"axis"`
	Period string     `yaml:"period"`
}

func Load(path string) (*SystemSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec SystemSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	if len(spec.Bodies) == 0 {
		return nil, fmt.Errorf("system %q has no bodies", spec.Name)
	}
	return &spec, nil
}

func Save(path string, spec *SystemSpec) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToBodies converts every root spec, validating the whole forest.
func (s *SystemSpec) ToBodies() ([]body.Body, error) {
	bodies := make([]body.Body, 0, len(s.Bodies))
	for i := range s.Bodies {
		b, err := s.Bodies[i].ToBody()
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// ToBody validates and converts one spec subtree.
func (s *BodySpec) ToBody() (body.Body, error) {
	if s.Name == "" {
		return body.Body{}, fmt.Errorf("body without a name")
	}
	if (s.Static == nil) == (s.Orbit == nil) {
		return body.Body{}, fmt.Errorf("body %q: exactly one of static and orbit must be set", s.Name)
	}

	mass, err := dec.Parse(s.Mass)
	if err != nil {
		return body.Body{}, fmt.Errorf("body %q: mass: %w", s.Name, err)
	}
	rotationPeriod, err := dec.Parse(s.Rotation.Period)
	if err != nil {
		return body.Body{}, fmt.Errorf("body %q: rotation period: %w", s.Name, err)
	}
	rotationAxis, err := unitVector(s.Rotation.Axis)
	if err != nil {
		return body.Body{}, fmt.Errorf("body %q: rotation axis: %w", s.Name, err)
	}

	b := body.Body{
		Name:           s.Name,
		Mass:           mass,
		RotationAxis:   rotationAxis,
		RotationPeriod: rotationPeriod,
	}

	switch {
	case s.Static != nil:
		position, err := geom.FromStrings(s.Static.Position[0], s.Static.Position[1], s.Static.Position[2])
		if err != nil {
			return body.Body{}, fmt.Errorf("body %q: static position: %w", s.Name, err)
		}
		b.Dynamics = body.Static{Position: position}
	case s.Orbit != nil:
		radius, err := orbitRadius(s.Orbit)
		if err != nil {
			return body.Body{}, fmt.Errorf("body %q: %w", s.Name, err)
		}
		period, err := dec.Parse(s.Orbit.Period)
		if err != nil {
			return body.Body{}, fmt.Errorf("body %q: orbit period: %w", s.Name, err)
		}
		normal, err := unitVector(s.Orbit.Normal)
		if err != nil {
			return body.Body{}, fmt.Errorf("body %q: orbit plane normal: %w", s.Name, err)
		}
		b.Dynamics = body.Orbiting{Radius: radius, Period: period, PlaneNormal: normal}
	}

	for i := range s.Satellites {
		sat, err := s.Satellites[i].ToBody()
		if err != nil {
			return body.Body{}, err
		}
		b.Satellites = append(b.Satellites, sat)
	}
	return b, nil
}

func orbitRadius(o *OrbitSpec) (*apd.Decimal, error) {
	switch {
	case o.Radius != "" && o.RadiusAU != 0:
		return nil, fmt.Errorf("orbit radius given both in meters and AU")
	case o.Radius != "":
		return dec.Parse(o.Radius)
	case o.RadiusAU != 0:
		return units.AUToMeters(dec.FromFloat(o.RadiusAU)), nil
	default:
		return nil, fmt.Errorf("orbit radius missing")
	}
}

func unitVector(v [3]float64) (geom.Vector3, error) {
	return geom.FromFloats(v[0], v[1], v[2]).Normalized()
}
