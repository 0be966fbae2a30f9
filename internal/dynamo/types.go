package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2D real vector.
type Vec = r2.Vec

// Body is a point mass. It is treated as an immutable value.
type Body struct {
	Mass     float64
	Position Vec
	Velocity Vec
}

func NewBody(mass float64, position, velocity Vec) Body {
	return Body{Mass: mass, Position: position, Velocity: velocity}
}

// WithVelocity returns a copy of b with velocity v.
func (b Body) WithVelocity(v Vec) Body {
	b.Velocity = v
	return b
}

// WithPosition returns a copy of b with position p.
func (b Body) WithPosition(p Vec) Body {
	b.Position = p
	return b
}

func (b Body) Momentum() Vec {
	return r2.Scale(b.Mass, b.Velocity)
}

func (b Body) IsValid() bool {
	return finite(b.Mass) && finite(b.Position.X) && finite(b.Position.Y) &&
		finite(b.Velocity.X) && finite(b.Velocity.Y)
}

// System is an ordered collection of bodies. Order carries identity only.
type System []Body

// NewSystem builds a System from the given bodies. The input is copied.
func NewSystem(bodies ...Body) System {
	s := make(System, len(bodies))
	copy(s, bodies)
	return s
}

func (s System) Clone() System {
	c := make(System, len(s))
	copy(c, s)
	return c
}

// Validate reports ErrEmptySystem or the first body violating the mass
// invariant. Core operations never call it.
func (s System) Validate() error {
	if len(s) == 0 {
		return ErrEmptySystem
	}
	for i, b := range s {
		if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
			return fmt.Errorf("body %d (mass=%g): %w", i, b.Mass, ErrInvalidMass)
		}
	}
	return nil
}

func (s System) IsValid() bool {
	for _, b := range s {
		if !b.IsValid() {
			return false
		}
	}
	return true
}

func (s System) TotalMass() float64 {
	m := 0.0
	for _, b := range s {
		m += b.Mass
	}
	return m
}

func (s System) Momentum() Vec {
	var p Vec
	for _, b := range s {
		p = r2.Add(p, b.Momentum())
	}
	return p
}

// CenterOfMass returns the mass-weighted mean position.
func (s System) CenterOfMass() Vec {
	var c Vec
	m := s.TotalMass()
	if m == 0 {
		return c
	}
	for _, b := range s {
		c = r2.Add(c, r2.Scale(b.Mass, b.Position))
	}
	return r2.Scale(1/m, c)
}

// Equal reports component-wise equality of two systems.
func (s System) Equal(other System) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ForceModel yields the acceleration of body i given a system snapshot.
type ForceModel interface {
	Acceleration(sys System, i int) Vec
}

// Hamiltonian is implemented by force models with a potential energy.
type Hamiltonian interface {
	Energy(sys System) float64
}

// Integrator advances every body of a system by one update cycle.
type Integrator interface {
	Step(f ForceModel, sys System, dt float64) System
}

type Metric interface {
	Name() string
	Observe(sys System, t float64)
	Value() float64
	Reset()
}

// Observer receives every state of a run, including the initial one. The
// system passed to OnStep is a copy the observer may keep or modify. It is
// the hook for visualization.
type Observer interface {
	OnStep(sys System, cycle int, t float64)
}
