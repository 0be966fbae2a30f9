package physics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Energy returns kinetic plus potential energy under g.Law. Coincident pairs
// contribute no potential, matching the zero-force convention.
func (g *Gravity) Energy(sys dynamo.System) float64 {
	return g.KineticEnergy(sys) + g.PotentialEnergy(sys)
}

func (g *Gravity) KineticEnergy(sys dynamo.System) float64 {
	ke := 0.0
	for _, b := range sys {
		ke += 0.5 * b.Mass * r2.Norm2(b.Velocity)
	}
	return ke
}

// PotentialEnergy is the potential of the configured law: -k/r for
// LawVector and -k(1/|dx| + 1/|dy|) for LawPerAxis, with k = G·m1·m2. Pairs
// or axes with zero separation contribute nothing.
func (g *Gravity) PotentialEnergy(sys dynamo.System) float64 {
	pe := 0.0
	for i := 0; i < len(sys); i++ {
		for j := i + 1; j < len(sys); j++ {
			k := g.G * sys[i].Mass * sys[j].Mass
			if g.Law == LawPerAxis {
				d := r2.Sub(sys[j].Position, sys[i].Position)
				pe -= perAxisPotential(k, d.X) + perAxisPotential(k, d.Y)
				continue
			}
			r := Distance(sys[i], sys[j])
			if r == 0 {
				continue
			}
			pe -= k / r
		}
	}
	return pe
}

func perAxisPotential(k, delta float64) float64 {
	if delta == 0 {
		return 0
	}
	return k / math.Abs(delta)
}

// AngularMomentum returns the z component of total angular momentum about
// the origin.
func AngularMomentum(sys dynamo.System) float64 {
	L := 0.0
	for _, b := range sys {
		L += b.Mass * (b.Position.X*b.Velocity.Y - b.Position.Y*b.Velocity.X)
	}
	return L
}

// CircularSpeed is the speed of a circular orbit of radius r around mass m.
func (g *Gravity) CircularSpeed(m, r float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Sqrt(g.G * m / r)
}
