package physics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// G is the Newtonian gravitational constant in SI units.
const G = 6.6743e-11

type Gravity struct {
	G   float64
	Law Law
}

// NewGravity returns a vector-law model using G.
func NewGravity() *Gravity {
	return &Gravity{G: G, Law: LawVector}
}

// PairwiseForce returns the force exerted on a by b.
func (g *Gravity) PairwiseForce(a, b dynamo.Body) dynamo.Vec {
	d := r2.Sub(b.Position, a.Position)
	k := g.G * a.Mass * b.Mass

	if g.Law == LawPerAxis {
		return dynamo.Vec{X: perAxis(k, d.X), Y: perAxis(k, d.Y)}
	}

	r2n := d.X*d.X + d.Y*d.Y
	if r2n == 0 {
		return dynamo.Vec{}
	}
	f := k / (r2n * math.Sqrt(r2n))

	var out dynamo.Vec
	if d.X != 0 {
		out.X = f * d.X
	}
	if d.Y != 0 {
		out.Y = f * d.Y
	}
	return out
}

func perAxis(k, delta float64) float64 {
	if delta == 0 {
		return 0
	}
	return math.Copysign(k/(delta*delta), delta)
}

// NetForce sums the pairwise forces on sys[i] from every other body.
// Bodies are excluded by index, never by value.
func (g *Gravity) NetForce(sys dynamo.System, i int) dynamo.Vec {
	target := sys[i]
	var f dynamo.Vec
	for j := range sys {
		if j == i {
			continue
		}
		f = r2.Add(f, g.PairwiseForce(target, sys[j]))
	}
	return f
}

// Acceleration is NetForce divided by the body's mass. A zero mass yields
// Inf or NaN components.
func (g *Gravity) Acceleration(sys dynamo.System, i int) dynamo.Vec {
	return r2.Scale(1/sys[i].Mass, g.NetForce(sys, i))
}

// Distance returns the Euclidean distance between two bodies.
func Distance(a, b dynamo.Body) float64 {
	return r2.Norm(r2.Sub(a.Position, b.Position))
}
