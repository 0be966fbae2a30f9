package analysis

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

// LyapunovExponent estimates the largest Lyapunov exponent by following sys
// and a copy whose first body is displaced by perturbation along x. Every
// renorm cycles the phase-space separation is logged and rescaled back to
// perturbation.
func LyapunovExponent(s *sim.Simulator, sys dynamo.System, dt float64, cycles int, perturbation float64, renorm int) float64 {
	if len(sys) == 0 || cycles <= 0 || dt == 0 || perturbation <= 0 {
		return 0
	}
	if renorm < 1 {
		renorm = 1
	}

	x := sys.Clone()
	xp := sys.Clone()
	xp[0] = xp[0].WithPosition(r2.Add(xp[0].Position, dynamo.Vec{X: perturbation}))

	sumLog := 0.0
	elapsed := 0
	for c := 1; c <= cycles; c++ {
		x = s.Step(x, dt)
		xp = s.Step(xp, dt)

		if c%renorm != 0 && c != cycles {
			continue
		}
		elapsed = c

		sep := separation(x, xp)
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			continue
		}
		sumLog += math.Log(sep / perturbation)
		xp = rescale(x, xp, perturbation/sep)
	}

	if elapsed == 0 {
		return 0
	}
	return sumLog / (float64(elapsed) * math.Abs(dt))
}

func separation(a, b dynamo.System) float64 {
	sum := 0.0
	for i := range a {
		sum += r2.Norm2(r2.Sub(b[i].Position, a[i].Position))
		sum += r2.Norm2(r2.Sub(b[i].Velocity, a[i].Velocity))
	}
	return math.Sqrt(sum)
}

func rescale(ref, p dynamo.System, scale float64) dynamo.System {
	out := make(dynamo.System, len(p))
	for i := range p {
		pos := r2.Add(ref[i].Position, r2.Scale(scale, r2.Sub(p[i].Position, ref[i].Position)))
		vel := r2.Add(ref[i].Velocity, r2.Scale(scale, r2.Sub(p[i].Velocity, ref[i].Velocity)))
		out[i] = dynamo.NewBody(p[i].Mass, pos, vel)
	}
	return out
}
