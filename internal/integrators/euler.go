package integrators

import (
	"github.com/san-kum/gravsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// SymplecticEuler is the semi-implicit Euler scheme: velocities for the
// whole system are updated from the pre-step snapshot, then positions are
// advanced with the new velocities.
type SymplecticEuler struct {
	// Workers > 1 splits the velocity update across goroutines.
	Workers int
	// MinChunk is the smallest number of bodies handed to one worker.
	MinChunk int
}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{Workers: 1, MinChunk: 16}
}

func (e *SymplecticEuler) Step(f dynamo.ForceModel, sys dynamo.System, dt float64) dynamo.System {
	var next dynamo.System
	if e.Workers > 1 {
		next = ParallelUpdateVelocities(f, sys, dt, e.Workers, e.MinChunk)
	} else {
		next = UpdateVelocities(f, sys, dt)
	}
	return advanceInPlace(next, dt)
}

// UpdateVelocities returns a new system where each velocity is v + a·dt,
// with every acceleration taken from sys.
func UpdateVelocities(f dynamo.ForceModel, sys dynamo.System, dt float64) dynamo.System {
	next := make(dynamo.System, len(sys))
	updateRange(f, sys, next, dt, 0, len(sys))
	return next
}

func ParallelUpdateVelocities(f dynamo.ForceModel, sys dynamo.System, dt float64, workers, minChunk int) dynamo.System {
	next := make(dynamo.System, len(sys))
	dynamo.ParallelFor(len(sys), workers, minChunk, func(start, end int) {
		updateRange(f, sys, next, dt, start, end)
	})
	return next
}

func updateRange(f dynamo.ForceModel, sys, next dynamo.System, dt float64, start, end int) {
	for i := start; i < end; i++ {
		a := f.Acceleration(sys, i)
		next[i] = sys[i].WithVelocity(r2.Add(sys[i].Velocity, r2.Scale(dt, a)))
	}
}

// AdvancePositions returns a new system where each position is p + v·dt
// using that body's own velocity.
func AdvancePositions(sys dynamo.System, dt float64) dynamo.System {
	return advanceInPlace(sys.Clone(), dt)
}

// advanceInPlace is only called on systems owned by the caller.
func advanceInPlace(sys dynamo.System, dt float64) dynamo.System {
	for i, b := range sys {
		sys[i] = b.WithPosition(r2.Add(b.Position, r2.Scale(dt, b.Velocity)))
	}
	return sys
}
