package metrics

import (
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// Boundedness is the fraction of samples in which every body stayed within
// radius of the system's center of mass.
type Boundedness struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewBoundedness(radius float64) *Boundedness {
	return &Boundedness{
		name:   "boundedness",
		radius: radius,
	}
}

func (b *Boundedness) Name() string {
	return b.name
}

func (b *Boundedness) Observe(sys dynamo.System, t float64) {
	b.samples++
	com := dynamo.NewBody(1, sys.CenterOfMass(), dynamo.Vec{})
	for _, body := range sys {
		if physics.Distance(body, com) > b.radius {
			b.violations++
			break
		}
	}
}

func (b *Boundedness) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Boundedness) Reset() {
	b.violations = 0
	b.samples = 0
}

// Default returns the metric set used by the CLI.
func Default(model dynamo.Hamiltonian, radius float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergyDrift(model),
		NewMomentumDrift(),
		NewAngularMomentumDrift(),
		NewBoundedness(radius),
	}
}
