package sim

import (
	"github.com/san-kum/gravsim/internal/dynamo"
)

// Config controls a validated, recorded run.
type Config struct {
	Dt     float64
	Cycles int
	// RecordEvery keeps every n-th cycle in Result.States. The initial and
	// final states are always kept. Zero means every cycle.
	RecordEvery    int
	ValidateSystem bool
	ValidateState  bool
}

func DefaultConfig() Config {
	return Config{
		Dt:             1.0,
		Cycles:         1000,
		RecordEvery:    1,
		ValidateSystem: true,
		ValidateState:  true,
	}
}

// CyclesForSteps converts a step count to update cycles: steps-1 cycles,
// and none for steps <= 1.
func CyclesForSteps(steps int) int {
	if steps <= 1 {
		return 0
	}
	return steps - 1
}

type Result struct {
	States    []dynamo.System
	Times     []float64
	Cycles    []int
	Final     dynamo.System
	CyclesRun int
	Metrics   map[string]float64

	// EnergyDrift is |E_final - E_0| / |E_0|, zero when the force model has
	// no energy or E_0 is zero.
	EnergyDrift float64
	// MomentumDrift is the magnitude of the change in total momentum.
	MomentumDrift float64
}
