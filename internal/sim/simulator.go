package sim

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

type Simulator struct {
	force      dynamo.ForceModel
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
	logger     *log.Logger
}

// New builds a simulator. A nil force model or integrator selects vector-law
// gravity or symplectic Euler respectively.
func New(force dynamo.ForceModel, integrator dynamo.Integrator) *Simulator {
	if force == nil {
		force = physics.NewGravity()
	}
	if integrator == nil {
		integrator = integrators.NewSymplecticEuler()
	}
	return &Simulator{
		force:      force,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
		logger:     log.New(io.Discard),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l *log.Logger)       { s.logger = l }
func (s *Simulator) Force() dynamo.ForceModel      { return s.force }

// Simulate returns the state after steps-1 update cycles. steps <= 1 returns
// a copy of sys. Inputs are not validated.
func Simulate(sys dynamo.System, dt float64, steps int) dynamo.System {
	return New(nil, nil).Simulate(sys, dt, steps)
}

func (s *Simulator) Simulate(sys dynamo.System, dt float64, steps int) dynamo.System {
	return s.Advance(sys, dt, CyclesForSteps(steps))
}

// Advance runs exactly cycles update cycles.
func (s *Simulator) Advance(sys dynamo.System, dt float64, cycles int) dynamo.System {
	x := sys.Clone()
	for i := 0; i < cycles; i++ {
		x = s.integrator.Step(s.force, x, dt)
	}
	return x
}

// Step runs a single update cycle.
func (s *Simulator) Step(sys dynamo.System, dt float64) dynamo.System {
	return s.integrator.Step(s.force, sys, dt)
}

// Run advances sys by cfg.Cycles cycles, recording the trajectory, feeding
// metrics and observers, and checking ctx between cycles. On cancellation or
// an invalid state the partial result is returned with the error.
func (s *Simulator) Run(ctx context.Context, sys dynamo.System, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.ValidateSystem {
		if err := sys.Validate(); err != nil {
			return nil, err
		}
	}

	every := cfg.RecordEvery
	if every == 0 {
		every = 1
	}

	result := &Result{
		States:  make([]dynamo.System, 0, cfg.Cycles/every+2),
		Times:   make([]float64, 0, cfg.Cycles/every+2),
		Cycles:  make([]int, 0, cfg.Cycles/every+2),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.logger.Debug("run started", "bodies", len(sys), "dt", cfg.Dt, "cycles", cfg.Cycles)

	x := sys.Clone()
	s.observe(x, 0, 0)
	result.record(x, 0, 0)

	initialEnergy := s.computeEnergy(x)
	initialMomentum := x.Momentum()

	var runErr error
	for c := 1; c <= cfg.Cycles; c++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		next := s.integrator.Step(s.force, x, cfg.Dt)
		t := float64(c) * cfg.Dt

		if cfg.ValidateState && !next.IsValid() {
			runErr = &dynamo.SimulationError{Cycle: c, Time: t, State: next, Wrapped: dynamo.ErrInvalidState}
			break
		}

		x = next
		result.CyclesRun = c
		s.observe(x, c, t)

		if c%every == 0 || c == cfg.Cycles {
			result.record(x, c, t)
		}
	}

	result.Final = x
	if last := len(result.Cycles) - 1; result.Cycles[last] != result.CyclesRun {
		result.record(x, result.CyclesRun, float64(result.CyclesRun)*cfg.Dt)
	}

	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(s.computeEnergy(x)-initialEnergy) / math.Abs(initialEnergy)
	}
	result.MomentumDrift = r2.Norm(r2.Sub(x.Momentum(), initialMomentum))

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if runErr != nil {
		s.logger.Debug("run stopped", "cycle", result.CyclesRun, "err", runErr)
		return result, runErr
	}

	s.logger.Debug("run complete", "cycles", result.CyclesRun,
		"energy_drift", result.EnergyDrift, "momentum_drift", result.MomentumDrift)

	return result, nil
}

func (s *Simulator) observe(x dynamo.System, cycle int, t float64) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	// observers get their own copy; x may be kept in Result.States
	for _, obs := range s.observers {
		obs.OnStep(x.Clone(), cycle, t)
	}
}

func (r *Result) record(x dynamo.System, cycle int, t float64) {
	r.States = append(r.States, x)
	r.Times = append(r.Times, t)
	r.Cycles = append(r.Cycles, cycle)
}

func (s *Simulator) validateConfig(cfg Config) error {
	if math.IsNaN(cfg.Dt) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("dt must be finite, got %v: %w", cfg.Dt, dynamo.ErrInvalidConfig)
	}
	if cfg.Cycles < 0 {
		return fmt.Errorf("cycles must not be negative, got %d: %w", cfg.Cycles, dynamo.ErrInvalidConfig)
	}
	if cfg.RecordEvery < 0 {
		return fmt.Errorf("record interval must not be negative, got %d: %w", cfg.RecordEvery, dynamo.ErrInvalidConfig)
	}
	return nil
}

func (s *Simulator) computeEnergy(x dynamo.System) float64 {
	if h, ok := s.force.(dynamo.Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}
