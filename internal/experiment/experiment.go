// Package experiment wires a scenario to a simulator.
package experiment

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

// boundRadiusFactor scales the initial system extent into the radius used
// by the boundedness metric.
const boundRadiusFactor = 10

type Experiment struct {
	cfg       *config.Config
	gravity   *physics.Gravity
	simulator *sim.Simulator
	logger    *log.Logger
}

// New validates cfg and builds the gravity model, integrator and simulator.
// A nil logger discards output.
func New(cfg *config.Config, logger *log.Logger) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	grav, err := cfg.Gravity()
	if err != nil {
		return nil, err
	}

	integ := integrators.NewSymplecticEuler()
	if cfg.Workers > 1 {
		integ.Workers = cfg.Workers
	}

	s := sim.New(grav, integ)
	s.SetLogger(logger)

	e := &Experiment{cfg: cfg, gravity: grav, simulator: s, logger: logger}
	for _, m := range e.metrics() {
		s.AddMetric(m)
	}
	return e, nil
}

func (e *Experiment) metrics() []dynamo.Metric {
	return metrics.Default(e.gravity, boundRadiusFactor*extent(e.cfg.System()))
}

func (e *Experiment) Config() *config.Config     { return e.cfg }
func (e *Experiment) Gravity() *physics.Gravity  { return e.gravity }
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }

func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Dt:             e.cfg.Dt,
		Cycles:         e.cfg.RunCycles(),
		RecordEvery:    e.cfg.RecordEvery,
		ValidateSystem: true,
		ValidateState:  true,
	}
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	e.logger.Info("running scenario", "name", e.cfg.Name, "bodies", len(e.cfg.Bodies), "law", e.gravity.Law, "cycles", e.cfg.RunCycles())
	return e.simulator.Run(ctx, e.cfg.System(), e.SimConfig())
}

func (e *Experiment) Meta(cycles int) export.Meta {
	return export.Meta{
		Scenario: e.cfg.Name,
		Law:      e.gravity.Law.String(),
		G:        e.gravity.G,
		Dt:       e.cfg.Dt,
		Cycles:   cycles,
		Bodies:   e.cfg.BodyNames(),
	}
}

// Compare runs the scenario once per dt, keeping the simulated duration of
// the configured run, and returns results in dts order. Every dt must be
// positive and finite.
func (e *Experiment) Compare(ctx context.Context, dts []float64, limit int) ([]*sim.Result, error) {
	duration := e.cfg.Dt * float64(e.cfg.RunCycles())

	cfgs := make([]sim.Config, len(dts))
	for i, dt := range dts {
		if !(dt > 0) || math.IsInf(dt, 0) {
			return nil, fmt.Errorf("compare needs positive dt, got %v: %w", dt, dynamo.ErrInvalidConfig)
		}
		cfg := e.SimConfig()
		cfg.Dt = dt
		cfg.Cycles = int(math.Round(math.Abs(duration) / dt))
		cfg.RecordEvery = 0
		cfgs[i] = cfg
	}

	sweep := sim.NewSweep(e.simulator)
	sweep.Limit = limit
	sweep.Metrics = e.metrics

	e.logger.Info("comparing time steps", "name", e.cfg.Name, "runs", len(dts), "duration", duration)
	return sweep.Run(ctx, e.cfg.System(), cfgs)
}

// extent is the largest distance of a body from the center of mass, at
// least 1.
func extent(sys dynamo.System) float64 {
	com := dynamo.NewBody(1, sys.CenterOfMass(), dynamo.Vec{})
	r := 1.0
	for _, b := range sys {
		r = math.Max(r, physics.Distance(b, com))
	}
	return r
}
