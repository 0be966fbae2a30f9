package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

func threeBody() dynamo.System {
	return dynamo.NewSystem(
		dynamo.NewBody(1e12, dynamo.Vec{X: 400, Y: 400}, dynamo.Vec{}),
		dynamo.NewBody(1e4, dynamo.Vec{X: 360, Y: 400.1}, dynamo.Vec{X: 0.0001, Y: 1.5}),
		dynamo.NewBody(1e3, dynamo.Vec{X: 400.1, Y: 280}, dynamo.Vec{X: -0.5, Y: 0.0001}),
	)
}

type countingMetric struct {
	count int
}

func (c *countingMetric) Name() string                        { return "count" }
func (c *countingMetric) Observe(sys dynamo.System, t float64) { c.count++ }
func (c *countingMetric) Value() float64                      { return float64(c.count) }
func (c *countingMetric) Reset()                              { c.count = 0 }

type recordingObserver struct {
	cycles []int
}

func (r *recordingObserver) OnStep(sys dynamo.System, cycle int, t float64) {
	r.cycles = append(r.cycles, cycle)
}

// scribblingObserver overwrites every state it is handed.
type scribblingObserver struct{}

func (scribblingObserver) OnStep(sys dynamo.System, cycle int, t float64) {
	for i := range sys {
		sys[i] = dynamo.NewBody(-1, dynamo.Vec{X: 1e9}, dynamo.Vec{})
	}
}

type nanForce struct{}

func (nanForce) Acceleration(sys dynamo.System, i int) dynamo.Vec {
	return dynamo.Vec{X: math.NaN()}
}

var _ = Describe("Simulate", func() {
	It("returns the input unchanged for steps <= 1", func() {
		sys := threeBody()
		for _, steps := range []int{1, 0, -5} {
			out := sim.Simulate(sys, 0.5, steps)
			Expect(out.Equal(sys)).To(BeTrue())
		}
	})

	It("returns a copy, not the input slice", func() {
		sys := threeBody()
		out := sim.Simulate(sys, 0.5, 1)
		out[0] = out[0].WithPosition(dynamo.Vec{})
		Expect(sys[0].Position).To(Equal(dynamo.Vec{X: 400, Y: 400}))
	})

	It("runs steps-1 update cycles", func() {
		sys := threeBody()
		s := sim.New(nil, nil)
		Expect(sim.Simulate(sys, 0.5, 2).Equal(s.Step(sys, 0.5))).To(BeTrue())
		Expect(sim.Simulate(sys, 0.5, 7).Equal(s.Advance(sys, 0.5, 6))).To(BeTrue())
	})

	It("composes one step at a time", func() {
		sys := threeBody()
		s := sim.New(nil, nil)
		for _, n := range []int{1, 2, 10} {
			next := s.Step(sim.Simulate(sys, 0.25, n), 0.25)
			Expect(next.Equal(sim.Simulate(sys, 0.25, n+1))).To(BeTrue())
		}
	})

	It("is deterministic", func() {
		a := sim.Simulate(threeBody(), 0.1, 200)
		b := sim.Simulate(threeBody(), 0.1, 200)
		Expect(a.Equal(b)).To(BeTrue())
	})

	It("never mutates the input", func() {
		sys := threeBody()
		before := sys.Clone()
		sim.Simulate(sys, 1, 50)
		Expect(sys.Equal(before)).To(BeTrue())
	})

	It("keeps mass and body count", func() {
		sys := threeBody()
		out := sim.Simulate(sys, 1, 20)
		Expect(out).To(HaveLen(3))
		for i := range sys {
			Expect(out[i].Mass).To(Equal(sys[i].Mass))
		}
	})

	It("accepts negative dt", func() {
		sys := dynamo.NewSystem(dynamo.NewBody(1, dynamo.Vec{}, dynamo.Vec{X: 1}))
		out := sim.Simulate(sys, -2, 3)
		Expect(out[0].Position.X).To(Equal(-4.0))
	})

	It("conserves momentum of an isolated pair", func() {
		grav := physics.NewGravity()
		v := grav.CircularSpeed(1.01e12, 40)
		sys := dynamo.NewSystem(
			dynamo.NewBody(1e12, dynamo.Vec{}, dynamo.Vec{Y: -v * 1e-2}),
			dynamo.NewBody(1e10, dynamo.Vec{X: 40}, dynamo.Vec{Y: v}),
		)
		p0 := sys.Momentum()
		scale := 1e10 * v

		out := sim.Simulate(sys, 0.5, 5000)
		p := out.Momentum()

		Expect(p.X).To(BeNumerically("~", p0.X, scale*1e-9))
		Expect(p.Y).To(BeNumerically("~", p0.Y, scale*1e-9))
	})
})

var _ = Describe("Simulator.Run", func() {
	var (
		s   *sim.Simulator
		ctx context.Context
	)

	BeforeEach(func() {
		s = sim.New(physics.NewGravity(), integrators.NewSymplecticEuler())
		ctx = context.Background()
	})

	It("records the initial state and every cycle", func() {
		res, err := s.Run(ctx, threeBody(), sim.Config{Dt: 0.5, Cycles: 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.States).To(HaveLen(11))
		Expect(res.Times).To(HaveLen(11))
		Expect(res.CyclesRun).To(Equal(10))
		Expect(res.Times[10]).To(Equal(5.0))
		Expect(res.Final.Equal(s.Advance(threeBody(), 0.5, 10))).To(BeTrue())
		Expect(res.States[0].Equal(threeBody())).To(BeTrue())
	})

	It("thins the trajectory but keeps the final state", func() {
		res, err := s.Run(ctx, threeBody(), sim.Config{Dt: 1, Cycles: 10, RecordEvery: 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Cycles).To(Equal([]int{0, 4, 8, 10}))
		Expect(res.States[3].Equal(res.Final)).To(BeTrue())
	})

	It("returns only the initial state for zero cycles", func() {
		res, err := s.Run(ctx, threeBody(), sim.Config{Dt: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.States).To(HaveLen(1))
		Expect(res.Final.Equal(threeBody())).To(BeTrue())
		Expect(res.EnergyDrift).To(BeZero())
		Expect(res.MomentumDrift).To(BeZero())
	})

	It("drives metrics and observers", func() {
		m := &countingMetric{count: 99}
		obs := &recordingObserver{}
		s.AddMetric(m)
		s.AddObserver(obs)

		res, err := s.Run(ctx, threeBody(), sim.Config{Dt: 1, Cycles: 3, RecordEvery: 2})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics).To(HaveKeyWithValue("count", 4.0))
		Expect(obs.cycles).To(Equal([]int{0, 1, 2, 3}))
	})

	It("isolates the recorded trajectory from observers", func() {
		s.AddObserver(scribblingObserver{})

		res, err := s.Run(ctx, threeBody(), sim.Config{Dt: 1, Cycles: 3})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.States[0].Equal(threeBody())).To(BeTrue())
		Expect(res.Final.Equal(s.Advance(threeBody(), 1, 3))).To(BeTrue())
	})

	It("rejects invalid systems when asked to", func() {
		_, err := s.Run(ctx, dynamo.System{}, sim.Config{Dt: 1, Cycles: 1, ValidateSystem: true})
		Expect(err).To(MatchError(dynamo.ErrEmptySystem))

		bad := dynamo.NewSystem(dynamo.NewBody(0, dynamo.Vec{}, dynamo.Vec{}))
		_, err = s.Run(ctx, bad, sim.Config{Dt: 1, Cycles: 1, ValidateSystem: true})
		Expect(errors.Is(err, dynamo.ErrInvalidMass)).To(BeTrue())
	})

	DescribeTable("rejects invalid configs",
		func(cfg sim.Config) {
			_, err := s.Run(ctx, threeBody(), cfg)
			Expect(errors.Is(err, dynamo.ErrInvalidConfig)).To(BeTrue())
		},
		Entry("NaN dt", sim.Config{Dt: math.NaN(), Cycles: 1}),
		Entry("Inf dt", sim.Config{Dt: math.Inf(1), Cycles: 1}),
		Entry("negative cycles", sim.Config{Dt: 1, Cycles: -1}),
		Entry("negative record interval", sim.Config{Dt: 1, Cycles: 1, RecordEvery: -1}),
	)

	It("stops on a non-finite state", func() {
		s = sim.New(nanForce{}, nil)
		res, err := s.Run(ctx, threeBody(), sim.Config{Dt: 1, Cycles: 5, ValidateState: true})

		var simErr *dynamo.SimulationError
		Expect(errors.As(err, &simErr)).To(BeTrue())
		Expect(simErr.Cycle).To(Equal(1))
		Expect(errors.Is(err, dynamo.ErrInvalidState)).To(BeTrue())
		Expect(res.CyclesRun).To(Equal(0))
		Expect(res.Final.Equal(threeBody())).To(BeTrue())
	})

	It("returns the partial result when cancelled", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		res, err := s.Run(cctx, threeBody(), sim.Config{Dt: 1, Cycles: 100})
		Expect(err).To(MatchError(context.Canceled))
		Expect(res.CyclesRun).To(BeZero())
		Expect(res.States).To(HaveLen(1))
	})

	It("reports small drift for a bound orbit", func() {
		grav := physics.NewGravity()
		v := grav.CircularSpeed(1e12, 40)
		sys := dynamo.NewSystem(
			dynamo.NewBody(1e12, dynamo.Vec{}, dynamo.Vec{}),
			dynamo.NewBody(1, dynamo.Vec{X: 40}, dynamo.Vec{Y: v}),
		)

		res, err := s.Run(ctx, sys, sim.Config{Dt: 0.1, Cycles: 5000})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.EnergyDrift).To(BeNumerically("<", 0.01))
		Expect(res.MomentumDrift).To(BeNumerically("<", 1e-9))
	})
})

var _ = Describe("Sweep", func() {
	It("runs every config and preserves order", func() {
		sweep := sim.NewSweep(sim.New(nil, nil))
		sweep.Limit = 2
		sweep.Metrics = func() []dynamo.Metric { return []dynamo.Metric{&countingMetric{}} }

		cfgs := []sim.Config{
			{Dt: 0.1, Cycles: 5},
			{Dt: 0.2, Cycles: 10},
			{Dt: 0.4, Cycles: 20},
		}
		results, err := sweep.Run(context.Background(), threeBody(), cfgs)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))

		for i, res := range results {
			Expect(res.CyclesRun).To(Equal(cfgs[i].Cycles))
			Expect(res.Metrics["count"]).To(Equal(float64(cfgs[i].Cycles + 1)))
			Expect(res.Final.Equal(sim.New(nil, nil).Advance(threeBody(), cfgs[i].Dt, cfgs[i].Cycles))).To(BeTrue())
		}
	})

	It("fails when any run fails", func() {
		sweep := sim.NewSweep(sim.New(nil, nil))
		_, err := sweep.Run(context.Background(), threeBody(), []sim.Config{
			{Dt: 1, Cycles: 1},
			{Dt: 1, Cycles: -1},
		})
		Expect(errors.Is(err, dynamo.ErrInvalidConfig)).To(BeTrue())
	})
})
