package sim

import (
	"context"

	"github.com/san-kum/gravsim/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// Sweep runs one initial system under several configurations concurrently.
// Each run gets its own Simulator sharing the base force model and
// integrator, which must therefore be safe for concurrent use.
type Sweep struct {
	base *Simulator
	// Metrics, if set, builds a fresh metric set for every run.
	Metrics func() []dynamo.Metric
	// Limit caps the number of concurrent runs. Zero means no limit.
	Limit int
}

func NewSweep(s *Simulator) *Sweep {
	return &Sweep{base: s}
}

// Run returns results in cfgs order. The first error cancels the remaining
// runs.
func (w *Sweep) Run(ctx context.Context, sys dynamo.System, cfgs []Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	if w.Limit > 0 {
		g.SetLimit(w.Limit)
	}

	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			s := New(w.base.force, w.base.integrator)
			s.SetLogger(w.base.logger)
			if w.Metrics != nil {
				for _, m := range w.Metrics() {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(ctx, sys, cfg)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
