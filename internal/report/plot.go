package report

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

var Quantities = []string{"energy", "momentum", "x", "y", "speed", "radius"}

// Series extracts one scalar per recorded state. body selects the body for
// per-body quantities; energy needs a Hamiltonian force model.
func Series(result *sim.Result, quantity string, body int, model dynamo.ForceModel) ([]float64, error) {
	if len(result.States) == 0 {
		return nil, fmt.Errorf("no data to plot")
	}
	if body < 0 || body >= len(result.States[0]) {
		return nil, fmt.Errorf("body %d out of range [0, %d)", body, len(result.States[0]))
	}

	var h dynamo.Hamiltonian
	if quantity == "energy" {
		var ok bool
		if h, ok = model.(dynamo.Hamiltonian); !ok {
			return nil, fmt.Errorf("force model has no energy")
		}
	}

	data := make([]float64, len(result.States))
	for i, sys := range result.States {
		b := sys[body]
		switch quantity {
		case "energy":
			data[i] = h.Energy(sys)
		case "momentum":
			data[i] = r2.Norm(sys.Momentum())
		case "x":
			data[i] = b.Position.X
		case "y":
			data[i] = b.Position.Y
		case "speed":
			data[i] = r2.Norm(b.Velocity)
		case "radius":
			data[i] = r2.Norm(r2.Sub(b.Position, sys.CenterOfMass()))
		default:
			return nil, fmt.Errorf("unknown quantity %q (available: %v)", quantity, Quantities)
		}
	}
	return data, nil
}

// Plot draws data as an ASCII line chart.
func Plot(data []float64, caption string, width, height int) string {
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Subtle.Render(caption + ": series contains non-finite values")
		}
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
