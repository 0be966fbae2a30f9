// Package export writes simulation trajectories as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/gravsim/internal/sim"
)

// Meta describes the run a trajectory came from.
type Meta struct {
	Scenario string   `json:"scenario"`
	Law      string   `json:"law"`
	G        float64  `json:"g"`
	Dt       float64  `json:"dt"`
	Cycles   int      `json:"cycles"`
	Bodies   []string `json:"bodies"`
}

type BodyState struct {
	Mass     float64    `json:"mass"`
	Position [2]float64 `json:"position"`
	Velocity [2]float64 `json:"velocity"`
}

type Frame struct {
	Cycle  int         `json:"cycle"`
	Time   float64     `json:"time"`
	Bodies []BodyState `json:"bodies"`
}

type Data struct {
	Meta
	Frames        []Frame            `json:"frames"`
	Metrics       map[string]float64 `json:"metrics"`
	EnergyDrift   float64            `json:"energy_drift"`
	MomentumDrift float64            `json:"momentum_drift"`
}

func Build(meta Meta, result *sim.Result) Data {
	data := Data{
		Meta:          meta,
		Frames:        make([]Frame, len(result.States)),
		Metrics:       result.Metrics,
		EnergyDrift:   result.EnergyDrift,
		MomentumDrift: result.MomentumDrift,
	}

	for i, sys := range result.States {
		f := Frame{Cycle: result.Cycles[i], Time: result.Times[i], Bodies: make([]BodyState, len(sys))}
		for j, b := range sys {
			f.Bodies[j] = BodyState{
				Mass:     b.Mass,
				Position: [2]float64{b.Position.X, b.Position.Y},
				Velocity: [2]float64{b.Velocity.X, b.Velocity.Y},
			}
		}
		data.Frames[i] = f
	}

	return data
}

func WriteJSON(w io.Writer, meta Meta, result *sim.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Build(meta, result))
}

// WriteCSV writes one row per recorded state: cycle, time, then x, y, vx,
// vy for every body.
func WriteCSV(w io.Writer, meta Meta, result *sim.Result) error {
	cw := csv.NewWriter(w)

	if len(result.States) == 0 {
		cw.Flush()
		return cw.Error()
	}

	n := len(result.States[0])
	header := []string{"cycle", "time"}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("body%d", i)
		if i < len(meta.Bodies) && meta.Bodies[i] != "" {
			name = meta.Bodies[i]
		}
		header = append(header, name+"_x", name+"_y", name+"_vx", name+"_vy")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, sys := range result.States {
		row := []string{strconv.Itoa(result.Cycles[i]), formatFloat(result.Times[i])}
		for _, b := range sys {
			row = append(row,
				formatFloat(b.Position.X), formatFloat(b.Position.Y),
				formatFloat(b.Velocity.X), formatFloat(b.Velocity.Y),
			)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
