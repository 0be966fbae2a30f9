package config

import (
	"math"
	"sort"

	"github.com/san-kum/gravsim/internal/physics"
)

// binarySpeed is the circular speed of each of two 1e12 kg bodies 40 m apart.
var binarySpeed = math.Sqrt(physics.G * 1e12 * 20 / (40 * 40))

var Presets = map[string]*Config{
	"solar": {
		Name:        "solar",
		Description: "heavy central body with two light planets",
		G:           physics.G, Law: "vector", Dt: 1, Steps: 500, RecordEvery: 1,
		Bodies: []BodyConfig{
			{Name: "central", Mass: 1e12, Position: [2]float64{400, 400}},
			{Name: "planet1", Mass: 1e4, Position: [2]float64{360, 400.1}, Velocity: [2]float64{0.0001, 1.5}},
			{Name: "planet2", Mass: 1e3, Position: [2]float64{400.1, 280}, Velocity: [2]float64{-0.5, 0.0001}},
		},
	},
	"line": {
		Name:        "line",
		Description: "masses 2, 1, 1 at rest on the x axis",
		G:           physics.G, Law: "vector", Dt: 1, Steps: 100, RecordEvery: 1,
		Bodies: []BodyConfig{
			{Name: "heavy", Mass: 2, Position: [2]float64{0, 0}},
			{Name: "middle", Mass: 1, Position: [2]float64{1, 0}},
			{Name: "outer", Mass: 1, Position: [2]float64{2, 0}},
		},
	},
	"unit-line": {
		Name:        "unit-line",
		Description: "three unit masses at x = 0, 1, 2",
		G:           physics.G, Law: "vector", Dt: 1, Steps: 100, RecordEvery: 1,
		Bodies: []BodyConfig{
			{Mass: 1, Position: [2]float64{0, 0}},
			{Mass: 1, Position: [2]float64{1, 0}},
			{Mass: 1, Position: [2]float64{2, 0}},
		},
	},
	"binary": {
		Name:        "binary",
		Description: "equal-mass circular binary",
		G:           physics.G, Law: "vector", Dt: 0.5, Steps: 2000, RecordEvery: 10,
		Bodies: []BodyConfig{
			{Name: "a", Mass: 1e12, Position: [2]float64{-20, 0}, Velocity: [2]float64{0, -binarySpeed}},
			{Name: "b", Mass: 1e12, Position: [2]float64{20, 0}, Velocity: [2]float64{0, binarySpeed}},
		},
	},
	"figure-eight": {
		Name:        "figure-eight",
		Description: "Chenciner-Montgomery three-body choreography in G = 1 units",
		G:           1, Law: "vector", Dt: 0.001, Steps: 6327, RecordEvery: 20,
		Bodies: []BodyConfig{
			{Mass: 1, Position: [2]float64{-0.97000436, 0.24308753}, Velocity: [2]float64{0.466203685, 0.43236573}},
			{Mass: 1, Position: [2]float64{0.97000436, -0.24308753}, Velocity: [2]float64{0.466203685, 0.43236573}},
			{Mass: 1, Position: [2]float64{0, 0}, Velocity: [2]float64{-0.93240737, -0.86473146}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
