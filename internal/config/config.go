package config

import (
	"fmt"
	"os"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 1.0
	DefaultSteps       = 1000
	DefaultRecordEvery = 1
	DefaultLaw         = "vector"
)

// Config is a scenario: initial bodies plus the parameters of one run.
type Config struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	G           float64 `yaml:"g"`
	Law         string  `yaml:"law"`
	Dt          float64 `yaml:"dt"`
	// Steps follows the steps-1 cycle convention of sim.Simulate.
	Steps int `yaml:"steps"`
	// Cycles, when positive, overrides Steps with an exact cycle count.
	Cycles      int          `yaml:"cycles,omitempty"`
	RecordEvery int          `yaml:"record_every"`
	Workers     int          `yaml:"workers,omitempty"`
	Bodies      []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	Name     string     `yaml:"name,omitempty"`
	Mass     float64    `yaml:"mass"`
	Position [2]float64 `yaml:"position,flow"`
	Velocity [2]float64 `yaml:"velocity,flow"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:        "custom",
		G:           physics.G,
		Law:         DefaultLaw,
		Dt:          DefaultDt,
		Steps:       DefaultSteps,
		RecordEvery: DefaultRecordEvery,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over DefaultConfig and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := physics.ParseLaw(c.Law); err != nil {
		return err
	}
	if c.Steps < 0 || c.Cycles < 0 {
		return fmt.Errorf("steps and cycles must not be negative: %w", dynamo.ErrInvalidConfig)
	}
	if c.RecordEvery < 0 {
		return fmt.Errorf("record_every must not be negative: %w", dynamo.ErrInvalidConfig)
	}
	return c.System().Validate()
}

// System builds the initial system in declaration order.
func (c *Config) System() dynamo.System {
	sys := make(dynamo.System, len(c.Bodies))
	for i, b := range c.Bodies {
		sys[i] = dynamo.NewBody(b.Mass,
			dynamo.Vec{X: b.Position[0], Y: b.Position[1]},
			dynamo.Vec{X: b.Velocity[0], Y: b.Velocity[1]},
		)
	}
	return sys
}

func (c *Config) Gravity() (*physics.Gravity, error) {
	law, err := physics.ParseLaw(c.Law)
	if err != nil {
		return nil, err
	}
	g := c.G
	if g == 0 {
		g = physics.G
	}
	return &physics.Gravity{G: g, Law: law}, nil
}

// RunCycles is the number of update cycles the scenario asks for.
func (c *Config) RunCycles() int {
	if c.Cycles > 0 {
		return c.Cycles
	}
	if c.Steps <= 1 {
		return 0
	}
	return c.Steps - 1
}

func (c *Config) BodyName(i int) string {
	if i < len(c.Bodies) && c.Bodies[i].Name != "" {
		return c.Bodies[i].Name
	}
	return fmt.Sprintf("body%d", i)
}

// BodyNames returns display names for every body.
func (c *Config) BodyNames() []string {
	names := make([]string, len(c.Bodies))
	for i := range c.Bodies {
		names[i] = c.BodyName(i)
	}
	return names
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Bodies = make([]BodyConfig, len(c.Bodies))
	copy(cp.Bodies, c.Bodies)
	return &cp
}
