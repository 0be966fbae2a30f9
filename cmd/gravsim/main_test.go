package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/spf13/cobra"
)

func newScenarioCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	logger = log.New(io.Discard)
	configFile, preset = "", "solar"

	cmd := &cobra.Command{Use: "test"}
	addScenarioFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestLoadScenario_PresetWithOverrides(t *testing.T) {
	cmd := newScenarioCmd(t, "--preset", "line", "--dt", "0.25", "--cycles", "7", "--law", "per_axis")

	cfg, err := loadScenario(cmd)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Name != "line" || cfg.Dt != 0.25 || cfg.RunCycles() != 7 || cfg.Law != "per_axis" {
		t.Errorf("unexpected scenario: %+v", cfg)
	}
	if config.Presets["line"].Dt == 0.25 {
		t.Error("flags modified the shared preset")
	}
}

func TestLoadScenario_ZeroCycles(t *testing.T) {
	cmd := newScenarioCmd(t, "--preset", "solar", "--cycles", "0")

	cfg, err := loadScenario(cmd)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got := cfg.RunCycles(); got != 0 {
		t.Errorf("--cycles 0 should run no cycles, got %d", got)
	}

	cmd = newScenarioCmd(t, "--cycles", "-3")
	if _, err := loadScenario(cmd); err == nil {
		t.Error("expected error for negative cycles")
	}
}

func TestLoadScenario_Defaults(t *testing.T) {
	cmd := newScenarioCmd(t)

	cfg, err := loadScenario(cmd)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := config.GetPreset("solar")
	if cfg.Dt != want.Dt || cfg.Steps != want.Steps {
		t.Errorf("unset flags should keep preset values, got dt=%g steps=%d", cfg.Dt, cfg.Steps)
	}
}

func TestLoadScenario_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	if err := config.Save(path, config.GetPreset("binary")); err != nil {
		t.Fatal(err)
	}

	cmd := newScenarioCmd(t, "--config", path, "--steps", "3")
	cfg, err := loadScenario(cmd)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Name != "binary" || cfg.RunCycles() != 2 {
		t.Errorf("unexpected scenario: %+v", cfg)
	}
}

func TestLoadScenario_Errors(t *testing.T) {
	if _, err := loadScenario(newScenarioCmd(t, "--preset", "nope")); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := loadScenario(newScenarioCmd(t, "--law", "mond")); err == nil {
		t.Error("expected error for unknown law")
	}
	if _, err := loadScenario(newScenarioCmd(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPrintExampleAcceleration(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	if err := printExampleAcceleration(nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.Close()

	out, _ := io.ReadAll(r)
	var ax, ay float64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(out)), "(%g, %g)", &ax, &ay); err != nil {
		t.Fatalf("unexpected output %q: %v", out, err)
	}
	if math.Abs(ax-1.25*physics.G) > 1e-24 || ay != 0 {
		t.Errorf("expected (%g, 0), got (%g, %g)", 1.25*physics.G, ax, ay)
	}
}
