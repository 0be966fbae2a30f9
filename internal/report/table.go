package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/san-kum/gravsim/internal/dynamo"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444466"))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderCell
			}
			return Cell
		})
}

// StateTable lists mass, position and velocity of every body.
func StateTable(names []string, sys dynamo.System) string {
	t := newTable("BODY", "MASS", "X", "Y", "VX", "VY")
	for i, b := range sys {
		name := fmt.Sprintf("body%d", i)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		t.Row(name, num(b.Mass),
			num(b.Position.X), num(b.Position.Y),
			num(b.Velocity.X), num(b.Velocity.Y))
	}
	return t.String()
}

// Metrics renders name/value pairs sorted by name.
func Metrics(values map[string]float64) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "  %s %s\n", MetricLabel.Render(name+":"), MetricValue.Render(num(values[name])))
	}
	return b.String()
}

type DriftRow struct {
	Label         string
	Cycles        int
	EnergyDrift   float64
	MomentumDrift float64
}

func DriftTable(rows []DriftRow) string {
	t := newTable("RUN", "CYCLES", "MAX_ENERGY_DRIFT", "MAX_MOMENTUM_DRIFT")
	for _, r := range rows {
		t.Row(r.Label, fmt.Sprintf("%d", r.Cycles), fmt.Sprintf("%.3e", r.EnergyDrift), fmt.Sprintf("%.3e", r.MomentumDrift))
	}
	return t.String()
}

func num(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
