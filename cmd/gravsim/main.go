package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/san-kum/gravsim/internal/analysis"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/experiment"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/report"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	configFile  string
	preset      string
	dt          float64
	steps       int
	cycles      int
	law         string
	workers     int
	recordEvery int
	format      string
	// plot / analyze
	quantity     string
	bodyIndex    int
	perturbation float64
	// compare
	dts   []float64
	limit int
	// init
	outFile string

	logger *log.Logger
)

// main registers the gravsim commands. With no subcommand it prints the
// acceleration of the heaviest body of the line example.
func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "newtonian point-mass gravity simulator",
		Args:  cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(verbose)
		},
		RunE: printExampleAcceleration,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario and print the final state",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&format, "format", "table", "output format (table|csv|json)")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot a quantity over time",
		Args:  cobra.NoArgs,
		RunE:  plotRun,
	}
	addScenarioFlags(plotCmd)
	plotCmd.Flags().StringVar(&quantity, "quantity", "energy", "quantity ("+strings.Join(report.Quantities, "|")+")")
	plotCmd.Flags().IntVar(&bodyIndex, "body", 1, "body index for per-body quantities")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare drift across time steps",
		Args:  cobra.NoArgs,
		RunE:  compareTimeSteps,
	}
	addScenarioFlags(compareCmd)
	compareCmd.Flags().Float64SliceVar(&dts, "dts", nil, "time steps to compare (default dt, dt/2, dt/4)")
	compareCmd.Flags().IntVar(&limit, "parallel", 0, "maximum concurrent runs (0 = unlimited)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "estimate orbital period and lyapunov exponent",
		Args:  cobra.NoArgs,
		RunE:  analyzeRun,
	}
	addScenarioFlags(analyzeCmd)
	analyzeCmd.Flags().IntVar(&bodyIndex, "body", 1, "body whose orbital radius is analysed")
	analyzeCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial separation for the lyapunov estimate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-14s %s\n", report.Title.Render(name), report.Subtle.Render(p.Description))
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [preset]",
		Short: "write a scenario file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeScenario,
	}
	initCmd.Flags().StringVarP(&outFile, "output", "o", "scenario.yaml", "output path")

	rootCmd.AddCommand(runCmd, plotCmd, compareCmd, analyzeCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(debug bool) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{Prefix: "gravsim"})
	if debug {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.WarnLevel)
	}
	return l
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "solar", "built-in scenario")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "step count (runs steps-1 cycles)")
	cmd.Flags().IntVar(&cycles, "cycles", 0, "exact update cycles, overrides --steps")
	cmd.Flags().StringVar(&law, "law", config.DefaultLaw, "force law ("+strings.Join(physics.ListLaws(), "|")+")")
	cmd.Flags().IntVar(&workers, "workers", 1, "goroutines per update cycle")
	cmd.Flags().IntVar(&recordEvery, "record-every", config.DefaultRecordEvery, "keep every n-th state")
}

// loadScenario resolves the config file or preset, then applies flags the
// user set explicitly.
func loadScenario(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
		cfg.Cycles = 0
	}
	if flags.Changed("cycles") {
		// steps-1 == cycles keeps --cycles 0 from falling back to Steps
		cfg.Cycles = cycles
		cfg.Steps = cycles + 1
	}
	if flags.Changed("law") {
		cfg.Law = law
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("record-every") {
		cfg.RecordEvery = recordEvery
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("scenario loaded", "name", cfg.Name, "dt", cfg.Dt, "cycles", cfg.RunCycles(), "law", cfg.Law)
	return cfg, nil
}

func printExampleAcceleration(cmd *cobra.Command, args []string) error {
	cfg := config.GetPreset("line")
	grav, err := cfg.Gravity()
	if err != nil {
		return err
	}
	a := grav.Acceleration(cfg.System(), 0)
	fmt.Printf("(%g, %g)\n", a.X, a.Y)
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return err
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	meta := exp.Meta(result.CyclesRun)
	switch format {
	case "csv":
		return export.WriteCSV(os.Stdout, meta, result)
	case "json":
		return export.WriteJSON(os.Stdout, meta, result)
	case "table":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	fmt.Println(report.Title.Render(fmt.Sprintf("%s: %d cycles, dt=%g, law=%s", cfg.Name, result.CyclesRun, cfg.Dt, meta.Law)))
	fmt.Println(report.StateTable(cfg.BodyNames(), result.Final))
	summary := report.Metrics(result.Metrics) + report.Metrics(map[string]float64{
		"final_energy_drift":   result.EnergyDrift,
		"final_momentum_drift": result.MomentumDrift,
	})
	fmt.Println(report.Panel.Render(strings.TrimRight(summary, "\n")))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return err
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	data, err := report.Series(result, quantity, bodyIndex, exp.Gravity())
	if err != nil {
		return err
	}

	caption := quantity
	if quantity != "energy" && quantity != "momentum" {
		caption = fmt.Sprintf("%s (%s)", quantity, cfg.BodyName(bodyIndex))
	}

	fmt.Printf("scenario: %s\n", cfg.Name)
	fmt.Printf("samples: %d\n\n", len(data))
	fmt.Println(report.Plot(data, caption, 80, 12))
	return nil
}

func compareTimeSteps(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return err
	}

	sweep := dts
	if len(sweep) == 0 {
		sweep = []float64{cfg.Dt, cfg.Dt / 2, cfg.Dt / 4}
	}

	results, err := exp.Compare(context.Background(), sweep, limit)
	if err != nil {
		return err
	}

	rows := make([]report.DriftRow, len(results))
	for i, res := range results {
		rows[i] = report.DriftRow{
			Label:         fmt.Sprintf("dt=%g", sweep[i]),
			Cycles:        res.CyclesRun,
			EnergyDrift:   res.Metrics["energy_drift"],
			MomentumDrift: res.Metrics["momentum_drift"],
		}
	}

	fmt.Println(report.Title.Render(fmt.Sprintf("%s: drift by time step (law=%s)", cfg.Name, exp.Gravity().Law)))
	fmt.Println(report.DriftTable(rows))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	cfg.RecordEvery = 1

	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return err
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	radius, err := report.Series(result, "radius", bodyIndex, exp.Gravity())
	if err != nil {
		return err
	}

	fmt.Println(report.Title.Render(fmt.Sprintf("analysis: %s (%s)", cfg.Name, cfg.BodyName(bodyIndex))))

	period, err := analysis.DominantPeriod(radius, cfg.Dt)
	if err != nil {
		logger.Warn("period estimate failed", "err", err)
	} else {
		fmt.Print(report.Metrics(map[string]float64{"radial_period": period}))
	}

	lambda := analysis.LyapunovExponent(exp.Simulator(), cfg.System(), cfg.Dt, cfg.RunCycles(), perturbation, 10)
	fmt.Print(report.Metrics(map[string]float64{"lyapunov_exponent": lambda}))
	return nil
}

func writeScenario(cmd *cobra.Command, args []string) error {
	name := "solar"
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}

	if err := config.Save(outFile, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}
