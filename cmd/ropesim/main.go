package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/ropesim/internal/analysis"
	"github.com/san-kum/ropesim/internal/config"
	"github.com/san-kum/ropesim/internal/export"
	"github.com/san-kum/ropesim/internal/grapple"
	"github.com/san-kum/ropesim/internal/metrics"
	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/sim"
	"github.com/san-kum/ropesim/internal/storage"
	"github.com/san-kum/ropesim/internal/tui"
	"github.com/san-kum/ropesim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	samples    int
	strength   float64
	damper     float64
	impulse    float64
	waveCount  float64
	waveHeight float64
	falloff    string
	configFile string
	preset     string
	svgOut     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ropesim",
		Short: "grappling-rope spring simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view of the default scenario.
			return runLive(cmd, []string{config.DefaultConfig().Scenario})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ropesim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a rope simulation and store the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addRopeFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the spring trace of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the spring trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the stored rope path as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "rope.svg", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "watch the rope live in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRopeFlags(liveCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportCmd, exportSVGCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRopeFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().IntVar(&samples, "samples", 16, "rope segments")
	cmd.Flags().Float64Var(&strength, "strength", 800, "spring strength")
	cmd.Flags().Float64Var(&damper, "damper", 14, "spring damper")
	cmd.Flags().Float64Var(&impulse, "impulse", 15, "attach impulse")
	cmd.Flags().Float64Var(&waveCount, "waves", 3, "wave count")
	cmd.Flags().Float64Var(&waveHeight, "height", 1, "wave height")
	cmd.Flags().StringVar(&falloff, "falloff", "linear", "falloff curve")
}

// buildConfig layers preset, config file and flags: flags win over the file,
// the file wins over the preset.
func buildConfig(cmd *cobra.Command, scenario string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Scenario = scenario

	if preset != "" {
		p := config.GetPreset(scenario, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenario))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.Scenario = scenario
		*cfg = *loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("samples") {
		cfg.Rope.Samples = samples
	}
	if cmd.Flags().Changed("strength") {
		cfg.Rope.Strength = strength
	}
	if cmd.Flags().Changed("damper") {
		cfg.Rope.Damper = damper
	}
	if cmd.Flags().Changed("impulse") {
		cfg.Rope.Impulse = impulse
	}
	if cmd.Flags().Changed("waves") {
		cfg.Rope.WaveCount = waveCount
	}
	if cmd.Flags().Changed("height") {
		cfg.Rope.WaveHeight = waveHeight
	}
	if cmd.Flags().Changed("falloff") {
		cfg.Rope.Falloff = falloff
	}

	return cfg, nil
}

func setup(cfg *config.Config) (grapple.Scenario, *rope.Sampler, error) {
	scenario, err := cfg.BuildScenario()
	if err != nil {
		return nil, nil, err
	}
	ropeCfg, err := cfg.RopeConfig()
	if err != nil {
		return nil, nil, err
	}
	return scenario, rope.NewSampler(scenario, ropeCfg), nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	scenario, sampler, err := setup(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(scenario, sampler)
	for _, m := range metrics.Default() {
		runner.AddMetric(m)
	}

	fmt.Printf("running %s scenario...\n", cfg.Scenario)
	start := time.Now()

	result, err := runner.Run(context.Background(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		return err
	}

	runID, err := st.Save(cfg.Scenario, cfg.Dt, cfg.Duration, cfg.Rope.Samples, cfg.Rope.Strength, cfg.Rope.Damper, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.Frames))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tSAMPLES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Samples,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("frames: %d\n\n", len(frames))

	springs := make([]float64, len(frames))
	deflections := make([]float64, len(frames))
	for i, f := range frames {
		springs[i] = f.Spring
		deflections[i] = f.Deflection
	}

	fmt.Println(viz.PlotTrace(springs, "spring value"))
	fmt.Println()
	fmt.Println(viz.PlotTrace(deflections, "rope deflection"))

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) < 4 {
		return fmt.Errorf("trace too short to analyze")
	}

	trace := make([]float64, len(frames))
	for i, f := range frames {
		trace[i] = f.Spring
	}

	freq := analysis.DominantFrequency(trace, meta.Dt)
	spectrum := analysis.PowerSpectrum(trace)

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("dominant frequency: %.3f Hz\n\n", freq)
	fmt.Println(viz.PlotTrace(spectrum, "power spectrum"))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	points, err := st.LoadPath(args[0])
	if err != nil {
		return err
	}
	if len(points) < 2 {
		return fmt.Errorf("run has no stored rope path")
	}

	svg := export.PathToSVG(points, 800, 600, "#00ff88")
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d points)\n", svgOut, len(points))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	scenario, err := cfg.BuildScenario()
	if err != nil {
		return err
	}
	ropeCfg, err := cfg.RopeConfig()
	if err != nil {
		return err
	}

	return tui.Run(cfg.Scenario, scenario, ropeCfg)
}
