package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/salcedoinaki/fcsim/internal/analysis"
	"github.com/salcedoinaki/fcsim/internal/config"
	"github.com/salcedoinaki/fcsim/internal/export"
	"github.com/salcedoinaki/fcsim/internal/httpapi"
	"github.com/salcedoinaki/fcsim/internal/logger"
	"github.com/salcedoinaki/fcsim/internal/metrics"
	"github.com/salcedoinaki/fcsim/internal/optim"
	"github.com/salcedoinaki/fcsim/internal/sensors"
	"github.com/salcedoinaki/fcsim/internal/sim"
	"github.com/salcedoinaki/fcsim/internal/storage"
	"github.com/salcedoinaki/fcsim/internal/telemetry"
	"github.com/salcedoinaki/fcsim/internal/tui"
	"github.com/salcedoinaki/fcsim/internal/viz"
)

var (
	dataDir     string
	dt          float64
	steps       int
	load        float64
	disturbance float64
	soc         float64
	temp        float64
	configFile  string
	preset      string
	quiet       bool
	// serve
	addr     string
	interval time.Duration
	// plot
	series  string
	xCol    string
	yCol    string
	outFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fcsim",
		Short: "fuel cell hybrid power system simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fcsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the result",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "suppress per-step logging")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with a live terminal dashboard",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "step the plant in real time and serve it over http",
		RunE:  runServe,
	}
	addRunFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().DurationVar(&interval, "interval", 500*time.Millisecond, "wall-clock time per step")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "temperature", "column to plot")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "scatter one stored column against another",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&xCol, "x", "current", "column for the x axis")
	phaseCmd.Flags().StringVar(&yCol, "y", "voltage", "column for the y axis")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&series, "series", "voltage", "column to analyze")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search air supply gains against the oxygen target",
		RunE:  tuneGains,
	}
	addRunFlags(tuneCmd)

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a stored run series as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&series, "series", "temperature", "column to export")
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output file (stdout when empty)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, serveCmd, listCmd, plotCmd, phaseCmd, analyzeCmd, exportCmd, exportSVGCmd, tuneCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep [s]")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Float64Var(&load, "load", config.DefaultLoad, "base load current [A]")
	cmd.Flags().Float64Var(&disturbance, "disturbance", 0.0, "oxygen disturbance amplitude")
	cmd.Flags().Float64Var(&soc, "soc", 100.0, "initial battery state of charge [%]")
	cmd.Flags().Float64Var(&temp, "temp", 25.0, "initial stack temperature [degC]")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file and flags in increasing
// precedence: flags win where explicitly set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("load") {
		cfg.Load = load
	}
	if cmd.Flags().Changed("disturbance") {
		cfg.Disturbance = disturbance
	}
	if cmd.Flags().Changed("soc") {
		cfg.InitState.SoC = soc
	}
	if cmd.Flags().Changed("temp") {
		cfg.InitState.Temperature = temp
	}
	return cfg, nil
}

func buildEngine(cfg *config.Config) (*sim.Engine, error) {
	engine, err := sim.New(cfg.EngineConfig())
	if err != nil {
		return nil, err
	}
	engine.AttachActuator(sensors.NewSimulatedActuator())
	return engine, nil
}

// attachTelemetry wires the sinks enabled in the config onto the engine and
// returns a cleanup func.
func attachTelemetry(engine *sim.Engine, cfg *config.Config, withLog bool) func() {
	log := logger.New("telemetry")
	sinks := make([]telemetry.Sink, 0, 3)

	if withLog {
		sinks = append(sinks, telemetry.NewLogSink(logger.New("sim")))
	}
	if cfg.Telemetry.Influx.URL != "" {
		sinks = append(sinks, telemetry.NewInfluxSinkWithFallback(telemetry.InfluxConfig{
			URL:    cfg.Telemetry.Influx.URL,
			Token:  cfg.Telemetry.Influx.Token,
			Org:    cfg.Telemetry.Influx.Org,
			Bucket: cfg.Telemetry.Influx.Bucket,
		}, log))
	}

	var mqttSink *telemetry.MQTTSink
	if cfg.Telemetry.MQTT.Broker != "" {
		s, err := telemetry.NewMQTTSink(cfg.Telemetry.MQTT.Broker, "fcsim", cfg.Telemetry.MQTT.Topic)
		if err != nil {
			log.Warn().Err(err).Str("broker", cfg.Telemetry.MQTT.Broker).Msg("mqtt unavailable, skipping")
		} else {
			mqttSink = s
			sinks = append(sinks, s)
		}
	}

	if len(sinks) > 0 {
		engine.AddObserver(telemetry.AsObserver(telemetry.NewMultiSink(sinks...), log))
	}
	return func() {
		if mqttSink != nil {
			mqttSink.Close()
		}
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	cleanup := attachTelemetry(engine, cfg, !quiet)
	defer cleanup()

	fmt.Printf("running %d steps at dt=%.2fs...\n", cfg.Steps, cfg.Dt)
	start := time.Now()

	history, err := engine.Run(context.Background(), cfg.Steps, cfg.Dt)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	collected := []sim.Metric{
		metrics.NewPeakTemperature(),
		metrics.NewEnergyOutput(),
		metrics.NewCoolingDuty(),
	}
	values := make(map[string]float64, len(collected))
	for _, m := range collected {
		for _, snap := range history {
			m.Observe(snap)
		}
		values[m.Name()] = m.Value()
	}

	runID, err := st.Save(cfg.Dt, cfg.Load, history, values)
	if err != nil {
		return err
	}

	summary := metrics.Summarize(history)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", summary.Steps)
	fmt.Println("\nmetrics:")
	for name, val := range values {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	fmt.Printf("\nmean voltage: %.3f V (stddev %.3f)\n", summary.MeanVoltage, summary.VoltageStdDev)
	fmt.Printf("temperature trend: %+.4f degC/s\n", summary.TempSlope)
	fmt.Printf("final soc: %.1f%%  final pressure: %.0f Pa\n", summary.FinalSoC, summary.FinalPressure)

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	cleanup := attachTelemetry(engine, cfg, false)
	defer cleanup()

	return tui.Run(engine, cfg.Dt, cfg.Steps)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	cleanup := attachTelemetry(engine, cfg, false)
	defer cleanup()

	log := logger.New("serve")

	promSink, err := telemetry.NewPromSink(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	engine.AddObserver(telemetry.AsObserver(promSink, log))

	holder := &httpapi.SnapshotHolder{}
	engine.AddObserver(holder)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := engine.Step(cfg.Dt); err != nil {
					log.Error().Err(err).Msg("step failed")
					return
				}
			}
		}
	}()

	return httpapi.NewServer(addr, holder, log).Run(ctx)
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
	fmt.Fprintln(w, "ID\tTIME\tSTEPS\tDT\tLOAD")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2fs\t%.2fA\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Load,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, values, err := st.LoadSeries(runID, series)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s  steps: %d\n\n", meta.ID, meta.Steps)
	fmt.Print(viz.Render(viz.Series{Label: series, Times: times, Values: values}, 80, 10))
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	_, xs, err := st.LoadSeries(runID, xCol)
	if err != nil {
		return err
	}
	_, ys, err := st.LoadSeries(runID, yCol)
	if err != nil {
		return err
	}
	if len(xs) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("%s vs %s\n\n", yCol, xCol)
	fmt.Print(viz.PhasePlot(xs, ys, 70, 20))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, values, err := st.LoadSeries(runID, series)
	if err != nil {
		return err
	}
	if len(values) < 2 {
		return fmt.Errorf("not enough data to analyze")
	}

	freqs, power := analysis.PowerSpectrum(values, meta.Dt)
	fmt.Printf("frequency analysis: %s (%s)\n\n", meta.ID, series)
	fmt.Print(viz.Render(viz.Series{Label: "amplitude spectrum", Times: freqs, Values: power}, 80, 12))

	dominant := analysis.DominantFrequency(values, meta.Dt)
	if dominant > 0 {
		fmt.Printf("\ndominant frequency: %.4f Hz (period %.1f s)\n", dominant, 1.0/dominant)
	} else {
		fmt.Println("\nno dominant oscillation found")
	}
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
	times, values, err := st.LoadSeries(args[0], series)
	if err != nil {
		return err
	}

	svg := export.SeriesToSVG(times, values, 800, 400, series)
	if svg == "" {
		return fmt.Errorf("not enough data to export")
	}
	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(outFile, []byte(svg), 0644)
}

func tuneGains(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	search := optim.NewGridSearch(
		[]string{"kp", "ki"},
		[][]float64{
			{0.1, 0.25, 0.5, 1.0, 2.0},
			{0.0, 0.01, 0.05, 0.1},
		},
	)

	build := func(params map[string]float64) (*sim.Engine, error) {
		ec := cfg.EngineConfig()
		ec.AirKp = params["kp"]
		ec.AirKi = params["ki"]
		return sim.New(ec)
	}

	fmt.Printf("sweeping gain combinations over %d-step runs...\n", cfg.Steps)
	best, err := search.Search(context.Background(), cfg.Steps, cfg.Dt, build,
		optim.OxygenTrackingError(cfg.AirSupply.TargetO2))
	if err != nil {
		return err
	}

	fmt.Printf("best gains: kp=%.3f ki=%.3f\n", best.Params["kp"], best.Params["ki"])
	fmt.Printf("mean squared oxygen error: %.6f\n", best.Score)
	return nil
}
