package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/optim"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir        string
	configFile     string
	logLevel       string
	dt             float64
	days           float64
	integratorName string
	strict         bool
	minSeparation  float64
	sampleEvery    int
	// live view
	frameRate int
	trueScale bool
	theme     string
	// export
	outputFile string
	svgWidth   int
	svgHeight  int
	braille    bool
	// chaos
	bodyName     string
	perturbation float64
	// sweep
	sweepDts    []float64
	sweepMetric string

	logger log.Logger = log.NewNopLogger()
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "orbitsim",
		Short:        "planetary n-body simulator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(os.Stderr, logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error, none)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run simulation and store the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run simulation with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().BoolVar(&trueScale, "true-scale", false, "start with radii proportional to physical size")
	liveCmd.Flags().StringVar(&theme, "theme", "", fmt.Sprintf("colour theme %v", viz.ThemeNames()))

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot distance to the reference body",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate orbital elements and periods",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export trajectories to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "render through the terminal canvas instead of vector paths")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [integrator...]",
		Short: "compare integrators on the same initial conditions",
		Args:  cobra.ArbitraryArgs,
		RunE:  compareIntegrators,
	}
	addScenarioFlags(compareCmd)

	chaosCmd := &cobra.Command{
		Use:   "chaos [preset]",
		Short: "estimate the largest Lyapunov exponent",
		Args:  cobra.MaximumNArgs(1),
		RunE:  estimateChaos,
	}
	addScenarioFlags(chaosCmd)
	chaosCmd.Flags().StringVar(&bodyName, "body", "", "body to perturb (default: last body)")
	chaosCmd.Flags().Float64Var(&perturbation, "perturbation", 1e3, "initial displacement in meters")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "grid search the timestep against a run metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepTimestep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&sweepDts, "dts", []float64{3600, 21600, 43200, 86400}, "timesteps to try, in seconds")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "energy_drift", "metric to minimise")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tREFERENCE\tINTEG\tDAYS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				ref := p.Reference
				if ref == "" {
					ref = "-"
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%.0f\n", name, len(p.Bodies), ref, p.Integrator, p.DurationDays)
			}
			return w.Flush()
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [preset] [file]",
		Short: "write a preset as an editable yaml scenario",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetPreset(args[0])
			if cfg == nil {
				return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
			}
			if err := config.Save(args[1], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[1])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportSVGCmd, compareCmd, chaosCmd, sweepCmd, presetsCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml), overrides the preset")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in seconds")
	cmd.Flags().Float64Var(&days, "days", config.DefaultDurationDays, "simulated duration in days")
	cmd.Flags().StringVar(&integratorName, "integrator", config.DefaultIntegrator, fmt.Sprintf("integrator %v", integrators.Names()))
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on degenerate separations instead of propagating Inf/NaN")
	cmd.Flags().Float64Var(&minSeparation, "min-separation", 0, "separation in meters treated as degenerate in strict mode")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", 1, "store every n-th step")
}

func newLogger(w io.Writer, lvl string) (log.Logger, error) {
	var allow level.Option
	switch strings.ToLower(lvl) {
	case "debug":
		allow = level.AllowDebug()
	case "info":
		allow = level.AllowInfo()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	case "none":
		allow = level.AllowNone()
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}

	l := log.NewLogfmtLogger(log.NewSyncWriter(w))
	l = log.With(l, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return level.NewFilter(l, allow), nil
}

// loadScenario resolves the preset or config file, then applies any flags
// set on the command line.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	} else {
		name := "inner"
		if len(args) > 0 {
			name = args[0]
		}
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("days") {
		cfg.DurationDays = days
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integratorName
	}
	if flags.Changed("strict") {
		cfg.Strict = strict
	}
	if flags.Changed("min-separation") {
		cfg.MinSeparation = minSeparation
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func integratorOptions(cfg *config.Config) integrators.Options {
	return integrators.Options{Strict: cfg.Strict, MinSeparation: cfg.MinSeparation}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	sys, err := cfg.Build()
	if err != nil {
		return err
	}
	integ, err := integrators.Lookup(cfg.Integrator, integratorOptions(cfg))
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := sim.New(integ, sim.WithLogger(log.With(logger, "scenario", cfg.Name)), sim.WithMetrics(metrics.Defaults()...))
	sc := cfg.SimConfig()

	fmt.Printf("running %s (%s, %d bodies, %d steps)...\n", cfg.Name, integ.Name(), sys.Len(), sc.Steps())
	result, err := s.Run(ctx, sys, sc)
	if err != nil {
		if result == nil || !errors.Is(err, dynamo.ErrContextCanceled) {
			return err
		}
		fmt.Printf("interrupted: %v\n", err)
	}

	runID, err := st.Save(storage.RunMetadata{
		Scenario:   cfg.Name,
		Integrator: integ.Name(),
		Dt:         sc.Dt,
		Duration:   sc.Duration,
		Reference:  cfg.Reference,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}

	fmt.Println("\nmetrics:")
	for _, m := range metrics.Defaults() {
		fmt.Printf("  %s: %.6g\n", m.Name(), result.Metrics[m.Name()])
	}

	fmt.Println()
	return printBodies(os.Stdout, sys)
}

func printBodies(out io.Writer, sys *physics.System) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tX (AU)\tY (AU)\tSPEED (km/s)\tDISTANCE")
	for i, b := range sys.Bodies {
		dist := "-"
		if sys.Reference != physics.NoReference && !sys.IsReference(i) {
			dist = viz.FormatAU(b.DistanceToReference)
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.3f\t%s\n", b.Name, b.Pos.X/physics.AU, b.Pos.Y/physics.AU, b.Speed()/1e3, dist)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	sys, err := cfg.Build()
	if err != nil {
		return err
	}
	integ, err := integrators.Lookup(cfg.Integrator, integratorOptions(cfg))
	if err != nil {
		return err
	}

	render := cfg.Render
	if cmd.Flags().Changed("fps") {
		render.FPS = frameRate
	}
	if cmd.Flags().Changed("true-scale") {
		render.TrueScale = trueScale
	}
	if theme != "" {
		render.Theme = theme
	}

	m := viz.NewModel(cfg.Name, sys, integ, cfg.Dt, render, viz.WithModelLogger(log.With(logger, "scenario", cfg.Name)))
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDAYS\tDT\tINTEG\tSTEPS\tENERGY DRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.0fs\t%s\t%d\t%.3g\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration/physics.Day,
			run.Dt,
			run.Integrator,
			run.Steps,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *storage.Trajectory, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(traj.Order) == 0 {
		return nil, nil, fmt.Errorf("run %s: no data", runID)
	}
	return meta, traj, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(traj.Bodies[traj.Order[0]]))

	for _, name := range traj.Order {
		var data []float64
		var caption string
		switch {
		case meta.Reference == "":
			data = traj.Series(name, func(p storage.Point) float64 { return p.Pos.X / physics.AU })
			caption = name + " x (AU)"
		case name == meta.Reference:
			continue
		default:
			data = traj.Series(name, func(p storage.Point) float64 { return p.DistanceToReference / physics.AU })
			caption = fmt.Sprintf("%s distance to %s (AU)", name, meta.Reference)
		}
		if len(data) < 2 {
			continue
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

// uniformSeries drops a trailing sample whose spacing differs from the
// rest, since the final state is always stored.
func uniformSeries(pts []storage.Point) ([]storage.Point, float64) {
	if len(pts) < 2 {
		return pts, 0
	}
	step := pts[1].Time - pts[0].Time
	n := len(pts)
	if n > 2 && pts[n-1].Time-pts[n-2].Time != step {
		pts = pts[:n-1]
	}
	return pts, step
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if meta.Reference == "" {
		return fmt.Errorf("run %s has no reference body to measure orbits against", meta.ID)
	}

	fmt.Printf("orbit analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tPERIAPSIS (AU)\tAPOAPSIS (AU)\tECC\tPERIOD (days)")
	for _, name := range traj.Order {
		if name == meta.Reference {
			continue
		}
		pts, step := uniformSeries(traj.Bodies[name])
		// the first sample precedes any force evaluation
		if len(pts) > 1 && pts[0].DistanceToReference == 0 {
			pts = pts[1:]
		}
		distances := make([]float64, len(pts))
		for i, p := range pts {
			distances[i] = p.DistanceToReference
		}

		st, err := analysis.Orbit(distances, step)
		if err != nil {
			level.Warn(logger).Log("msg", "orbit analysis failed", "body", name, "err", err)
			continue
		}
		period := "-"
		if st.Period > 0 {
			period = fmt.Sprintf("%.1f", st.Period/physics.Day)
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%s\n", name, st.Periapsis/physics.AU, st.Apoapsis/physics.AU, st.Eccentricity, period)
	}
	return w.Flush()
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w, closeFn, err := openOutput(outputFile)
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, meta, traj); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}

	colors := make(map[string]string)
	render := config.DefaultRender()
	if p := config.GetPreset(meta.Scenario); p != nil {
		for _, b := range p.Bodies {
			colors[b.Name] = b.Color
		}
		render = p.Render
	}

	var svg string
	if braille {
		svg = export.CanvasToSVG(trajectoryCanvas(traj, colors, render), 4)
	} else {
		svg = export.TrajectoriesSVG(traj, colors, svgWidth, svgHeight)
	}
	if svg == "" {
		return fmt.Errorf("run %s: nothing to draw", meta.ID)
	}

	path := outputFile
	if path == "" {
		path = filepath.Clean(meta.ID + ".svg")
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// trajectoryCanvas draws every stored trajectory as a polyline on a fresh
// scene canvas.
func trajectoryCanvas(traj *storage.Trajectory, colors map[string]string, render config.RenderConfig) *viz.Canvas {
	scene := viz.NewScene(render)
	canvas := scene.Canvas()
	for _, name := range traj.Order {
		pts := traj.Bodies[name]
		for i := 1; i < len(pts); i++ {
			x0, y0 := scene.ProjectF(pts[i-1].Pos)
			x1, y1 := scene.ProjectF(pts[i].Pos)
			canvas.DrawLineF(x0, y0, x1, y1, colors[name])
		}
	}
	return canvas
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	preset := args
	names := integrators.Names()
	if len(args) > 1 {
		preset, names = args[:1], args[1:]
	}

	cfg, err := loadScenario(cmd, preset)
	if err != nil {
		return err
	}
	sys, err := cfg.Build()
	if err != nil {
		return err
	}

	integs := make([]sim.Integrator, len(names))
	for i, name := range names {
		integ, err := integrators.Lookup(name, integratorOptions(cfg))
		if err != nil {
			return err
		}
		integs[i] = integ
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("comparing %d integrators on %s...\n\n", len(integs), cfg.Name)
	results, err := sim.Compare(ctx, sys, cfg.SimConfig(), integs, metrics.Defaults, sim.WithLogger(logger))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tSTEPS\tENERGY DRIFT\tL DRIFT\tCLOSEST (AU)\tTIME")
	for _, c := range results {
		fmt.Fprintf(w, "%s\t%d\t%.3e\t%.3e\t%.4f\t%v\n",
			c.Integrator,
			c.Result.StepsTaken,
			c.Result.Metrics["energy_drift"],
			c.Result.Metrics["angular_momentum_drift"],
			c.Result.Metrics["closest_approach"]/physics.AU,
			c.Elapsed,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, c := range results {
		fmt.Printf("\nfinal state (%s):\n", c.Integrator)
		if err := printBodies(os.Stdout, c.Final); err != nil {
			return err
		}
	}
	return nil
}

func estimateChaos(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	sys, err := cfg.Build()
	if err != nil {
		return err
	}

	body := sys.Len() - 1
	if bodyName != "" {
		if body = sys.Find(bodyName); body < 0 {
			return fmt.Errorf("unknown body %q", bodyName)
		}
	}

	opts := integratorOptions(cfg)
	if _, err := integrators.Lookup(cfg.Integrator, opts); err != nil {
		return err
	}
	newIntegrator := func() sim.Integrator {
		integ, _ := integrators.Lookup(cfg.Integrator, opts)
		return integ
	}

	sc := cfg.SimConfig()
	lambda, err := analysis.LyapunovExponent(sys, newIntegrator, body, sc.Dt, sc.Steps(), perturbation)
	if err != nil {
		return err
	}

	year := 365.25 * physics.Day
	fmt.Printf("scenario: %s\n", cfg.Name)
	fmt.Printf("perturbed body: %s (%g m)\n", sys.Bodies[body].Name, perturbation)
	fmt.Printf("largest lyapunov exponent: %.4g 1/yr\n", lambda*year)
	if lambda > 0 {
		fmt.Printf("e-folding time: %.1f days\n", 1/lambda/physics.Day)
	}
	return nil
}

func sweepTimestep(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	if _, err := integrators.Lookup(cfg.Integrator, integratorOptions(cfg)); err != nil {
		return err
	}

	build := func(params map[string]float64) (optim.Run, error) {
		trial := cfg.Clone()
		trial.Dt = params["dt"]
		if err := trial.Validate(); err != nil {
			return optim.Run{}, err
		}
		sys, err := trial.Build()
		if err != nil {
			return optim.Run{}, err
		}
		integ, err := integrators.Lookup(trial.Integrator, integratorOptions(trial))
		if err != nil {
			return optim.Run{}, err
		}
		s := sim.New(integ,
			sim.WithLogger(log.With(logger, "scenario", trial.Name, "dt", trial.Dt)),
			sim.WithMetrics(metrics.Defaults()...),
		)
		return optim.Run{Simulator: s, System: sys, Config: trial.SimConfig()}, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %d timesteps on %s (%s)...\n\n", len(sweepDts), cfg.Name, cfg.Integrator)
	search := optim.NewGridSearch([]string{"dt"}, [][]float64{sweepDts})
	best, value, trials, err := search.Search(ctx, build, sweepMetric)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DT (s)\t%s\n", strings.ToUpper(sweepMetric))
	for _, tr := range trials {
		if tr.Err != nil {
			fmt.Fprintf(w, "%g\terror: %v\n", tr.Params["dt"], tr.Err)
			continue
		}
		fmt.Fprintf(w, "%g\t%.6g\n", tr.Params["dt"], tr.Value)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nbest dt: %g s (%s = %.6g)\n", best["dt"], sweepMetric, value)
	return nil
}
