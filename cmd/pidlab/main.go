package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"pidlab/internal/analysis"
	"pidlab/internal/config"
	"pidlab/internal/export"
	"pidlab/internal/loop"
	"pidlab/internal/lti"
	"pidlab/internal/metrics"
	"pidlab/internal/optim"
	"pidlab/internal/pid"
	"pidlab/internal/plant"
	"pidlab/internal/report"
	"pidlab/internal/ss"
	"pidlab/internal/storage"
	"pidlab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	system     string
	kp         float64
	ki         float64
	kd         float64
	tEnd       float64
	samples    int
	reference  float64
	tolerance  float64
	discrete   bool
	// tune
	ku float64
	tu float64
	// sweep
	objective string
	kpRange   []float64
	kiRange   []float64
	kdRange   []float64
	steps     int
	timeout   time.Duration
	// compare
	candidates []string
	// render/report
	outFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pidlab",
		Short: "pid control loop simulation lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pidlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate the closed loop and store the run",
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&discrete, "discrete", false, "run the sampled PID recurrence instead of the continuous loop")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	systemsCmd := &cobra.Command{
		Use:   "systems",
		Short: "list the plant catalog",
		RunE:  listSystems,
	}

	polesCmd := &cobra.Command{
		Use:   "poles",
		Short: "closed-loop pole and stability report",
		RunE:  showPoles,
	}
	addScenarioFlags(polesCmd)

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "suggest gains for the selected plant",
		Long: "Suggests PID gains from the plant family heuristics, or from the " +
			"Ziegler-Nichols closed-loop rule when --ku and --tu are given.",
		RunE: tuneGains,
	}
	addScenarioFlags(tuneCmd)
	tuneCmd.Flags().Float64Var(&ku, "ku", 0, "ultimate gain for Ziegler-Nichols")
	tuneCmd.Flags().Float64Var(&tu, "tu", 0, "ultimate period for Ziegler-Nichols")

	placeCmd := &cobra.Command{
		Use:   "place [p1] [p2] [p3]",
		Short: "pole-placement gains for a second-order plant",
		Args:  cobra.ExactArgs(3),
		RunE:  placePoles,
	}
	addScenarioFlags(placeCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid-search gains minimizing a step metric",
		RunE:  sweepGains,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&objective, "objective", "iae", "objective: iae, ise, itae or settling")
	sweepCmd.Flags().Float64SliceVar(&kpRange, "kp-range", []float64{0, 5}, "kp min,max")
	sweepCmd.Flags().Float64SliceVar(&kiRange, "ki-range", []float64{0, 2}, "ki min,max")
	sweepCmd.Flags().Float64SliceVar(&kdRange, "kd-range", []float64{0, 1}, "kd min,max")
	sweepCmd.Flags().IntVar(&steps, "steps", 6, "grid points per axis")
	sweepCmd.Flags().DurationVar(&timeout, "timeout", 0, "abort the sweep after this duration")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare named gain sets on one plant",
		Long:  "Each --candidate is name=kp,ki,kd; all candidates run concurrently.",
		RunE:  compareGains,
	}
	addScenarioFlags(compareCmd)
	compareCmd.Flags().StringArrayVar(&candidates, "candidate", nil, "candidate as name=kp,ki,kd (repeatable)")

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render a stored run to a PNG or SVG file",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVar(&outFile, "out", "response.png", "output image path (.png or .svg)")

	reportCmd := &cobra.Command{
		Use:   "report [run_id]",
		Short: "write an interactive HTML report for a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  reportRun,
	}
	reportCmd.Flags().StringVar(&outFile, "out", "report.html", "output html path")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "output path (stdout when empty)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal tuning view",
		RunE:  liveTune,
	}
	addScenarioFlags(liveCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, systemsCmd, polesCmd, tuneCmd,
		placeCmd, sweepCmd, compareCmd, renderCmd, reportCmd, exportCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
	cmd.Flags().StringVar(&system, "system", "", "catalog plant name (see systems)")
	cmd.Flags().Float64Var(&kp, "kp", 1.0, "proportional gain")
	cmd.Flags().Float64Var(&ki, "ki", 0.0, "integral gain")
	cmd.Flags().Float64Var(&kd, "kd", 0.0, "derivative gain")
	cmd.Flags().Float64Var(&tEnd, "time", loop.DefaultTEnd, "simulation horizon in seconds")
	cmd.Flags().IntVar(&samples, "samples", loop.DefaultSamples, "samples across the horizon")
	cmd.Flags().Float64Var(&reference, "reference", loop.DefaultReference, "step reference value")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0.02, "settling tolerance fraction")
}

// resolveScenario layers preset, config file and explicit flags, in
// that order of increasing precedence
func resolveScenario(cmd *cobra.Command) (*config.Config, error) {
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

	if cmd.Flags().Changed("system") {
		cfg.System = system
	}
	if cmd.Flags().Changed("kp") {
		cfg.Gains.Kp = kp
	}
	if cmd.Flags().Changed("ki") {
		cfg.Gains.Ki = ki
	}
	if cmd.Flags().Changed("kd") {
		cfg.Gains.Kd = kd
	}
	if cmd.Flags().Changed("time") {
		cfg.Horizon.TEnd = tEnd
	}
	if cmd.Flags().Changed("samples") {
		cfg.Horizon.Samples = samples
	}
	if cmd.Flags().Changed("reference") {
		cfg.Reference = reference
	}
	if cmd.Flags().Changed("tolerance") {
		cfg.SettlingTolerance = tolerance
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScenario(cmd)
	if err != nil {
		return err
	}
	tf, err := cfg.BuildPlant()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	label := cfg.System
	if label == "" {
		label = cfg.Plant.Type
	}
	fmt.Printf("simulating %s with kp=%.3g ki=%.3g kd=%.3g...\n",
		label, cfg.Gains.Kp, cfg.Gains.Ki, cfg.Gains.Kd)
	start := time.Now()

	var servo *ss.Response
	if discrete {
		servo, err = loop.DiscreteStepResponse(cfg.Gains, tf, cfg.Horizon)
	} else {
		servo, err = loop.StepResponse(cfg.Gains, tf, cfg.Horizon)
	}
	if err != nil {
		return err
	}
	regulatory, err := loop.DisturbanceResponse(cfg.Gains, tf, cfg.Horizon)
	if err != nil {
		return err
	}

	stepMet, err := metrics.Step(servo.Time, servo.Output, cfg.Reference, cfg.SettlingTolerance)
	if err != nil {
		return err
	}
	distMet, err := metrics.Disturbance(regulatory.Time, regulatory.Output)
	if err != nil {
		return err
	}

	runID, err := st.Save(label, cfg.Gains, cfg.Horizon, stepMet, distMet, servo, regulatory)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n\n", runID)

	graph := asciigraph.Plot(servo.Output,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("servo step response"),
	)
	fmt.Println(graph)
	fmt.Println()
	printStepMetrics(stepMet)
	fmt.Println()
	printDisturbanceMetrics(distMet)
	return nil
}

func printStepMetrics(m metrics.StepMetrics) {
	fmt.Println("step metrics:")
	fmt.Printf("  overshoot:     %.2f%%\n", m.OvershootPercent)
	fmt.Printf("  settling time: %.3fs\n", m.SettlingTime)
	fmt.Printf("  rise time:     %.3fs\n", m.RiseTime)
	fmt.Printf("  peak time:     %.3fs\n", m.PeakTime)
	fmt.Printf("  steady state:  %.4f (error %.4f)\n", m.SteadyStateValue, m.SteadyStateError)
	fmt.Printf("  iae: %.4f  ise: %.4f  itae: %.4f\n", m.IAE, m.ISE, m.ITAE)
}

func printDisturbanceMetrics(m metrics.DisturbanceMetrics) {
	fmt.Println("disturbance metrics:")
	fmt.Printf("  max deviation: %.4f\n", m.MaxDeviation)
	fmt.Printf("  recovery time: %.3fs\n", m.RecoveryTime)
	fmt.Printf("  energy:        %.4f\n", m.DisturbanceEnergy)
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
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tKP\tKI\tKD\tOVERSHOOT\tSETTLING")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3g\t%.3g\t%.3g\t%.1f%%\t%.2fs\n",
			run.ID,
			run.System,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Gains.Kp, run.Gains.Ki, run.Gains.Kd,
			run.Step.OvershootPercent,
			run.Step.SettlingTime,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", run.Meta.ID)
	fmt.Printf("system: %s\n", run.Meta.System)
	fmt.Printf("samples: %d\n\n", len(run.Servo.Time))

	fmt.Println(asciigraph.Plot(run.Servo.Output,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("servo step response"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(run.Regulatory.Output,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("load disturbance response"),
	))
	return nil
}

func listSystems(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tORDER\tDESCRIPTION")
	for _, s := range plant.Systems() {
		tf, err := s.Build()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", s, tf.Den.Degree(), s.Description())
	}
	return w.Flush()
}

func showPoles(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScenario(cmd)
	if err != nil {
		return err
	}
	tf, err := cfg.BuildPlant()
	if err != nil {
		return err
	}

	servo, err := loop.ServoTransferFunction(cfg.Gains, tf)
	if err != nil {
		return err
	}
	regulatory, err := loop.RegulatoryTransferFunction(cfg.Gains, tf)
	if err != nil {
		return err
	}

	if err := printPoleReport("servo loop", servo); err != nil {
		return err
	}
	fmt.Println()
	return printPoleReport("regulatory loop", regulatory)
}

func printPoleReport(name string, tf lti.TransferFunction) error {
	rep, err := analysis.ClosedLoop(tf)
	if err != nil {
		return err
	}

	verdict := "stable"
	if !rep.Stable {
		verdict = "UNSTABLE"
	}
	fmt.Printf("%s: %s\n", name, verdict)
	fmt.Printf("  transfer function: %s\n", tf)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  POLE\tFREQ (rad/s)\tDAMPING\tSTABLE")
	for _, p := range rep.Poles {
		fmt.Fprintf(w, "  %.4g%+.4gi\t%.4g\t%.4g\t%v\n",
			real(p.Pole), imag(p.Pole), p.Frequency, p.Damping, p.Stable)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if rep.Stable {
		fmt.Printf("  estimated settling: %.2fs\n", rep.SettlingEstimate())
	}
	return nil
}

func tuneGains(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScenario(cmd)
	if err != nil {
		return err
	}

	var gains pid.Gains
	switch {
	case ku > 0 || tu > 0:
		gains, err = pid.ZieglerNichols(ku, tu)
		if err != nil {
			return err
		}
		fmt.Printf("ziegler-nichols (ku=%.3g, tu=%.3g):\n", ku, tu)
	default:
		sys, err := plant.ParseSystem(cfg.System)
		if err != nil {
			return err
		}
		gains = pid.Suggest(sys.Model())
		fmt.Printf("heuristic for %s:\n", sys)
	}

	fmt.Printf("  kp=%.4g ki=%.4g kd=%.4g\n", gains.Kp, gains.Ki, gains.Kd)
	return nil
}

func placePoles(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScenario(cmd)
	if err != nil {
		return err
	}
	sys, err := plant.ParseSystem(cfg.System)
	if err != nil {
		return err
	}
	model, ok := sys.Model().(pid.SecondOrderModel)
	if !ok {
		return fmt.Errorf("pole placement needs a second-order plant, %s is not one", sys)
	}

	var desired [3]complex128
	for i, arg := range args {
		p, err := strconv.ParseComplex(strings.ReplaceAll(arg, " ", ""), 128)
		if err != nil {
			return fmt.Errorf("pole %q: %w", arg, err)
		}
		desired[i] = p
	}

	gains, err := pid.PolePlacement(model.Wn, model.Zeta, desired)
	if err != nil {
		return err
	}
	fmt.Printf("pole placement for %s (wn=%.3g, zeta=%.3g):\n", sys, model.Wn, model.Zeta)
	fmt.Printf("  kp=%.4g ki=%.4g kd=%.4g\n", gains.Kp, gains.Ki, gains.Kd)
	return nil
}

func sweepGains(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScenario(cmd)
	if err != nil {
		return err
	}
	tf, err := cfg.BuildPlant()
	if err != nil {
		return err
	}
	if len(kpRange) != 2 || len(kiRange) != 2 || len(kdRange) != 2 {
		return fmt.Errorf("each range needs exactly min,max")
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	gs := &optim.GridSearch{
		Kp: optim.Span(kpRange[0], kpRange[1], steps),
		Ki: optim.Span(kiRange[0], kiRange[1], steps),
		Kd: optim.Span(kdRange[0], kdRange[1], steps),
	}

	total := len(gs.Kp) * len(gs.Ki) * len(gs.Kd)
	fmt.Printf("sweeping %d combinations on %s minimizing %s...\n", total, cfg.System, objective)
	start := time.Now()

	best, score, err := gs.Search(ctx, tf, cfg.Horizon, optim.Objective(objective))
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("best: kp=%.4g ki=%.4g kd=%.4g (%s=%.4f)\n", best.Kp, best.Ki, best.Kd, objective, score)
	return nil
}

func compareGains(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScenario(cmd)
	if err != nil {
		return err
	}
	tf, err := cfg.BuildPlant()
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fmt.Errorf("at least one --candidate is required")
	}

	cands := make([]loop.Candidate, 0, len(candidates))
	for _, spec := range candidates {
		c, err := parseCandidate(spec)
		if err != nil {
			return err
		}
		cands = append(cands, c)
	}

	results, err := loop.Compare(cands, tf, cfg.Horizon)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKP\tKI\tKD\tOVERSHOOT\tSETTLING\tRISE\tSSE\tIAE")
	for _, r := range results {
		m := r.Response.Metrics
		fmt.Fprintf(w, "%s\t%.3g\t%.3g\t%.3g\t%.1f%%\t%.2fs\t%.2fs\t%.4f\t%.4f\n",
			r.Candidate.Name,
			r.Candidate.Gains.Kp, r.Candidate.Gains.Ki, r.Candidate.Gains.Kd,
			m.OvershootPercent, m.SettlingTime, m.RiseTime, m.SteadyStateError, m.IAE)
	}
	return w.Flush()
}

func parseCandidate(spec string) (loop.Candidate, error) {
	name, rest, ok := strings.Cut(spec, "=")
	if !ok {
		return loop.Candidate{}, fmt.Errorf("candidate %q: want name=kp,ki,kd", spec)
	}
	parts := strings.Split(rest, ",")
	if len(parts) != 3 {
		return loop.Candidate{}, fmt.Errorf("candidate %q: want name=kp,ki,kd", spec)
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return loop.Candidate{}, fmt.Errorf("candidate %q: %w", spec, err)
		}
		vals[i] = v
	}
	return loop.Candidate{
		Name:  name,
		Gains: pid.Gains{Kp: vals[0], Ki: vals[1], Kd: vals[2]},
	}, nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}

	p, err := export.ResponsePlot(
		fmt.Sprintf("%s step response", run.Meta.System),
		loop.DefaultReference,
		export.Series{Name: "servo", Time: run.Servo.Time, Output: run.Servo.Output},
		export.Series{Name: "disturbance", Time: run.Regulatory.Time, Output: run.Regulatory.Output},
	)
	if err != nil {
		return err
	}
	if err := export.Save(p, outFile, 8, 5); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func reportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}

	data := report.Data{
		System:      run.Meta.System,
		Gains:       run.Meta.Gains,
		Servo:       run.Servo,
		Regulatory:  run.Regulatory,
		Step:        run.Meta.Step,
		Disturbance: run.Meta.Disturbance,
	}
	if err := report.WriteFile(outFile, data); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}

	data := storage.NewExportData(run.Meta.System, run.Meta.Gains, run.Meta.Horizon,
		run.Servo, run.Regulatory, run.Meta.Step, run.Meta.Disturbance)
	if outFile != "" {
		if err := storage.ExportJSON(outFile, data); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}
	return storage.ExportJSONTo(os.Stdout, data)
}

func liveTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveScenario(cmd)
	if err != nil {
		return err
	}
	tf, err := cfg.BuildPlant()
	if err != nil {
		return err
	}
	return viz.Run(cfg.System, tf, cfg.Gains, cfg.Horizon)
}
