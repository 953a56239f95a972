package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/collide/internal/analysis"
	"github.com/san-kum/collide/internal/audio"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/export"
	"github.com/san-kum/collide/internal/gui"
	"github.com/san-kum/collide/internal/metrics"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/storage"
	"github.com/san-kum/collide/internal/viz"
	"github.com/san-kum/collide/internal/world"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	dt         float64
	frames     int
	numBodies  int
	radius     float64
	activateAt int
	highlight  string
	normalAxis string
	verbose    bool
	mute       bool
	// run
	trace   bool
	jsonOut bool
	// plot, analyze, export-svg
	plotSeries    string
	analyzeSeries string
	svgSeries     string
	// bench
	benchSizes []int
	// sweep, divergence
	sweepParam   string
	sweepValues  []float64
	perturbation float64
	// export-svg
	svgOut string
)

// main registers the commands and flags and opens the window when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	log.SetFlags(0)
	log.SetPrefix("collide: ")

	rootCmd := &cobra.Command{
		Use:          "collide",
		Short:        "circles in a box: sweep-and-prune collision sandbox",
		RunE:         runGUI,
		SilenceUsage: true,
	}

	addConfigFlags(rootCmd.PersistentFlags())

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the arena in a window (hold F for gravity)",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the arena in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().BoolVar(&trace, "trace", false, "record every body in every frame")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "also write the result as JSON to stdout")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotSeries, "series", "kinetic_energy,collisions",
		"comma-separated columns to plot ("+strings.Join(storage.FrameColumns, ", ")+")")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tRADIUS\tGRAVITY\tHIGHLIGHT\tAXIS")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.0f\t%.0f\t%s\t%s\n", name,
					cfg.Bodies.Count, cfg.Bodies.Radius, cfg.Physics.Gravity,
					cfg.Physics.Highlight, cfg.Physics.NormalAxis)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure frame throughput for growing populations",
		Args:  cobra.NoArgs,
		RunE:  benchFrames,
	}
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{10, 100, 500, 1000}, "population sizes")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&analyzeSeries, "series", "collisions", "column to analyze")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one parameter across runs with the same seed",
		Args:  cobra.NoArgs,
		RunE:  sweepRuns,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "bodies", "parameter to vary ("+strings.Join(analysis.Params(), ", ")+")")
	sweepCmd.Flags().Float64SliceVar(&sweepValues, "values", []float64{3, 10, 50, 100}, "values to try")

	divergenceCmd := &cobra.Command{
		Use:   "divergence",
		Short: "estimate how fast nearby starts drift apart",
		Args:  cobra.NoArgs,
		RunE:  runDivergence,
	}
	divergenceCmd.Flags().Float64Var(&perturbation, "eps", 1e-6, "initial nudge of the first body")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw body paths (traced runs) or a series as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgSeries, "series", "", "plot this column instead of body paths")
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(guiCmd, liveCmd, runCmd, listCmd, plotCmd, exportJSONCmd, presetsCmd, benchCmd,
		analyzeCmd, sweepCmd, divergenceCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(pf *pflag.FlagSet) {
	pf.StringVar(&dataDir, "data", ".collide", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	pf.Float64Var(&dt, "dt", config.DefaultDt, "timestep for headless runs and the terminal view")
	pf.IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
	pf.IntVar(&numBodies, "bodies", config.DefaultBodies, "number of bodies")
	pf.Float64Var(&radius, "radius", config.DefaultRadius, "body radius")
	pf.IntVar(&activateAt, "activate-at", 0, "first frame with gravity on (negative: never)")
	pf.StringVar(&highlight, "highlight", physics.HighlightCandidates.String(), "highlight policy: candidates or contacts")
	pf.StringVar(&normalAxis, "axis", physics.AxisRelativeVelocity.String(), "collision normal: relative_velocity or center_line")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log every collision")
	pf.BoolVar(&mute, "mute", false, "disable collision sounds")
}

// resolveConfig layers the sources: defaults, then the preset, then the
// config file, then any flag set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if flags.Changed("frames") {
		cfg.Run.Frames = frames
	}
	if flags.Changed("bodies") {
		cfg.Bodies.Count = numBodies
	}
	if flags.Changed("radius") {
		cfg.Bodies.Radius = radius
	}
	if flags.Changed("activate-at") {
		cfg.Run.ActivateAt = activateAt
	}
	if flags.Changed("highlight") {
		cfg.Physics.Highlight = highlight
	}
	if flags.Changed("axis") {
		cfg.Physics.NormalAxis = normalAxis
	}
	if flags.Changed("seed") || cfg.Run.Seed == 0 {
		cfg.Run.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type contactSink interface {
	Collide(speed float64)
}

// contactLog prints a line per contact, then forwards to next.
type contactLog struct {
	next contactSink
}

func (c contactLog) Collide(speed float64) {
	log.Printf("COLLISION speed=%.1f", speed)
	if c.next != nil {
		c.next.Collide(speed)
	}
}

// openSink builds the contact sink for the interactive views. The returned
// func releases the audio device.
func openSink() (contactSink, func()) {
	var sink contactSink
	cleanup := func() {}

	if !mute {
		player := audio.NewPlayer()
		if err := player.Init(); err != nil {
			log.Printf("audio initialization failed: %v", err)
		} else {
			sink = player
			cleanup = player.Close
		}
	}
	if verbose {
		sink = contactLog{next: sink}
	}
	return sink, cleanup
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sink, closeSink := openSink()
	defer closeSink()
	return gui.Run(cfg, cfg.Run.Seed, sink)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so diagnostics go to a file.
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	logFile, err := tea.LogToFile(filepath.Join(dataDir, "live.log"), "collide: ")
	if err != nil {
		return err
	}
	defer logFile.Close()

	sink, closeSink := openSink()
	defer closeSink()
	return viz.Run(cfg, cfg.Run.Seed, sink)
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

	w, err := world.New(cfg, rand.New(rand.NewSource(cfg.Run.Seed)))
	if err != nil {
		return err
	}
	for _, m := range metrics.Default() {
		w.AddMetric(m)
	}
	if verbose {
		w.Detector.OnContact = func(a, b *physics.Body) {
			log.Printf("COLLISION frame=%d bodies=%d,%d", w.Frame()+1, a.ID, b.ID)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// With --json, stdout carries only the JSON document.
	var summary io.Writer = os.Stdout
	if jsonOut {
		summary = os.Stderr
	}

	fmt.Fprintf(summary, "running %d bodies for %d frames...\n", len(w.Bodies), cfg.Run.Frames)
	start := time.Now()

	result, runErr := w.Run(ctx, world.RunConfig{
		Dt:         cfg.Run.Dt,
		Frames:     cfg.Run.Frames,
		ActivateAt: cfg.Run.ActivateAt,
		Trace:      trace,
	})
	if result == nil {
		return runErr
	}
	elapsed := time.Since(start)

	name := preset
	if name == "" {
		name = "run"
	}
	meta := storage.RunMetadata{
		Preset:     name,
		Seed:       cfg.Run.Seed,
		Dt:         cfg.Run.Dt,
		Frames:     result.FramesTaken,
		Bodies:     len(w.Bodies),
		Width:      cfg.Arena.Width,
		Height:     cfg.Arena.Height,
		Radius:     cfg.Bodies.Radius,
		ActivateAt: cfg.Run.ActivateAt,
		Highlight:  cfg.Physics.Highlight,
		NormalAxis: cfg.Physics.NormalAxis,
		Collisions: result.Collisions,
		Degenerate: result.Degenerate,
		Metrics:    result.Metrics,
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			log.Printf("interrupted after %d frames; partial run saved", result.FramesTaken)
		} else {
			log.Printf("stopped after %d frames: %v", result.FramesTaken, runErr)
		}
	}
	if verbose && result.Degenerate > 0 {
		log.Printf("%d contacts had no usable normal and were left unresolved", result.Degenerate)
	}

	if err := writeSummary(summary, runID, elapsed, result); err != nil {
		return err
	}

	if jsonOut {
		meta.ID = runID
		if err := storage.ExportResult(os.Stdout, meta, result); err != nil {
			return err
		}
	}
	return runErr
}

// writeSummary prints the human-readable outcome of a headless run.
func writeSummary(w io.Writer, runID string, elapsed time.Duration, result *world.Result) error {
	fmt.Fprintf(w, "completed in %v\n", elapsed)
	fmt.Fprintf(w, "run id: %s\n", runID)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nFRAMES\tCANDIDATES\tCOLLISIONS\tDEGENERATE")
	fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n", result.FramesTaken, result.Candidates, result.Collisions, result.Degenerate)
	fmt.Fprintln(tw, "\nMETRIC\tVALUE")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%.6f\n", name, result.Metrics[name])
	}
	return tw.Flush()
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
	fmt.Fprintln(w, "ID\tTIME\tBODIES\tFRAMES\tDT\tCOLLISIONS\tAXIS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.4fs\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Frames,
			run.Dt,
			run.Collisions,
			run.NormalAxis,
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

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("bodies: %d  frames: %d  seed: %d\n\n", meta.Bodies, meta.Frames, meta.Seed)

	for _, column := range strings.Split(plotSeries, ",") {
		column = strings.TrimSpace(column)
		if column == "" {
			continue
		}
		data, err := st.LoadSeries(runID, column)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			return fmt.Errorf("no data to plot for %s", column)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(strings.ReplaceAll(column, "_", " ")),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(os.Stdout, args[0])
}

// benchFrames times the frame loop for each population size, with gravity on
// from the first frame.
func benchFrames(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tFRAMES\tTOTAL\tPER FRAME\tCANDIDATES/FRAME\tCOLLISIONS")

	for _, n := range benchSizes {
		c := cfg.Clone()
		c.Bodies.Count = n
		wld, err := world.New(c, rand.New(rand.NewSource(c.Run.Seed)))
		if err != nil {
			return err
		}

		candidates, collisions := 0, 0
		start := time.Now()
		for i := 0; i < c.Run.Frames; i++ {
			st := wld.StepFrame(c.Run.Dt, true)
			candidates += st.Candidates
			collisions += st.Collisions
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%v\t%.1f\t%d\n", n, c.Run.Frames, elapsed,
			elapsed/time.Duration(c.Run.Frames), float64(candidates)/float64(c.Run.Frames), collisions)
	}
	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	data, err := st.LoadSeries(runID, analyzeSeries)
	if err != nil {
		return err
	}

	ps := analysis.PowerSpectrum(data)
	if len(ps) < 2 {
		return fmt.Errorf("not enough samples to analyze")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("series: %s (%d samples)\n\n", analyzeSeries, len(data))

	if period, ok := analysis.DominantPeriod(data, meta.Dt); ok {
		fmt.Printf("dominant period: %.3fs (%.2f Hz)\n\n", period, 1/period)
	} else {
		fmt.Println("series is flat; no dominant period")
		return nil
	}

	graph := asciigraph.Plot(ps[1:],
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)
	return nil
}

func sweepRuns(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	points, err := analysis.Sweep(ctx, cfg, sweepParam, sweepValues)
	if err != nil && len(points) == 0 {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tCANDIDATES/FRAME\tCOLLISIONS\tDEGENERATE\tFINAL KE\n", strings.ToUpper(sweepParam))
	for _, p := range points {
		fmt.Fprintf(w, "%g\t%.1f\t%d\t%d\t%.1f\n", p.Value, p.Candidates, p.Collisions, p.Degenerate, p.KineticEnergy)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}

	if len(points) > 0 {
		calm := analysis.Best(points, func(p analysis.SweepPoint) float64 { return float64(p.Collisions) })
		fmt.Printf("\nfewest collisions at %s=%g\n", sweepParam, calm.Value)
	}
	return err
}

func runDivergence(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	lambda, err := analysis.Divergence(cfg, cfg.Run.Frames, perturbation)
	if err != nil {
		return err
	}

	fmt.Printf("bodies: %d  frames: %d  eps: %g\n", cfg.Bodies.Count, cfg.Run.Frames, perturbation)
	fmt.Printf("divergence rate: %.4f /s\n", lambda)
	if lambda > 0 {
		fmt.Println("nearby starts separate: the arena is chaotic at this setting")
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	out := os.Stdout
	if svgOut != "" {
		f, err := os.Create(svgOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if svgSeries != "" {
		data, err := st.LoadSeries(runID, svgSeries)
		if err != nil {
			return err
		}
		return export.SeriesToSVG(out, data, 800, 300, "#00ff88")
	}

	traces, err := st.LoadTraces(runID)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("run %s has no body traces; rerun with --trace or pass --series", meta.ID)
	}
	if err != nil {
		return err
	}

	arena, radius, err := runGeometry(meta, cmd)
	if err != nil {
		return err
	}
	return export.TracesToSVG(out, arena, traces, radius)
}

// runGeometry returns the arena and body radius a run was recorded with.
// Metadata written before these fields existed falls back to the resolved
// config.
func runGeometry(meta *storage.RunMetadata, cmd *cobra.Command) (physics.Arena, float64, error) {
	if meta.Width > 0 && meta.Height > 0 && meta.Radius > 0 {
		return physics.Arena{Width: meta.Width, Height: meta.Height}, meta.Radius, nil
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return physics.Arena{}, 0, err
	}
	return cfg.ArenaBounds(), cfg.Bodies.Radius, nil
}
