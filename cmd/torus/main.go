package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/torus/internal/analysis"
	"github.com/san-kum/torus/internal/automaton"
	"github.com/san-kum/torus/internal/config"
	"github.com/san-kum/torus/internal/experiment"
	"github.com/san-kum/torus/internal/sim"
	"github.com/san-kum/torus/internal/storage"
	"github.com/san-kum/torus/internal/viz"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	dataDir  string
	logLevel string
	// render flags
	height     int
	frames     int
	seed       uint64
	colors     int
	saturation float64
	value      float64
	layer      string
	output     string
	format     string
	scale      int
	gifPath    string
	videoPath  string
	chartPath  string
	fps        int
	save       bool
	progress   bool
	metricList []string
	configFile string
	preset     string
	// preview flags
	generation int
	mode       string
	theme      string
	maxWidth   int
	// analysis flags
	maxGenerations int
	row, column    int
	seriesNames    []string
	pngPath        string
	jsonPath       string
	// sweep flags
	numSeeds    int
	seedStart   uint64
	colorCounts []int
)

// main registers the commands and runs the default render when no
// subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "torus",
		Short:         "toroidal color automaton renderer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderConfig(cmd.Context(), config.DefaultConfig(), nil, false)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultData, "run archive directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a run to pictures",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	addWorldFlags(renderCmd, sim.DefaultHeight)
	renderCmd.Flags().IntVar(&frames, "frames", sim.DefaultFrames, "generations to render (frames+1 pictures)")
	renderCmd.Flags().Float64Var(&saturation, "saturation", 0.75, "palette saturation")
	renderCmd.Flags().Float64Var(&value, "value", 1.0, "palette value")
	renderCmd.Flags().StringVar(&output, "output", config.DefaultOutput, "picture directory (emptied first)")
	renderCmd.Flags().StringVar(&format, "format", config.DefaultFormat, "picture format")
	renderCmd.Flags().IntVar(&scale, "scale", config.DefaultScale, "pixels per cell")
	renderCmd.Flags().StringVar(&gifPath, "gif", "", "also write an animated gif")
	renderCmd.Flags().StringVar(&videoPath, "video", "", "also write an mjpeg avi")
	renderCmd.Flags().StringVar(&chartPath, "chart", "", "also write a statistics chart png")
	renderCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "gif and video frame rate")
	renderCmd.Flags().BoolVar(&save, "save", false, "archive run statistics")
	renderCmd.Flags().BoolVar(&progress, "progress", false, "show a progress view")
	renderCmd.Flags().StringSliceVar(&metricList, "metrics", nil, "metrics to collect (default all)")
	renderCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	renderCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "show one generation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runPreview,
	}
	addWorldFlags(previewCmd, 16)
	previewCmd.Flags().IntVar(&generation, "generation", 0, "generation to show")
	previewCmd.Flags().StringVar(&mode, "mode", "blocks", "blocks or braille")
	previewCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "theme: "+strings.Join(viz.ThemeNames(), ", "))
	previewCmd.Flags().IntVar(&maxWidth, "width", 128, "maximum columns")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "archived runs",
	}
	runCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	})

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&seriesNames, "series", nil, "series: "+strings.Join(sim.SeriesNames, ", "))
	plotCmd.Flags().StringVar(&pngPath, "png", "", "write the chart to a png instead")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of run statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&jsonPath, "out", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run every render of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "compare runs across seeds or palette sizes",
	}
	seedsCmd := &cobra.Command{
		Use:   "seeds",
		Short: "render consecutive seeds and summarize metrics",
		Args:  cobra.NoArgs,
		RunE:  sweepSeeds,
	}
	addWorldFlags(seedsCmd, 32)
	seedsCmd.Flags().IntVar(&frames, "frames", sim.DefaultFrames, "generations per run")
	seedsCmd.Flags().IntVar(&numSeeds, "seeds", 8, "number of seeds")
	seedsCmd.Flags().Uint64Var(&seedStart, "start", 0, "first seed")
	colorsCmd := &cobra.Command{
		Use:   "colors",
		Short: "final population per palette size",
		Args:  cobra.NoArgs,
		RunE:  sweepColors,
	}
	addWorldFlags(colorsCmd, 32)
	colorsCmd.Flags().IntVar(&frames, "frames", sim.DefaultFrames, "generations per run")
	colorsCmd.Flags().IntSliceVar(&colorCounts, "counts", []int{2, 3, 4, 5, 7, 8, 16, 32}, "palette sizes")
	sweepCmd.AddCommand(seedsCmd, colorsCmd)

	cycleCmd := &cobra.Command{
		Use:   "cycle",
		Short: "find the first repeated state",
		Args:  cobra.NoArgs,
		RunE:  findCycle,
	}
	addWorldFlags(cycleCmd, 16)
	cycleCmd.Flags().IntVar(&maxGenerations, "max", 4096, "generations to search")

	divergeCmd := &cobra.Command{
		Use:   "diverge",
		Short: "track how a one-cell change spreads",
		Args:  cobra.NoArgs,
		RunE:  runDivergence,
	}
	addWorldFlags(divergeCmd, 32)
	divergeCmd.Flags().IntVar(&maxGenerations, "generations", 64, "generations to follow")
	divergeCmd.Flags().IntVar(&row, "row", 0, "perturbed row")
	divergeCmd.Flags().IntVar(&column, "col", 0, "perturbed column")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark generation throughput",
		Args:  cobra.NoArgs,
		RunE:  benchRender,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("torus %s\n", version)
		},
	}

	rootCmd.AddCommand(renderCmd, previewCmd, runCmd, showCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd,
		presetsCmd, batchCmd, sweepCmd, cycleCmd, divergeCmd, benchCmd, versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func addWorldFlags(cmd *cobra.Command, defaultHeight int) {
	cmd.Flags().IntVar(&height, "height", defaultHeight, "grid height (width is twice this)")
	cmd.Flags().Uint64Var(&seed, "seed", sim.DefaultSeed, "random seed")
	cmd.Flags().IntVar(&colors, "colors", 16, "palette size and color modulus")
	cmd.Flags().StringVar(&layer, "layer", string(sim.LayerTrace), "grid to draw: trace or state")
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

// worldConfig builds a simulation config from the shared world flags. The
// values are read from cmd because several commands bind the same variables
// with different defaults.
func worldConfig(cmd *cobra.Command) (sim.Config, error) {
	flags := cmd.Flags()
	h, err := flags.GetInt("height")
	if err != nil {
		return sim.Config{}, err
	}
	sd, err := flags.GetUint64("seed")
	if err != nil {
		return sim.Config{}, err
	}
	n, err := flags.GetInt("colors")
	if err != nil {
		return sim.Config{}, err
	}
	ls, err := flags.GetString("layer")
	if err != nil {
		return sim.Config{}, err
	}
	l, err := sim.ParseLayer(ls)
	if err != nil {
		return sim.Config{}, err
	}

	cfg := sim.DefaultConfig()
	cfg.Height = h
	cfg.Seed = sd
	cfg.Colors = n
	cfg.Layer = l
	return cfg, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	// config file overrides the preset, flags override both
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("colors") {
		cfg.Colors = colors
	}
	if flags.Changed("saturation") {
		cfg.Saturation = saturation
	}
	if flags.Changed("value") {
		cfg.Value = value
	}
	if flags.Changed("layer") {
		cfg.Layer = layer
	}
	if flags.Changed("output") {
		cfg.Output = output
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("scale") {
		cfg.Scale = scale
	}
	if flags.Changed("gif") {
		cfg.GIF = gifPath
	}
	if flags.Changed("video") {
		cfg.Video = videoPath
	}
	if flags.Changed("chart") {
		cfg.Chart = chartPath
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("save") {
		cfg.Save = save
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}

	return renderConfig(cmd.Context(), cfg, metricList, progress)
}

func renderConfig(ctx context.Context, cfg *config.Config, metricNames []string, showProgress bool) error {
	level := logLevel
	if showProgress {
		level = "warn"
	}
	logger, err := newLogger(level)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, experiment.WithLogger(logger))
	if err := exp.Setup(metricNames); err != nil {
		return err
	}

	var result *sim.Result
	if showProgress {
		result, err = renderWithProgress(ctx, exp, cfg.Frames+1)
	} else {
		result, err = exp.Run(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Printf("rendered %d pictures (%d generations) in %v\n", result.Frames, result.Generations, result.Elapsed.Round(time.Millisecond))
	if cfg.Output != "" {
		fmt.Printf("output: %s\n", cfg.Output)
	}

	if cfg.Save {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(exp.Params(), result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	if len(result.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		printMetrics(result.Metrics)
	}
	return nil
}

// renderWithProgress runs the render in its own goroutine while the
// progress view owns the terminal.
func renderWithProgress(ctx context.Context, exp *experiment.Experiment, total int) (*sim.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(viz.NewProgressModel("torus", total, cancel))

	var (
		result *sim.Result
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		nop := sim.SinkFunc(func(context.Context, sim.Frame) error { return nil })
		result, runErr = exp.Run(ctx, viz.NewProgressSink(nop, p.Send))
		p.Send(viz.DoneMsg{Result: result, Err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return nil, err
	}
	<-done
	return result, runErr
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := worldConfig(cmd)
	if err != nil {
		return err
	}
	s, err := sim.New(cfg)
	if err != nil {
		return err
	}
	if err := s.Advance(generation); err != nil {
		return err
	}

	viz.ApplyTheme(viz.GetTheme(theme))
	f := s.Frame(generation, cfg.Layer)

	var body string
	switch mode {
	case "blocks":
		body = viz.RenderGrid(f, maxWidth)
	case "braille":
		body = viz.CoverageCanvas(f).String()
	default:
		return fmt.Errorf("unknown preview mode: %s (available: blocks, braille)", mode)
	}

	header := viz.Title.Render(fmt.Sprintf("%s · generation %d · %dx%d · seed %d", cfg.Layer, generation, f.Height, f.Width, cfg.Seed))
	fmt.Println(viz.Panel.Render(header + "\n\n" + body + "\n" + viz.Legend(f)))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tHEIGHT\tFRAMES\tCOLORS\tLAYER\tFORMAT\tSCALE")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\t%d\n", name, p.Height, p.Frames, p.Colors, p.Layer, p.Format, p.Scale)
	}
	return w.Flush()
}

func findCycle(cmd *cobra.Command, args []string) error {
	cfg, err := worldConfig(cmd)
	if err != nil {
		return err
	}
	s, err := sim.New(cfg)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("max")
	start := time.Now()
	c, err := analysis.DetectCycle(s, limit)
	if err != nil {
		return err
	}

	if !c.Found {
		fmt.Printf("no repeated state within %d generations (%v)\n", c.Checked, time.Since(start).Round(time.Millisecond))
		return nil
	}
	fmt.Printf("state of generation %d repeats after %d generations\n", c.Start, c.Period)
	fmt.Printf("searched %d generations in %v\n", c.Checked, time.Since(start).Round(time.Millisecond))
	return nil
}

func runDivergence(cmd *cobra.Command, args []string) error {
	cfg, err := worldConfig(cmd)
	if err != nil {
		return err
	}
	s, err := sim.New(cfg)
	if err != nil {
		return err
	}

	steps, _ := cmd.Flags().GetInt("generations")
	distances, err := analysis.Divergence(s.Height(), s.Width(), s.StateColors(), s.Modulus(),
		automaton.Address{Row: row, Column: column}, steps)
	if err != nil {
		return err
	}

	data := make([]float64, len(distances))
	for i, d := range distances {
		data[i] = float64(d)
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("cells differing after bumping (%d,%d)", row, column)),
	)
	fmt.Println(graph)
	fmt.Printf("\nfinal: %d of %d cells\n", distances[len(distances)-1], s.Height()*s.Width())
	return nil
}

func benchRender(cmd *cobra.Command, args []string) error {
	heights := []int{16, 32, 64, 128}
	const benchFrames = 64
	discard := sim.SinkFunc(func(context.Context, sim.Frame) error { return nil })

	fmt.Printf("benchmarking %d generations per size\n\n", benchFrames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HEIGHT\tWIDTH\tCELLS\tTIME\tCELLS/SEC")

	for _, h := range heights {
		cfg := sim.DefaultConfig()
		cfg.Height = h
		s, err := sim.New(cfg)
		if err != nil {
			return err
		}

		result, err := s.Render(cmd.Context(), discard, benchFrames)
		if err != nil {
			return err
		}

		cells := s.Height() * s.Width()
		rate := float64(cells*result.Generations) / result.Elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n", s.Height(), s.Width(), cells, result.Elapsed.Round(time.Microsecond), rate)
	}

	return w.Flush()
}
