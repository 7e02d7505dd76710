package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/torus/internal/analysis"
	"github.com/san-kum/torus/internal/automation"
	"github.com/san-kum/torus/internal/config"
	"github.com/san-kum/torus/internal/export"
	"github.com/san-kum/torus/internal/sim"
	"github.com/san-kum/torus/internal/storage"
	"github.com/san-kum/torus/internal/viz"
	"github.com/spf13/cobra"
)

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
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tSEED\tCOLORS\tFRAMES\tLAYER")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.Height,
			run.Params.Width,
			run.Params.Seed,
			run.Params.Colors,
			run.Params.Frames,
			run.Params.Layer,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.Result(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "id\t%s\n", meta.ID)
	fmt.Fprintf(w, "time\t%s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "size\t%dx%d\n", meta.Params.Height, meta.Params.Width)
	fmt.Fprintf(w, "seed\t%d\n", meta.Params.Seed)
	fmt.Fprintf(w, "colors\t%d\n", meta.Params.Colors)
	fmt.Fprintf(w, "layer\t%s\n", meta.Params.Layer)
	fmt.Fprintf(w, "pictures\t%d\n", result.Frames)
	fmt.Fprintf(w, "generations\t%d\n", meta.Generations)
	fmt.Fprintf(w, "elapsed\t%dms\n", meta.ElapsedMS)
	if meta.Params.Output != "" {
		fmt.Fprintf(w, "output\t%s (%s)\n", meta.Params.Output, meta.Params.Format)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if trace, err := result.Series("trace"); err == nil && len(trace) > 1 {
		fmt.Println("\ntrace " + viz.Sparkline(trace, 60))
	}
	if len(meta.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		printMetrics(meta.Metrics)
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.Result(args[0])
	if err != nil {
		return err
	}

	if len(result.Samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	if pngPath != "" {
		if err := export.WriteChart(pngPath, result, seriesNames...); err != nil {
			return err
		}
		fmt.Printf("chart written to %s\n", pngPath)
		return nil
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(result.Samples))

	graph, err := viz.PlotSeries(result, seriesNames, 80, 12)
	if err != nil {
		return err
	}
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.Result(args[0])
	if err != nil {
		return err
	}

	if len(result.Samples) < 4 {
		return fmt.Errorf("not enough samples for analysis: %d", len(result.Samples))
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	state, _ := result.Series("state")
	ps := analysis.PowerSpectrum(state)
	if len(ps) > 2 {
		graph := asciigraph.Plot(ps[1:],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (state population)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tDOMINANT PERIOD")
	for _, name := range sim.SeriesNames {
		series, err := result.Series(name)
		if err != nil {
			return err
		}
		if period, ok := analysis.DominantPeriod(series); ok {
			fmt.Fprintf(w, "%s\t%.2f frames\n", name, period)
		} else {
			fmt.Fprintf(w, "%s\t-\n", name)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	trace, _ := result.Series("trace")
	portrait, err := analysis.NewPortrait(state, trace)
	if err != nil {
		return err
	}
	fmt.Println("\nstate population (x) against trace coverage (y):")
	fmt.Print(portrait.ASCII(60, 15))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.WriteSamplesCSV(os.Stdout, samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.Result(args[0])
	if err != nil {
		return err
	}

	if jsonPath != "" {
		if err := storage.ExportJSON(jsonPath, meta.Params, result); err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", jsonPath)
		return nil
	}
	return storage.EncodeJSON(os.Stdout, meta.Params, result)
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger, err := newLogger(logLevel)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d runs\n", scenario.Name, len(scenario.Runs))
	outcomes, err := automation.RunScenario(cmd.Context(), scenario, logger, st)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tPICTURES\tGENERATIONS\tELAPSED\tRUN ID")
	for _, o := range outcomes {
		id := o.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%s\n", o.Name, o.Result.Frames, o.Result.Generations, o.Result.Elapsed, id)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func sweepSeeds(cmd *cobra.Command, args []string) error {
	simCfg, err := worldConfig(cmd)
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("frames")

	base := config.DefaultConfig()
	base.Height = simCfg.Height
	base.Colors = simCfg.Colors
	base.Layer = string(simCfg.Layer)
	base.Frames = n
	base.Output = ""

	results, err := automation.RunSweep(cmd.Context(), &automation.SeedSweep{Base: base, NumSeeds: numSeeds, SeedStart: seedStart})
	if err != nil {
		return err
	}

	stats := automation.SweepStats(results)
	names := make([]string, len(stats))
	for i, st := range stats {
		names[i] = strings.ToUpper(st.Name)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\t"+strings.Join(names, "\t"))
	for _, r := range results {
		row := []string{fmt.Sprintf("%d", r.Seed)}
		for _, st := range stats {
			row = append(row, fmt.Sprintf("%.4f", r.Metrics[st.Name]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tMIN\tMAX")
	for _, st := range stats {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f (seed %d)\t%.4f (seed %d)\n", st.Name, st.Mean, st.Min, st.MinSeed, st.Max, st.MaxSeed)
	}
	return w.Flush()
}

func sweepColors(cmd *cobra.Command, args []string) error {
	simCfg, err := worldConfig(cmd)
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("frames")

	points, err := analysis.ModulusSweep(simCfg, colorCounts, n)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLORS\tPOPULATION\tTRACE COVERAGE")
	for _, p := range points {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\n", p.Colors, p.Population, p.TraceCoverage)
	}
	return w.Flush()
}
