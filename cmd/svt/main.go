package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/omni-webdev/svt/internal/analysis"
	"github.com/omni-webdev/svt/internal/config"
	"github.com/omni-webdev/svt/internal/export"
	"github.com/omni-webdev/svt/internal/orbit"
	"github.com/omni-webdev/svt/internal/report"
	"github.com/omni-webdev/svt/internal/sim"
	"github.com/omni-webdev/svt/internal/storage"
	"github.com/omni-webdev/svt/internal/viz"
)

var (
	dataDir     string
	configFile  string
	frames      int
	epsilon     float64
	energyScale float64
	parallel    bool
	workers     int
	// orbit flags
	lawName string
	days    int
	dtDays  float64
	vscale  float64
	svgOut  string
	// live/export flags
	frameRate int
	outFile   string
	svgScale  float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "svt",
		Short: "space-vortex field simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".svt", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a field scenario and save its per-frame statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario config file (yaml)")
	runCmd.Flags().IntVar(&frames, "frames", 0, "override frame count")
	runCmd.Flags().Float64Var(&epsilon, "epsilon", 0, "override regularization epsilon")
	runCmd.Flags().Float64Var(&energyScale, "energy-scale", 0, "override energy normalization factor")
	runCmd.Flags().BoolVar(&parallel, "parallel", false, "evaluate frames concurrently")
	runCmd.Flags().IntVar(&workers, "workers", 0, "worker count for --parallel (0 = NumCPU)")

	orbitCmd := &cobra.Command{
		Use:   "orbit [planet]",
		Short: "integrate a planetary trajectory with velocity-Verlet",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runOrbit,
	}
	orbitCmd.Flags().StringVar(&lawName, "law", "newtonian", "force law: newtonian, svt, relativistic")
	orbitCmd.Flags().IntVar(&days, "days", 365, "number of day-long steps")
	orbitCmd.Flags().Float64Var(&dtDays, "dt", 1.0, "timestep in days")
	orbitCmd.Flags().Float64Var(&vscale, "vscale", 0, "initial speed as a fraction of circular (0 = law default)")
	orbitCmd.Flags().StringVar(&svgOut, "svg", "", "also write the trajectory as SVG to this path")

	compareCmd := &cobra.Command{
		Use:   "compare [planet]",
		Short: "compare force laws on the same planet",
		Args:  cobra.ExactArgs(1),
		RunE:  compareLaws,
	}
	compareCmd.Flags().IntVar(&days, "days", 365, "number of day-long steps")
	compareCmd.Flags().Float64Var(&dtDays, "dt", 1.0, "timestep in days")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's statistics in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "power spectrum of the energy log",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	reportCmd := &cobra.Command{
		Use:   "report [preset]",
		Short: "run a scenario and print the comparative report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  reportScenario,
	}
	reportCmd.Flags().StringVar(&configFile, "config", "", "scenario config file (yaml)")
	reportCmd.Flags().BoolVar(&parallel, "parallel", false, "evaluate frames concurrently")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "dump a field run's statistics to stdout as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "dump a field run's statistics to stdout as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [preset]",
		Short: "render a scenario's final energy field as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&configFile, "config", "", "scenario config file (yaml)")
	exportSVGCmd.Flags().StringVar(&outFile, "out", "field.svg", "output path")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 4, "pixels per canvas dot")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "animate a scenario in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "scenario config file (yaml)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 10, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, orbitCmd, compareCmd, listCmd, plotCmd, analyzeCmd,
		reportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScenario resolves a scenario from a preset name and/or a config
// file, applying any flag overrides.
func loadScenario(args []string) (*sim.Scenario, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	case len(args) > 0:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)",
				args[0], strings.Join(config.ListPresets(), ", "))
		}
	default:
		cfg = config.GetPreset("h2o")
	}

	if frames > 0 {
		cfg.Frames = frames
	}
	if epsilon > 0 {
		cfg.Epsilon = epsilon
	}
	if energyScale > 0 {
		cfg.EnergyScale = energyScale
	}
	return cfg.Build()
}

func execute(sc *sim.Scenario) (*sim.Result, error) {
	ctx := context.Background()
	if parallel {
		return sim.RunParallel(ctx, sc, workers)
	}
	return sim.Run(ctx, sc)
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s (%d frames, grid %v)...\n", sc.Name, sc.Frames, sc.Grid.Shape())
	start := time.Now()

	result, err := execute(sc)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.SaveField(result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Println("\nsummary:")
	printSummary(result.Stats.Summary())
	return nil
}

func printSummary(summary map[string]float64) {
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s: %.6g\n", k, summary[k])
	}
}

func buildLaw(name string) (orbit.ForceLaw, float64, error) {
	// Each law pairs with the initial-speed scaling its reference
	// scenario used.
	switch name {
	case "newtonian":
		return orbit.Newtonian{GM: orbit.GSun}, 1.0, nil
	case "svt":
		return orbit.Softened{GM: orbit.GSun, Soft: orbit.SVTSoft}, 0.95, nil
	case "relativistic":
		return orbit.Relativistic{GM: orbit.GSun, C: orbit.C}, 1.03, nil
	default:
		return nil, 0, fmt.Errorf("unknown force law %q", name)
	}
}

func runOrbit(cmd *cobra.Command, args []string) error {
	name := "Earth"
	if len(args) > 0 {
		name = args[0]
	}
	p, ok := orbit.ByName(name)
	if !ok {
		return fmt.Errorf("unknown planet %q", name)
	}

	law, defaultScale, err := buildLaw(lawName)
	if err != nil {
		return err
	}
	scale := vscale
	if scale == 0 {
		scale = defaultScale
	}

	pos, vel := p.InitialState(scale)
	dt := dtDays * orbit.DaySecs
	traj, err := orbit.IntegrateVerlet(pos, vel, law, days, dt)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.SaveTrajectory(p.Name, lawName, dt, traj)
	if err != nil {
		return err
	}

	final := traj[len(traj)-1]
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(traj)-1)
	fmt.Printf("final radius: %.4f AU\n", final.Pos.Norm()/orbit.AU)
	fmt.Printf("final speed: %.3f km/s\n", final.Vel.Norm()/1000)

	if svgOut != "" {
		svg := export.TrajectoryToSVG(traj.Positions(), 800, 800, "#44aaff")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("trajectory svg: %s\n", svgOut)
	}
	return nil
}

func compareLaws(cmd *cobra.Command, args []string) error {
	p, ok := orbit.ByName(args[0])
	if !ok {
		return fmt.Errorf("unknown planet %q", args[0])
	}

	dt := dtDays * orbit.DaySecs
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LAW\tFINAL RADIUS (AU)\tFINAL SPEED (KM/S)\tSTEPS")

	for _, name := range []string{"newtonian", "relativistic", "svt"} {
		law, scale, err := buildLaw(name)
		if err != nil {
			return err
		}
		pos, vel := p.InitialState(scale)
		traj, err := orbit.IntegrateVerlet(pos, vel, law, days, dt)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\n", name, err)
			continue
		}
		final := traj[len(traj)-1]
		fmt.Fprintf(w, "%s\t%.4f\t%.3f\t%d\n",
			name, final.Pos.Norm()/orbit.AU, final.Vel.Norm()/1000, len(traj)-1)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tKIND\tSCENARIO\tTIME\tFRAMES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			run.ID, run.Kind, run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"), run.Frames)
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

	if meta.Kind == "orbit" {
		traj, err := st.LoadTrajectory(runID)
		if err != nil {
			return err
		}
		canvas := viz.NewCanvas(70, 22)
		canvas.DrawTrajectory(traj.Positions())
		fmt.Printf("orbit: %s\n\n", meta.Scenario)
		fmt.Print(canvas.String())
		return nil
	}

	energy, peak, _, err := st.LoadStats(runID)
	if err != nil {
		return err
	}
	if len(energy) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\nscenario: %s\nframes: %d\n\n", meta.ID, meta.Scenario, len(energy))
	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.Caption("total energy per frame")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(peak,
		asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.Caption("peak distance per frame")))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	energy, _, _, err := st.LoadStats(runID)
	if err != nil {
		return err
	}
	if len(energy) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	ps := analysis.PowerSpectrum(energy)
	plotData := ps
	if len(ps) > 4 {
		plotData = ps[:len(ps)/4]
	}
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(12), asciigraph.Width(80),
		asciigraph.Caption("power spectrum (total energy)")))

	freq := analysis.DominantFrequency(energy)
	fmt.Printf("\ndominant frequency: %.4f cycles/frame\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.1f frames\n", 1/freq)
	}
	return nil
}

func reportScenario(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(args)
	if err != nil {
		return err
	}

	result, err := execute(sc)
	if err != nil {
		return err
	}

	summary := report.Summarize(result)
	fmt.Println(summary.Render())

	if profile := result.Stats.FinalProfile(); len(profile) > 1 {
		fmt.Println(asciigraph.Plot(profile,
			asciigraph.Height(10), asciigraph.Width(80),
			asciigraph.Caption("final radial energy profile")))
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	energy, peak, centroids, err := st.LoadStats(runID)
	if err != nil {
		return err
	}

	header := "frame,total_energy,peak_distance"
	if len(centroids) > 0 {
		for d := range centroids[0] {
			header += fmt.Sprintf(",centroid_%c", 'x'+d)
		}
	}
	fmt.Println(header)
	for i := range energy {
		fmt.Printf("%d,%g,%g", i, energy[i], peak[i])
		for _, c := range centroids[i] {
			fmt.Printf(",%g", c)
		}
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	energy, peak, centroids, err := st.LoadStats(runID)
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta, energy, peak, centroids)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(args)
	if err != nil {
		return err
	}

	frame, err := sim.EvalFrame(sc, sc.Frames-1)
	if err != nil {
		return err
	}

	canvas := viz.NewCanvas(100, 40)
	canvas.DrawEnergy(frame.Energy)
	svg := export.CanvasToSVG(canvas, svgScale)
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", outFile)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(args)
	if err != nil {
		return err
	}
	m := viz.NewModel(sc, frameRate)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
