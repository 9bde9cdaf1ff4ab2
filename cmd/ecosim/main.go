package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ecosim/internal/batch"
	"github.com/san-kum/ecosim/internal/config"
	"github.com/san-kum/ecosim/internal/eco"
	"github.com/san-kum/ecosim/internal/experiment"
	"github.com/san-kum/ecosim/internal/export"
	"github.com/san-kum/ecosim/internal/integrators"
	"github.com/san-kum/ecosim/internal/metrics"
	"github.com/san-kum/ecosim/internal/storage"
	"github.com/san-kum/ecosim/internal/stream"
	"github.com/san-kum/ecosim/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	dt         float64
	duration   float64
	rate       float64
	integrator string
	species    int
	frameRate  int
	speed      float64
	addr       string
	runs       int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ecosim",
		Short: "stochastic mutualistic-network population simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ecosim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store the result",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "integration timestep (0 = from config)")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration (0 = from config)")
	runCmd.Flags().Float64Var(&rate, "rate", -1, "hurricane rate (-1 = from config)")
	runCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (rk4, euler)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "integration timestep (0 = from config)")
	liveCmd.Flags().Float64Var(&rate, "rate", -1, "hurricane rate (-1 = from config)")
	liveCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (rk4, euler)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().Float64Var(&speed, "speed", 1.0, "simulated time units per second")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream simulation frames to websocket clients",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8793", "listen address")
	serveCmd.Flags().IntVar(&frameRate, "fps", 20, "frames per second")
	serveCmd.Flags().Float64Var(&speed, "speed", 1.0, "simulated time units per second")
	serveCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (rk4, euler)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run replicates under consecutive seeds and report ensemble statistics",
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&runs, "runs", 20, "number of replicates")
	sweepCmd.Flags().Float64Var(&dt, "dt", 0, "integration timestep (0 = from config)")
	sweepCmd.Flags().Float64Var(&duration, "time", 0, "duration (0 = from config)")
	sweepCmd.Flags().Float64Var(&rate, "rate", -1, "hurricane rate (-1 = from config)")
	sweepCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (rk4, euler)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&species, "species", -1, "species index (-1 = total biomass)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored run to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored run as an SVG plot on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, serveCmd, sweepCmd, listCmd, plotCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves preset, config file and flag overrides, in that
// order of increasing precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
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

	if cmd.Flags().Changed("dt") && dt > 0 {
		cfg.Simulation.Dt = dt
	}
	if cmd.Flags().Changed("time") && duration > 0 {
		cfg.Simulation.Duration = duration
	}
	if cmd.Flags().Changed("rate") && rate >= 0 {
		cfg.Hurricanes.Rate = rate
	}
	return cfg, nil
}

func resolveSeed(cfg *config.Config) int64 {
	if seed != 0 {
		return seed
	}
	if cfg.Simulation.Seed != 0 {
		return cfg.Simulation.Seed
	}
	return time.Now().UnixNano()
}

func getStepper(name string) (eco.Stepper, error) {
	switch name {
	case "rk4":
		return integrators.NewRK4(), nil
	case "euler":
		return integrators.NewEuler(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	stepper, err := getStepper(integrator)
	if err != nil {
		return err
	}

	runSeed := resolveSeed(cfg)
	x, err := experiment.New(cfg, runSeed, stepper)
	if err != nil {
		return err
	}

	fmt.Printf("simulating %d species for %.1f time units (seed %d)...\n",
		x.Species, cfg.Simulation.Duration, runSeed)
	start := time.Now()
	x.Run(cfg.Simulation.Duration)
	elapsed := time.Since(start)

	history := x.Eng.History()
	ms := metrics.Defaults()
	for _, s := range history {
		metrics.ObserveAll(ms, s.N, s.T)
	}
	metricValues := make(map[string]float64, len(ms))
	for _, m := range ms {
		metricValues[m.Name()] = m.Value()
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Seed:          runSeed,
		Topology:      x.Topology,
		Species:       x.Species,
		Dt:            cfg.Simulation.Dt,
		Duration:      cfg.Simulation.Duration,
		HurricaneRate: cfg.Hurricanes.Rate,
		Extinct:       x.Eng.Extinct(),
		Metrics:       metricValues,
	}, history, x.Eng.Events())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(history))
	fmt.Printf("hurricanes: %d\n", len(x.Eng.Events()))
	fmt.Printf("extinctions: %d\n", len(x.Eng.Extinct()))
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(metricValues))
	for name := range metricValues {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, metricValues[name])
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	stepper, err := getStepper(integrator)
	if err != nil {
		return err
	}
	x, err := experiment.New(cfg, resolveSeed(cfg), stepper)
	if err != nil {
		return err
	}
	return tui.Run(x.Eng, frameRate, speed)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	stepper, err := getStepper(integrator)
	if err != nil {
		return err
	}
	x, err := experiment.New(cfg, resolveSeed(cfg), stepper)
	if err != nil {
		return err
	}

	hub := stream.NewHub()
	defer hub.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintln(os.Stderr, err)
		}
	}()
	fmt.Printf("streaming on ws://%s/ws\n", addr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	ticker := time.NewTicker(time.Second / time.Duration(frameRate))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return srv.Close()
		case <-ticker.C:
			ev, hit := x.Eng.Step(speed / float64(frameRate))
			frame := stream.Frame{
				T:           x.Eng.Time(),
				Populations: x.Eng.Populations(),
				Extinct:     x.Eng.Extinct(),
			}
			if hit {
				frame.Event = &stream.FrameEvent{T: ev.T, Label: ev.Label, Damage: ev.Damage}
			}
			hub.Broadcast(frame)
		}
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	factory := func() eco.Stepper {
		s, _ := getStepper(integrator)
		return s
	}
	if _, err := getStepper(integrator); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	seedStart := resolveSeed(cfg)
	fmt.Printf("sweeping %d replicates, seeds %d..%d...\n", runs, seedStart, seedStart+int64(runs)-1)
	start := time.Now()
	results, err := batch.New(cfg, factory, seedStart, runs).Run(ctx)
	if err != nil {
		return err
	}
	sum := batch.Summarize(results)

	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Printf("runs:                   %d\n", sum.Runs)
	fmt.Printf("extinction probability: %.3f\n", sum.ExtinctionProb)
	fmt.Printf("mean survivors:         %.2f\n", sum.MeanSurvivors)
	fmt.Printf("mean biomass:           %.4f\n", sum.MeanBiomass)
	fmt.Printf("mean hurricanes:        %.2f\n", sum.MeanHurricanes)
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTOPOLOGY\tSPECIES\tTIME\tDURATION\tRATE\tSTORMS\tEXTINCT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%.1f\t%.3f\t%d\t%d\n",
			run.ID,
			run.Topology,
			run.Species,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.HurricaneRate,
			run.Hurricanes,
			len(run.Extinct),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	history, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return fmt.Errorf("run %s has no samples", args[0])
	}

	var data []float64
	var caption string
	if species >= 0 {
		if species >= len(history[0].N) {
			return fmt.Errorf("species %d out of range (run has %d)", species, len(history[0].N))
		}
		for _, s := range history {
			data = append(data, s.N[species])
		}
		caption = "species " + strconv.Itoa(species)
	} else {
		for _, s := range history {
			data = append(data, s.N.Total())
		}
		caption = "total biomass"
	}

	fmt.Println(asciigraph.Plot(data, asciigraph.Height(15), asciigraph.Width(80), asciigraph.Caption(caption)))

	events, err := st.LoadEvents(args[0])
	if err == nil && len(events) > 0 {
		fmt.Println("\nhurricanes:")
		for _, ev := range events {
			fmt.Printf("  t=%8.3f  %-6s damage %.0f%%\n", ev.T, ev.Label, ev.Damage*100)
		}
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	history, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, history)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	history, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}
	events, err := st.LoadEvents(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, history, events)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	history, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}
	events, err := st.LoadEvents(args[0])
	if err != nil {
		return err
	}
	return export.WriteSVG(os.Stdout, history, events, 960, 480)
}
