package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/apd/v3"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/dec"
	"github.com/san-kum/orrery/internal/geom"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/san-kum/orrery/internal/tui"
	"github.com/san-kum/orrery/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	atTime     float64
	save       bool
	// surface queries
	surfaceBody   string
	surfaceRadius float64
	// plot
	series  string
	from    float64
	span    float64
	samples int
	// live view
	stepSeconds float64
	frameRate   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orrery",
		Short: "exact decimal orbital kinematics",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orrery", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "advance a system to a point in time and report",
		RunE:  runSystem,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "system config file (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "sol", "built-in system")
	runCmd.Flags().Float64Var(&atTime, "at", 123123, "simulation time in seconds")
	runCmd.Flags().StringVar(&surfaceBody, "surface-body", "earth", "body for surface queries")
	runCmd.Flags().Float64Var(&surfaceRadius, "surface-radius", 6371000, "surface point offset in meters")
	runCmd.Flags().BoolVar(&save, "save", false, "store a snapshot run")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "chart a derived quantity over a time span",
		RunE:  plotSeries,
	}
	plotCmd.Flags().StringVar(&configFile, "config", "", "system config file (yaml)")
	plotCmd.Flags().StringVar(&preset, "preset", "sol", "built-in system")
	plotCmd.Flags().StringVar(&series, "series", "flux", "series: flux, separation, speed")
	plotCmd.Flags().StringVar(&surfaceBody, "body", "earth", "body the series is computed for")
	plotCmd.Flags().Float64Var(&surfaceRadius, "surface-radius", 6371000, "surface point offset in meters (flux)")
	plotCmd.Flags().Float64Var(&from, "from", 0, "start time in seconds")
	plotCmd.Flags().Float64Var(&span, "span", 31536000, "time span in seconds")
	plotCmd.Flags().IntVar(&samples, "samples", 120, "number of samples")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored snapshot runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "live terminal view of a system",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "system config file (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "sol", "built-in system")
	liveCmd.Flags().Float64Var(&atTime, "at", 0, "start time in seconds")
	liveCmd.Flags().Float64Var(&stepSeconds, "step", 3600, "simulated seconds per frame")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in systems",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, plotCmd, listCmd, exportCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadSystem() (*config.SystemSpec, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	spec := config.GetPreset(preset)
	if spec == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	return spec, nil
}

func buildSimulation(spec *config.SystemSpec) (*sim.Simulation, error) {
	bodies, err := spec.ToBodies()
	if err != nil {
		return nil, err
	}
	s := sim.New()
	for _, b := range bodies {
		s.AddHierarchy(b, sim.NoParent)
	}
	return s, nil
}

func runSystem(cmd *cobra.Command, args []string) error {
	spec, err := loadSystem()
	if err != nil {
		return err
	}
	simulation, err := buildSimulation(spec)
	if err != nil {
		return err
	}

	t := dec.FromFloat(atTime)
	start := time.Now()
	if err := simulation.Update(t); err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println(viz.Title.Render(fmt.Sprintf("%s @ t=%ss", spec.Name, t.String())))
	fmt.Println(viz.Subtle.Render(fmt.Sprintf("updated %d bodies in %v", len(simulation.Bodies()), elapsed)))
	for _, sb := range simulation.Bodies() {
		speed, _ := sb.Velocity.Length().Float64()
		fmt.Println(viz.Value.Render("  " + sb.Body.Name))
		fmt.Println(viz.Label.Render("    position: ") + sb.Position.String())
		fmt.Println(viz.Label.Render("    speed:    ") + fmt.Sprintf("%.4f m/s", speed))
	}

	if err := reportSurface(cmd, simulation); err != nil {
		return err
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(spec.Name, t, simulation)
		if err != nil {
			return err
		}
		fmt.Println(viz.Subtle.Render("saved run " + runID))
	}
	return nil
}

// reportSurface prints the gravity-flux and surface-velocity report for the
// chosen body. When the default body name is absent from a custom system the
// section is skipped rather than failing the run.
func reportSurface(cmd *cobra.Command, simulation *sim.Simulation) error {
	target, err := simulation.Body(surfaceBody)
	if err != nil {
		if cmd.Flags().Changed("surface-body") {
			return err
		}
		return nil
	}

	offset := geom.FromFloats(surfaceRadius, 0, 0)

	flux, err := simulation.GravityFlux(target.Position.Add(offset))
	if err != nil {
		return err
	}
	fluxMag, _ := flux.Length().Float64()

	surfVel, err := simulation.SurfaceVelocity(surfaceBody, offset)
	if err != nil {
		return err
	}
	surfMag, _ := surfVel.Length().Float64()

	fmt.Println(viz.Panel.Render(
		viz.KV("gravity flux at surface", fmt.Sprintf("%.4f m/s^2", fluxMag)) + "\n" +
			viz.KV("surface velocity", fmt.Sprintf("%.4f m/s", surfMag))))
	return nil
}

func plotSeries(cmd *cobra.Command, args []string) error {
	spec, err := loadSystem()
	if err != nil {
		return err
	}
	simulation, err := buildSimulation(spec)
	if err != nil {
		return err
	}
	if samples < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", samples)
	}

	target, err := simulation.Body(surfaceBody)
	if err != nil {
		return err
	}
	offset := geom.FromFloats(surfaceRadius, 0, 0)

	data := make([]float64, 0, samples)
	for i := 0; i < samples; i++ {
		t := dec.FromFloat(from + span*float64(i)/float64(samples-1))
		if err := simulation.Update(t); err != nil {
			return err
		}

		var value *apd.Decimal
		switch series {
		case "flux":
			flux, err := simulation.GravityFlux(target.Position.Add(offset))
			if err != nil {
				return err
			}
			value = flux.Length()
		case "separation":
			parent, err := simulation.BodyByID(target.Parent)
			if err != nil {
				return err
			}
			value = target.Position.DistanceTo(parent.Position)
		case "speed":
			value = target.Velocity.Length()
		default:
			return fmt.Errorf("unknown series: %s", series)
		}

		f, _ := value.Float64()
		data = append(data, f)
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s of %s over %.0fs", series, surfaceBody, span)),
	)
	fmt.Println(graph)
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
	fmt.Fprintln(w, "ID\tSYSTEM\tSIM TIME\tBODIES\tSAVED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%ss\t%d\t%s\n",
			run.ID,
			run.System,
			run.SimTime,
			run.Bodies,
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
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

func runLive(cmd *cobra.Command, args []string) error {
	spec, err := loadSystem()
	if err != nil {
		return err
	}
	simulation, err := buildSimulation(spec)
	if err != nil {
		return err
	}

	start := dec.FromFloat(atTime)
	if err := simulation.Update(start); err != nil {
		return err
	}

	model := tui.New(simulation, start, dec.FromFloat(stepSeconds), frameRate)
	_, err = tea.NewProgram(model).Run()
	return err
}
