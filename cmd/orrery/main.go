// Command orrery runs a sun and its planets forward in time and shows the
// result in a window, in the terminal, or not at all.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/plus3/orrery/debugui"
	"github.com/plus3/orrery/render"
	"github.com/plus3/orrery/render/ebitenview"
	"github.com/plus3/orrery/render/term"
	"github.com/plus3/orrery/scenario"
	"github.com/plus3/orrery/sim"
)

type options struct {
	scenario   string
	renderer   string
	duration   float64
	step       float64
	scale      float64
	width      int
	height     int
	speed      int
	labels     bool
	debug      bool
	logLevel   string
	report     bool
	frameEvery int

	// set holds the names of flags given on the command line. Only those
	// override the scenario.
	set map[string]bool
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	opts := &options{set: map[string]bool{}}

	fs := flag.NewFlagSet("orrery", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.scenario, "scenario", "", "YAML or JSON scenario file. The built-in inner system is used when empty.")
	fs.StringVar(&opts.renderer, "renderer", "window", "Where to draw: window, term or none.")
	fs.Float64Var(&opts.duration, "duration", 0, "Simulated time to run for.")
	fs.Float64Var(&opts.step, "step", 0, "Step size in simulated time.")
	fs.Float64Var(&opts.scale, "scale", 0, "Window pixels per simulation unit.")
	fs.IntVar(&opts.width, "width", 0, "Window width in pixels.")
	fs.IntVar(&opts.height, "height", 0, "Window height in pixels.")
	fs.IntVar(&opts.speed, "speed", 1, "Simulation steps per window frame.")
	fs.BoolVar(&opts.labels, "labels", false, "Draw body names in the window.")
	fs.BoolVar(&opts.debug, "debug", false, "Show the ImGui inspector in the window.")
	fs.StringVar(&opts.logLevel, "log-level", "info", "Log level: trace, debug, info, warn or error.")
	fs.BoolVar(&opts.report, "report", false, "Print a run report when the simulation ends.")
	fs.IntVar(&opts.frameEvery, "frame-every", 10, "Steps between terminal frames.")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	switch opts.renderer {
	case "window", "term", "none":
	default:
		return nil, fmt.Errorf("unknown renderer %q", opts.renderer)
	}
	if opts.debug && opts.renderer != "window" {
		return nil, errors.New("-debug needs the window renderer")
	}
	return opts, nil
}

// loadScenario reads the scenario and applies command line overrides.
func loadScenario(opts *options) (*scenario.Scenario, error) {
	s := scenario.Default()
	if opts.scenario != "" {
		var err error
		if s, err = scenario.Load(opts.scenario); err != nil {
			return nil, err
		}
	}

	if opts.set["duration"] {
		s.Run.Duration = opts.duration
	}
	if opts.set["step"] {
		s.Run.StepSize = opts.step
	}
	if opts.set["scale"] {
		s.Surface.Scale = opts.scale
	}
	if opts.set["width"] {
		s.Surface.Width = opts.width
	}
	if opts.set["height"] {
		s.Surface.Height = opts.height
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func newLogger(level string, output io.Writer) (hclog.Logger, error) {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "orrery",
		Level:  lvl,
		Output: output,
		Color:  hclog.AutoColor,
	}), nil
}

func run(ctx context.Context, opts *options, stdout io.Writer, logger hclog.Logger) error {
	s, err := loadScenario(opts)
	if err != nil {
		return err
	}
	system, err := s.Build()
	if err != nil {
		return err
	}

	var renderer render.Renderer = render.Discard{}
	var surface *ebitenview.Surface
	switch opts.renderer {
	case "window":
		surface, err = ebitenview.Open(s.Surface, ebitenview.Options{
			Title:          "orrery: " + s.Name,
			StepsPerUpdate: opts.speed,
			Labels:         opts.labels,
		})
		if err != nil {
			return err
		}
		defer surface.Close()
		renderer = surface
	case "term":
		termOpts := term.DefaultOptions()
		termOpts.Every = opts.frameEvery
		renderer = term.New(stdout, termOpts)
	}

	monitor := &sim.OrbitMonitor{}
	driver, err := sim.NewDriver(s.Run, system, renderer,
		sim.WithLogger(logger.Named("driver")),
		sim.WithMonitor(monitor),
	)
	if err != nil {
		return err
	}

	report := &Report{
		Scenario:   s.Name,
		Config:     s.Run,
		Renderer:   opts.renderer,
		TotalSteps: driver.Config().Steps(),
	}
	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	if surface != nil {
		if opts.debug {
			overlay := debugui.NewOverlay("orrery", s.Surface.Width, s.Surface.Height)
			overlay.Add(debugui.NewInspector(driver, monitor, 240))
			surface.SetOverlay(overlay)
		}
		err = surface.Run(driver)
	} else {
		err = driver.Run(ctx)
	}
	if err != nil {
		return err
	}

	report.WallTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Steps, _ = driver.Steps()
	report.Elapsed = driver.Elapsed()
	report.Orbits = monitor.Records()
	report.Stages = driver.Stats().Stages

	if opts.report {
		return report.Generate(stdout)
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(1)
	}

	logger, err := newLogger(opts.logLevel, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout, logger); err != nil {
		logger.Error("run failed", "error", err)
		stop()
		os.Exit(1)
	}
}
