// Package sim drives a solar system through time: it validates the run
// settings, ticks the system forward one step at a time and keeps a
// renderer in sync with the result.
package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/plus3/orrery/render"
	"github.com/plus3/orrery/solar"
)

// ErrNoSystem is returned by NewDriver when given a nil system.
var ErrNoSystem = errors.New("driver needs a system")

// State is the position of a Driver in its lifecycle.
type State int

const (
	Running State = iota
	Done
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Option customises a Driver.
type Option func(*Driver)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger hclog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithMonitor adds an OrbitMonitor after the integration stage.
func WithMonitor(monitor *OrbitMonitor) Option {
	return func(d *Driver) {
		d.monitor = monitor
	}
}

// WithStage appends an extra stage after the built-in ones.
func WithStage(stage Stage) Option {
	return func(d *Driver) {
		d.extra = append(d.extra, stage)
	}
}

// Driver runs a System for Config.Duration of simulation time, notifying a
// renderer after every step.
type Driver struct {
	config    Config
	system    *solar.System
	renderer  render.Renderer
	scheduler *Scheduler
	monitor   *OrbitMonitor
	extra     []Stage
	logger    hclog.Logger

	state      State
	started    bool
	step       int64
	totalSteps int64
}

// NewDriver validates config and wires the stages. The system must have a
// sun by the time Start is called.
func NewDriver(config Config, system *solar.System, renderer render.Renderer, opts ...Option) (*Driver, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if system == nil {
		return nil, ErrNoSystem
	}
	if renderer == nil {
		renderer = render.Discard{}
	}

	d := &Driver{
		config:     config,
		system:     system,
		renderer:   renderer,
		logger:     hclog.NewNullLogger(),
		state:      Running,
		totalSteps: config.Steps(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.scheduler = NewScheduler(system)
	d.scheduler.Register(IntegrateStage{})
	if d.monitor != nil {
		d.scheduler.Register(d.monitor)
	}
	for _, stage := range d.extra {
		d.scheduler.Register(stage)
	}
	d.scheduler.Register(&RenderStage{Renderer: renderer})

	return d, nil
}

// Start registers the sun and then every planet with the renderer.
// Tick and Run call it on first use.
func (d *Driver) Start() error {
	if d.started {
		return nil
	}

	sun, ok := d.system.Sun()
	if !ok {
		return solar.ErrMissingAttractor
	}

	if err := d.renderer.Register(render.SunBody(sun)); err != nil {
		return fmt.Errorf("register %s: %w", sun.Name, err)
	}
	for id, planet := range d.system.Planets() {
		if err := d.renderer.Register(render.PlanetBody(id, planet)); err != nil {
			return fmt.Errorf("register %s: %w", planet.Name, err)
		}
	}

	if d.monitor != nil {
		if err := d.monitor.Observe(d.system); err != nil {
			return err
		}
	}

	d.started = true
	stats := d.system.CollectStats()
	d.logger.Info("simulation started",
		"sun", sun.Name,
		"planets", stats.PlanetCount,
		"min_radius", stats.MinRadius,
		"max_radius", stats.MaxRadius,
		"duration", d.config.Duration,
		"step_size", d.config.StepSize,
		"steps", d.totalSteps,
	)
	return nil
}

// Tick advances the simulation by one step. Once Done it does nothing.
func (d *Driver) Tick() (State, error) {
	if d.state == Done {
		return Done, nil
	}
	if err := d.Start(); err != nil {
		return d.state, err
	}

	if err := d.scheduler.Once(d.config.StepSize, d.Elapsed(), d.step); err != nil {
		return d.state, fmt.Errorf("step %d: %w", d.step, err)
	}
	d.step++

	if d.step%1000 == 0 {
		d.logger.Debug("progress", "step", d.step, "elapsed", d.Elapsed())
	}

	if d.step >= d.totalSteps {
		d.state = Done
		d.logger.Info("simulation finished", "steps", d.step, "elapsed", d.Elapsed())
	}
	return d.state, nil
}

// Run ticks until the run is done, a step fails, or ctx is cancelled.
// Cancellation is only noticed between ticks.
func (d *Driver) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			d.logger.Warn("simulation cancelled", "step", d.step, "elapsed", d.Elapsed())
			return err
		}

		state, err := d.Tick()
		if err != nil {
			d.logger.Error("simulation failed", "step", d.step, "error", err)
			return err
		}
		if state == Done {
			return nil
		}
	}
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// Elapsed is simulated time so far.
func (d *Driver) Elapsed() float64 {
	return float64(d.step) * d.config.StepSize
}

// Steps returns completed and total step counts.
func (d *Driver) Steps() (int64, int64) {
	return d.step, d.totalSteps
}

// Config returns the run settings.
func (d *Driver) Config() Config {
	return d.config
}

// System returns the simulated system.
func (d *Driver) System() *solar.System {
	return d.system
}

// Stats returns per-stage timing.
func (d *Driver) Stats() *SchedulerStats {
	return d.scheduler.GetStats()
}
