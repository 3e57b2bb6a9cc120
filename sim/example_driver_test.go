package sim_test

import (
	"context"
	"fmt"
	"math"

	"github.com/plus3/orrery/physics"
	"github.com/plus3/orrery/render"
	"github.com/plus3/orrery/sim"
	"github.com/plus3/orrery/solar"
)

// ExampleDriver runs a single planet around a heavy sun. The driver
// registers every body with the renderer, then steps the system and
// repositions the planets until the configured duration has elapsed.
func ExampleDriver() {
	system := solar.NewSystem()

	sun, _ := solar.NewSun("Sun", 1000, 3, physics.Vec2{})
	system.SetSun(sun)

	earth, _ := solar.NewPlanet("Earth", 1, 1.5, physics.Vec2{X: 2}, physics.Vec2{Y: math.Sqrt(500)})
	earthId := system.AddPlanet(earth)

	recorder := render.NewRecorder()
	driver, err := sim.NewDriver(sim.Config{Duration: 0.01, StepSize: 0.01}, system, recorder)
	if err != nil {
		panic(err)
	}

	if err := driver.Run(context.Background()); err != nil {
		panic(err)
	}

	earth = system.Planet(earthId)
	fmt.Printf("state: %s after %.2f\n", driver.State(), driver.Elapsed())
	fmt.Printf("velocity: (%.4f, %.4f)\n", earth.Velocity.X, earth.Velocity.Y)
	fmt.Printf("position: (%.4f, %.4f)\n", earth.Position.X, earth.Position.Y)
	fmt.Printf("frames recorded for %s: %d\n", earthId, len(recorder.Track(earthId).Positions))

	// Output:
	// state: done after 0.01
	// velocity: (-2.5000, 22.3607)
	// position: (1.9750, 0.2236)
	// frames recorded for planet#0: 2
}

// ExampleScheduler shows stages running in registration order, with
// deferred commands flushed once every stage has finished.
func ExampleScheduler() {
	system := solar.NewSystem()
	sun, _ := solar.NewSun("Sun", 1000, 3, physics.Vec2{})
	system.SetSun(sun)

	scheduler := sim.NewScheduler(system)
	scheduler.Register(sim.IntegrateStage{})
	scheduler.Register(stageFunc(func(frame *sim.Frame) error {
		frame.Commands.Defer(func() error {
			fmt.Println("deferred until the end of the tick")
			return nil
		})
		fmt.Printf("tick %d at t=%.2f\n", frame.Step, frame.Elapsed)
		return nil
	}))

	for step := range int64(2) {
		if err := scheduler.Once(0.5, float64(step)*0.5, step); err != nil {
			panic(err)
		}
	}

	fmt.Printf("stages: %d, executions: %d\n", scheduler.GetStats().StageCount, scheduler.GetStats().TotalExecutions)

	// Output:
	// tick 0 at t=0.00
	// deferred until the end of the tick
	// tick 1 at t=0.50
	// deferred until the end of the tick
	// stages: 2, executions: 4
}
