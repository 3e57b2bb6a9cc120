package ecs_test

import (
	"fmt"

	"github.com/plus3/orrery/ecs"
)

// ExampleQuery moves every entity that has both a position and a velocity.
func ExampleQuery() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 2})
	storage.Spawn(Position{X: 10, Y: 10})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	for id, e := range query.Iter() {
		e.X += e.DX
		e.Y += e.DY
		fmt.Printf("%s moved to (%.0f, %.0f)\n", id, e.X, e.Y)
	}

	// Output:
	// 1:0 moved to (1, 2)
}
