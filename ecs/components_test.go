package ecs_test

type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Label string

type Clock struct {
	Ticks int
}
