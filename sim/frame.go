package sim

import (
	"github.com/hashicorp/go-multierror"
	"github.com/plus3/orrery/solar"
)

// Frame is handed to every stage during one tick.
type Frame struct {
	DeltaTime float64
	// Elapsed is simulation time at the start of the tick.
	Elapsed  float64
	Step     int64
	System   *solar.System
	Commands *Commands
}

func newFrame(dt, elapsed float64, step int64, system *solar.System) *Frame {
	return &Frame{
		DeltaTime: dt,
		Elapsed:   elapsed,
		Step:      step,
		System:    system,
		Commands:  newCommands(),
	}
}

// Commands buffers work that must run after every stage of a tick has
// finished, such as telling a renderer where bodies ended up.
type Commands struct {
	defers []func() error
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn for the end of the tick.
func (c *Commands) Defer(fn func() error) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs queued commands in order and resets the buffer. Every command
// runs; their errors are collected.
func (c *Commands) Flush() error {
	var result *multierror.Error
	for _, fn := range c.defers {
		if err := fn(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	c.defers = c.defers[:0]
	return result.ErrorOrNil()
}
