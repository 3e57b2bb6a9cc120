package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
)

// ErrInvalidConfig is returned for run settings that cannot drive a run.
var ErrInvalidConfig = errors.New("invalid run config")

// MaxSteps caps the step count of a run. Step numbers up to 2^53 are exact
// as float64, which keeps Elapsed exact.
const MaxSteps = 1 << 53

// Config controls how long a run lasts and how far each step advances it,
// both in simulation time units.
type Config struct {
	Duration float64 `mapstructure:"duration"`
	StepSize float64 `mapstructure:"step_size"`
}

// DefaultConfig runs for 100 time units in steps of 0.01.
func DefaultConfig() Config {
	return Config{
		Duration: 100,
		StepSize: 0.01,
	}
}

// Validate reports every unusable field.
func (c Config) Validate() error {
	var result *multierror.Error
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		result = multierror.Append(result, fmt.Errorf("duration must be positive and finite, got %v", c.Duration))
	}
	if !(c.StepSize > 0) || math.IsInf(c.StepSize, 0) {
		result = multierror.Append(result, fmt.Errorf("step size must be positive and finite, got %v", c.StepSize))
	}
	if result == nil {
		if n := c.Duration / c.StepSize; math.IsInf(n, 0) || n > MaxSteps {
			result = multierror.Append(result, fmt.Errorf("duration %v at step size %v needs more than %d steps", c.Duration, c.StepSize, int64(MaxSteps)))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Steps is the number of ticks a run takes: the smallest n with
// n*StepSize >= Duration. It is only meaningful for a config that passes
// Validate.
func (c Config) Steps() int64 {
	n := math.Ceil(c.Duration / c.StepSize)
	// The division can round either way; settle on the exact boundary.
	if m := n - 1; m > 0 && m*c.StepSize >= c.Duration {
		n = m
	}
	if n*c.StepSize < c.Duration {
		n++
	}
	return int64(n)
}
