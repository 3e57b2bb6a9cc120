// Package scenario describes a complete run (bodies, run length and
// surface) and loads it from YAML or JSON files.
package scenario

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/plus3/orrery/physics"
	"github.com/plus3/orrery/render"
	"github.com/plus3/orrery/sim"
	"github.com/plus3/orrery/solar"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario is returned when a scenario cannot be read or does not
// describe a runnable system.
var ErrInvalidScenario = errors.New("invalid scenario")

// SunSpec describes the attractor.
type SunSpec struct {
	Name  string  `mapstructure:"name"`
	Mass  float64 `mapstructure:"mass"`
	Size  float64 `mapstructure:"size"`
	X     float64 `mapstructure:"x"`
	Y     float64 `mapstructure:"y"`
	Color string  `mapstructure:"color"`
}

// PlanetSpec describes one orbiting body. With Circular set, VX and VY are
// ignored and the velocity of a circular orbit around the sun is used.
type PlanetSpec struct {
	Name     string  `mapstructure:"name"`
	Mass     float64 `mapstructure:"mass"`
	Size     float64 `mapstructure:"size"`
	X        float64 `mapstructure:"x"`
	Y        float64 `mapstructure:"y"`
	VX       float64 `mapstructure:"vx"`
	VY       float64 `mapstructure:"vy"`
	Color    string  `mapstructure:"color"`
	Circular bool    `mapstructure:"circular"`
}

// Scenario is a complete run description.
type Scenario struct {
	Name    string               `mapstructure:"name"`
	Run     sim.Config           `mapstructure:",squash"`
	Surface render.SurfaceConfig `mapstructure:"surface"`
	Sun     *SunSpec             `mapstructure:"sun"`
	Planets []PlanetSpec         `mapstructure:"planets"`
}

// Default is the built-in system: a heavy sun with Earth and Mars on
// circular orbits at radius 2 and 3.
func Default() *Scenario {
	return &Scenario{
		Name:    "inner-system",
		Run:     sim.DefaultConfig(),
		Surface: render.DefaultSurface(),
		Sun: &SunSpec{
			Name:  "Sun",
			Mass:  1000,
			Size:  3,
			Color: solar.DefaultSunColor,
		},
		Planets: []PlanetSpec{
			{Name: "Earth", Mass: 1, Size: 1.5, X: 2, VY: math.Sqrt(physics.G * 1000 / 2), Color: "blue"},
			{Name: "Mars", Mass: 0.1, Size: 1.2, X: 3, VY: math.Sqrt(physics.G * 1000 / 3), Color: "red"},
		},
	}
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML or JSON document. Fields left out keep the values
// of the default run and surface. Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	s := &Scenario{
		Run:     sim.DefaultConfig(),
		Surface: render.DefaultSurface(),
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           s,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the run, the surface and that there is a sun. Body
// parameters are checked by Build.
func (s *Scenario) Validate() error {
	var result *multierror.Error
	if err := s.Run.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := s.Surface.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if s.Sun == nil {
		result = multierror.Append(result, errors.New("sun is required"))
	}
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	return nil
}

// Build creates the system the scenario describes.
func (s *Scenario) Build() (*solar.System, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	sun, err := solar.NewSun(s.Sun.Name, s.Sun.Mass, s.Sun.Size, physics.Vec2{X: s.Sun.X, Y: s.Sun.Y})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if s.Sun.Color != "" {
		sun.Color = s.Sun.Color
	}

	system := solar.NewSystem()
	system.SetSun(sun)

	for _, entry := range s.Planets {
		pos := physics.Vec2{X: entry.X, Y: entry.Y}
		vel := physics.Vec2{X: entry.VX, Y: entry.VY}
		if entry.Circular {
			vel, err = physics.CircularVelocity(pos, sun.Attractor())
			if err != nil {
				return nil, fmt.Errorf("%w: planet %q: %w", ErrInvalidScenario, entry.Name, err)
			}
		}

		planet, err := solar.NewPlanet(entry.Name, entry.Mass, entry.Size, pos, vel)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
		if entry.Color != "" {
			planet.Color = entry.Color
		}
		system.AddPlanet(planet)
	}
	return system, nil
}
