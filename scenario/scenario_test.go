package scenario_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/orrery/physics"
	"github.com/plus3/orrery/render"
	"github.com/plus3/orrery/scenario"
	"github.com/plus3/orrery/sim"
	"github.com/plus3/orrery/solar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const innerYAML = `
name: inner-system
duration: 50
step_size: "0.005"
surface:
  width: 640
  height: 480
  scale: 80
sun: {name: Sol, mass: 1000, size: 3}
planets:
  - {name: Earth, mass: 1, size: 1.5, x: 2, y: 0, vx: 0, vy: 22.36, color: blue}
  - {name: Mars, mass: 0.1, size: 1.2, x: 0, y: 3, circular: true, color: "#c1440e"}
`

func TestParseYAML(t *testing.T) {
	s, err := scenario.Parse([]byte(innerYAML))
	require.NoError(t, err)

	assert.Equal(t, "inner-system", s.Name)
	assert.Equal(t, sim.Config{Duration: 50, StepSize: 0.005}, s.Run)
	assert.Equal(t, render.SurfaceConfig{Width: 640, Height: 480, Background: "black", Scale: 80}, s.Surface, "missing fields keep defaults")
	require.NotNil(t, s.Sun)
	assert.Equal(t, "Sol", s.Sun.Name)
	require.Len(t, s.Planets, 2)
	assert.True(t, s.Planets[1].Circular)

	system, err := s.Build()
	require.NoError(t, err)

	sun, ok := system.Sun()
	require.True(t, ok)
	assert.Equal(t, "yellow", sun.Color, "unset colour keeps the default")

	var names []string
	var mars *solar.Planet
	for _, p := range system.Planets() {
		names = append(names, p.Name)
		mars = p
	}
	assert.Equal(t, []string{"Earth", "Mars"}, names)

	require.NotNil(t, mars)
	assert.Equal(t, "#c1440e", mars.Color)
	// Counter-clockwise circular orbit from (0,3) heads toward -X.
	assert.InDelta(t, -math.Sqrt(1000.0/3), mars.Velocity.X, 1e-9)
	assert.InDelta(t, 0, mars.Velocity.Y, 1e-9)
}

func TestParseJSON(t *testing.T) {
	doc := `{"sun": {"name": "Sun", "mass": 10, "size": 1}, "planets": [{"name": "P", "mass": 1, "size": 1, "x": 1, "circular": true}]}`
	s, err := scenario.Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultConfig(), s.Run)
	assert.Equal(t, render.DefaultSurface(), s.Surface)

	system, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, 1, system.Len())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		msg  string
	}{
		{"not yaml", "sun: [", "yaml"},
		{"unknown key", "sun: {name: S, mass: 1}\ngravity: 9.8", "gravity"},
		{"missing sun", "duration: 10", "sun is required"},
		{"bad step", "sun: {name: S, mass: 1}\nstep_size: -1", "step size"},
		{"bad surface", "sun: {name: S, mass: 1}\nsurface: {width: 0}", "width"},
		{"wrong type", "sun: {name: S, mass: heavy}", "mass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(tt.doc))
			require.ErrorIs(t, err, scenario.ErrInvalidScenario)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestBuildRejectsBadBodies(t *testing.T) {
	s := scenario.Default()
	s.Planets = append(s.Planets, scenario.PlanetSpec{Name: "Ghost", Mass: 0, Size: 1, X: 4})
	_, err := s.Build()
	assert.ErrorIs(t, err, scenario.ErrInvalidScenario)

	s = scenario.Default()
	s.Planets = []scenario.PlanetSpec{{Name: "Inside", Mass: 1, Size: 1, Circular: true}}
	_, err = s.Build()
	assert.ErrorIs(t, err, physics.ErrDegenerateSeparation)

	s = scenario.Default()
	s.Sun.Mass = -1
	_, err = s.Build()
	assert.ErrorIs(t, err, scenario.ErrInvalidScenario)
}

func TestDefault(t *testing.T) {
	s := scenario.Default()
	require.NoError(t, s.Validate())

	system, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, system.Len())

	for _, p := range system.Planets() {
		r := p.Position.Len()
		assert.InDelta(t, physics.CircularSpeed(1000, r), p.Velocity.Len(), 1e-9, p.Name)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(innerYAML), 0o644))

	s, err := scenario.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "inner-system", s.Name)

	_, err = scenario.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, scenario.ErrInvalidScenario)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBundledScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := scenario.Load(path)
			require.NoError(t, err)
			_, err = s.Build()
			require.NoError(t, err)
		})
	}
}
