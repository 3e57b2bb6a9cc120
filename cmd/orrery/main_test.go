package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/plus3/orrery/physics"
	"github.com/plus3/orrery/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-renderer", "none", "-duration", "1", "-report"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "none", opts.renderer)
	assert.Equal(t, 1.0, opts.duration)
	assert.True(t, opts.report)
	assert.True(t, opts.set["duration"])
	assert.False(t, opts.set["step"])

	_, err = parseFlags([]string{"-renderer", "opengl"}, io.Discard)
	assert.ErrorContains(t, err, "unknown renderer")

	_, err = parseFlags([]string{"-renderer", "term", "-debug"}, io.Discard)
	assert.ErrorContains(t, err, "-debug")

	_, err = parseFlags([]string{"-nope"}, io.Discard)
	assert.Error(t, err)
}

func TestLoadScenarioOverrides(t *testing.T) {
	opts, err := parseFlags([]string{"-step", "0.001", "-width", "640"}, io.Discard)
	require.NoError(t, err)

	s, err := loadScenario(opts)
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.Run.Duration, "unset flags keep the scenario value")
	assert.Equal(t, 0.001, s.Run.StepSize)
	assert.Equal(t, 640, s.Surface.Width)

	opts, err = parseFlags([]string{"-step", "0"}, io.Discard)
	require.NoError(t, err)
	_, err = loadScenario(opts)
	assert.ErrorIs(t, err, scenario.ErrInvalidScenario)
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug", io.Discard)
	require.NoError(t, err)
	assert.True(t, logger.IsDebug())
	assert.Equal(t, "orrery", logger.Name())

	_, err = newLogger("loud", io.Discard)
	assert.ErrorContains(t, err, "loud")
}

func TestRunHeadlessReport(t *testing.T) {
	opts, err := parseFlags([]string{"-renderer", "none", "-duration", "1", "-report"}, io.Discard)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &out, hclog.NewNullLogger()))

	report := out.String()
	assert.Contains(t, report, "# Orrery Run Report")
	assert.Contains(t, report, "**Steps Run:** 100")
	assert.Contains(t, report, "**Simulated Time:** 1.0000")
	assert.Contains(t, report, "**Earth** (planet#0)")
	assert.Contains(t, report, "**Mars** (planet#1)")
	assert.Contains(t, report, "IntegrateStage: 100 runs")
	assert.Contains(t, report, "OrbitMonitor: 100 runs")
	assert.Contains(t, report, "RenderStage: 100 runs")
}

func TestRunTerminal(t *testing.T) {
	opts, err := parseFlags([]string{"-renderer", "term", "-duration", "0.05", "-frame-every", "5"}, io.Discard)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &out, hclog.NewNullLogger()))
	assert.Equal(t, 1, strings.Count(out.String(), "frame 5\n"))
	assert.NotContains(t, out.String(), "Run Report")
}

func TestRunScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lonely.yaml")
	doc := "name: lonely\nduration: 0.1\nsun: {name: S, mass: 1, size: 1}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	opts, err := parseFlags([]string{"-renderer", "none", "-scenario", path, "-report"}, io.Discard)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &out, hclog.NewNullLogger()))
	assert.Contains(t, out.String(), "**Scenario:** lonely")
	assert.Contains(t, out.String(), "- no planets")
}

func TestRunFailsOnDegenerateOrbit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plunge.yaml")
	// Falls straight in from x=1 and lands on the sun at step 1.
	doc := "duration: 1\nstep_size: 1\nsun: {name: S, mass: 1, size: 1}\nplanets:\n  - {name: P, mass: 1, size: 1, x: 1}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	opts, err := parseFlags([]string{"-renderer", "none", "-scenario", path, "-duration", "3"}, io.Discard)
	require.NoError(t, err)

	err = run(context.Background(), opts, io.Discard, hclog.NewNullLogger())
	assert.ErrorIs(t, err, physics.ErrDegenerateSeparation)
}

func TestRunCancelled(t *testing.T) {
	opts, err := parseFlags([]string{"-renderer", "none"}, io.Discard)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = run(ctx, opts, io.Discard, hclog.NewNullLogger())
	assert.ErrorIs(t, err, context.Canceled)
}
