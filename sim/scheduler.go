package sim

import (
	"fmt"
	"reflect"
	"time"

	"github.com/plus3/orrery/solar"
)

// Stage is one piece of work done every tick. Stages run in registration
// order and may keep state between ticks.
type Stage interface {
	Execute(frame *Frame) error
}

// SchedulerStats is a snapshot of scheduler activity.
type SchedulerStats struct {
	StageCount      int
	TotalExecutions int64
	// Ticks counts calls to Once. LastStep and LastElapsed describe the
	// most recent one.
	Ticks       int64
	LastStep    int64
	LastElapsed float64
	Stages      []StageStats
}

// StageStats is the timing of one stage.
type StageStats struct {
	Name           string
	ExecutionCount int64
	Failures       int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// timing accumulates durations of one stage.
type timing struct {
	name     string
	runs     int64
	failures int64
	min, max time.Duration
	last     time.Duration
	total    time.Duration
}

func (t *timing) observe(d time.Duration, err error) {
	if t.runs == 0 || d < t.min {
		t.min = d
	}
	t.max = max(t.max, d)
	t.last = d
	t.total += d
	t.runs++
	if err != nil {
		t.failures++
	}
}

func (t *timing) snapshot() StageStats {
	stats := StageStats{
		Name:           t.name,
		ExecutionCount: t.runs,
		Failures:       t.failures,
		MinDuration:    t.min,
		MaxDuration:    t.max,
		LastDuration:   t.last,
		TotalDuration:  t.total,
	}
	if t.runs > 0 {
		stats.AvgDuration = t.total / time.Duration(t.runs)
	}
	return stats
}

// Scheduler runs stages against a system, one tick at a time.
type Scheduler struct {
	system  *solar.System
	stages  []Stage
	timings []*timing

	ticks       int64
	lastStep    int64
	lastElapsed float64
}

// NewScheduler creates a scheduler for the given system.
func NewScheduler(system *solar.System) *Scheduler {
	return &Scheduler{
		system: system,
		stages: make([]Stage, 0),
	}
}

// Register appends a stage. Its stats are reported under the name of its
// type.
func (s *Scheduler) Register(stage Stage) {
	stageType := reflect.TypeOf(stage)
	if stageType.Kind() == reflect.Pointer {
		stageType = stageType.Elem()
	}

	s.stages = append(s.stages, stage)
	s.timings = append(s.timings, &timing{name: stageType.Name()})
}

// Once executes every stage for one tick and then flushes the frame's
// deferred commands. A failing stage stops the tick before later stages
// and the flush.
func (s *Scheduler) Once(dt, elapsed float64, step int64) error {
	s.ticks++
	s.lastStep = step
	s.lastElapsed = elapsed

	frame := newFrame(dt, elapsed, step, s.system)
	for i, stage := range s.stages {
		start := time.Now()
		err := stage.Execute(frame)
		s.timings[i].observe(time.Since(start), err)

		if err != nil {
			return fmt.Errorf("%s: %w", s.timings[i].name, err)
		}
	}

	return frame.Commands.Flush()
}

// GetStats returns statistics about stage execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		StageCount:  len(s.stages),
		Ticks:       s.ticks,
		LastStep:    s.lastStep,
		LastElapsed: s.lastElapsed,
		Stages:      make([]StageStats, 0, len(s.timings)),
	}
	for _, t := range s.timings {
		stats.Stages = append(stats.Stages, t.snapshot())
		stats.TotalExecutions += t.runs
	}
	return stats
}
