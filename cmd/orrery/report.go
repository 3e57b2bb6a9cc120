package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/orrery/sim"
)

// Report summarises a finished run.
type Report struct {
	// Configuration
	Scenario   string
	Config     sim.Config
	Renderer   string
	TotalSteps int64

	// Results
	Steps         int64
	Elapsed       float64
	WallTime      time.Duration
	Orbits        []sim.OrbitRecord
	Stages        []sim.StageStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Orrery Run Report

## Configuration
- **Scenario:** {{.Scenario}}
- **Duration:** {{.Config.Duration}} (step {{.Config.StepSize}}, {{.TotalSteps}} steps)
- **Renderer:** {{.Renderer}}

## Results
- **Steps Run:** {{.Steps}}
- **Simulated Time:** {{printf "%.4f" .Elapsed}}
- **Wall Time:** {{.WallTime}}

## Orbits
{{- range .Orbits}}
- **{{.Name}}** ({{.Id}}): radius {{printf "%.4f" .MinRadius}} .. {{printf "%.4f" .MaxRadius}}, energy drift {{pct .EnergyDrift}}
{{- else}}
- no planets
{{- end}}

## Stage Timings
{{- range .Stages}}
- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, min {{.MinDuration}}, max {{.MaxDuration}}{{if .Failures}}, {{.Failures}} failed{{end}}
{{- end}}

## Memory Usage (Raw Bytes)
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"pct": func(v float64) string {
			return fmt.Sprintf("%+.3f%%", 100*v)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
