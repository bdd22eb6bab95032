package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/chasecam/config"
	"github.com/plus3/chasecam/ecs"
)

type Report struct {
	// Configuration
	Config   *config.Config
	Script   string
	Interval time.Duration

	// Results
	TotalTime     time.Duration
	UpdateTime    Stats
	Track         TrackResult
	Systems       *ecs.SchedulerStats
	Storage       *ecs.StorageStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Chase Camera Simulation Report

## Configuration
- **Source:** {{if .Config.Source}}{{.Config.Source}}{{else}}embedded default{{end}}
- **Movement:** {{.Config.Movement.Mode}} (step {{.Config.Movement.Step}}, turn {{.Config.Movement.TurnStep}})
- **Follow:** {{.Config.Follow.Mode}}{{if eq .Config.Follow.Mode "trail"}} (height {{.Config.Follow.Height}}, min {{.Config.Follow.MinDistance}}{{if .Config.Follow.MaxDistance}}, max {{.Config.Follow.MaxDistance}}{{end}}){{end}}
- **Player Model:** {{.Config.Scene.PlayerModel}}
- **Script:** {{.Script}}
{{- if .Interval}}
- **Interval:** {{.Interval}}
{{- end}}

## Tracking
- **Frames:** {{.Track.Frames}}{{if .Track.Quit}} (quit by script){{end}}
- **PlayerMoved Events:** {{.Track.Events}}
- **Final Player:** {{vec .Track.Player}}
- **Final Camera:** {{vec .Track.Camera}}
{{- if .Track.Events}}
- **Horizontal Gap:** min {{printf "%.3f" .Track.MinGap}} / max {{printf "%.3f" .Track.MaxGap}}
- **Max Height Error:** {{printf "%.6f" .Track.MaxHeightError}}
{{- end}}
- **Violations:** {{.Track.Violations}}

## Systems
| System | Runs | Avg | Min | Max |
|--------|------|-----|-----|-----|
{{- range .Systems.Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}

## World
- **Entities:** {{.Storage.TotalEntityCount}} in {{.Storage.ArchetypeCount}} archetypes
- **Singletons:** {{join .Storage.SingletonTypes}}
{{- if .UpdateTime.Samples}}

## Frame Time
- **Total:** {{.TotalTime}}
- **Avg:** {{.UpdateTime.Avg}}
- **Min:** {{.UpdateTime.Min}}
- **Max:** {{.UpdateTime.Max}}
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"vec": func(v mgl32.Vec3) string {
			return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X(), v.Y(), v.Z())
		},
		"join": func(names []string) string {
			return strings.Join(names, ", ")
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
