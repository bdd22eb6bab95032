package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats summarizes system execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          uint64
	Systems         []SystemStats
}

// SystemStats holds execution timings for one system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// storageBinder is implemented by the pointer types of Query, Singleton,
// EventWriter and EventReader.
type storageBinder interface {
	Init(storage *Storage)
}

// frameRefresher is implemented by *Query.
type frameRefresher interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []frameRefresher
	stats   *systemStatsInternal
}

// Scheduler runs systems in registration order. Startup systems run once,
// before the first regular frame, and their commands are flushed before any
// regular system sees the world.
type Scheduler struct {
	storage *Storage
	startup []*registeredSystem
	systems []*registeredSystem
	started bool
	frames  uint64
}

// NewScheduler creates a scheduler for storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
	}
}

// Storage returns the world the scheduler drives.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register appends a system to the frame and binds its fields.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, s.bind(system))
}

// RegisterStartup adds a system that runs once on the first Once call.
func (s *Scheduler) RegisterStartup(system System) {
	s.startup = append(s.startup, s.bind(system))
}

func (s *Scheduler) bind(system System) *registeredSystem {
	rs := &registeredSystem{
		system: system,
		stats: &systemStatsInternal{
			name:        systemName(system),
			minDuration: time.Duration(1<<63 - 1),
		},
	}

	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return rs
	}

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		binder, ok := field.Addr().Interface().(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if refresher, ok := binder.(frameRefresher); ok {
			rs.queries = append(rs.queries, refresher)
		}
	}

	return rs
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

func (s *Scheduler) run(rs *registeredSystem, frame *UpdateFrame) {
	start := time.Now()
	for _, q := range rs.queries {
		q.Execute()
	}
	rs.system.Execute(frame)
	duration := time.Since(start)

	stats := rs.stats
	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration
	stats.minDuration = min(stats.minDuration, duration)
	stats.maxDuration = max(stats.maxDuration, duration)
}

// Once runs one frame: startup systems (first call only), every system in
// order, the command flush, and the event buffer swap.
func (s *Scheduler) Once(dt float64) {
	if !s.started {
		s.started = true
		frame := newUpdateFrame(0, s.frames, s.storage)
		for _, rs := range s.startup {
			s.run(rs, frame)
		}
		frame.Commands.Flush(s.storage)
	}

	frame := newUpdateFrame(dt, s.frames, s.storage)
	for _, rs := range s.systems {
		s.run(rs, frame)
	}
	frame.Commands.Flush(s.storage)
	s.storage.UpdateEvents()
	s.frames++
}

// Run calls Once on every tick of interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns a snapshot of the regular systems' timings.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, rs := range s.systems {
		internal := rs.stats
		var avg time.Duration
		if internal.executionCount > 0 {
			avg = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avg,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalExecutions += internal.executionCount
	}

	return stats
}
