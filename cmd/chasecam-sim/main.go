// Command chasecam-sim replays an input script against the chase-camera scene
// without a window and prints a report of how the camera tracked the player.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/chasecam/config"
	"github.com/plus3/chasecam/ecs"
	"github.com/plus3/chasecam/input"
	"github.com/plus3/chasecam/scene"
)

const defaultScript = "w*60,d+j*40,s*30,a+k*30,f3,idle*10,f3"

func main() {
	configPath := flag.String("config", config.DefaultFile, "YAML config file; the embedded default is used when it does not exist.")
	frames := flag.Int("frames", 0, "Number of frames to run. 0 runs until the script ends.")
	scriptSrc := flag.String("script", defaultScript, "Input script, e.g. \"w*30,d+j*20,idle*5\".")
	interval := flag.Duration("interval", 0, "Frame interval. 0 runs frames back to back.")
	debug := flag.Bool("debug", false, "Enable debug logging.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.Debug = cfg.Debug || *debug

	script, err := input.ParseScript(*scriptSrc)
	if err != nil {
		log.Fatalf("Failed to parse script: %v", err)
	}
	*frames, err = frameLimit(*frames, script)
	if err != nil {
		log.Fatalf("Invalid run length: %v", err)
	}

	log.Printf("Starting simulation: %d frames, movement=%s follow=%s model=%s",
		*frames, cfg.Movement.Mode, cfg.Follow.Mode, cfg.Scene.PlayerModel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracker := &TrackSystem{Limit: *frames, Stop: cancel}
	storage, scheduler := newWorld(cfg, script, tracker)

	report := &Report{
		Config:   cfg,
		Script:   *scriptSrc,
		Interval: *interval,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0, *frames),
		},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	startTime := time.Now()
	if *interval > 0 {
		scheduler.Run(ctx, *interval)
	} else {
		for ctx.Err() == nil {
			updateStart := time.Now()
			scheduler.Once(1.0 / 60)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Track = tracker.Result()
	report.Systems = scheduler.GetStats()
	report.Storage = storage.CollectStats()
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	if report.Track.Violations > 0 {
		os.Exit(1)
	}
}

// newWorld builds the scene and registers its systems with tracker last.
func newWorld(cfg *config.Config, source input.Source, tracker *TrackSystem) (*ecs.Storage, *ecs.Scheduler) {
	registry := ecs.NewComponentRegistry()
	scene.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	ecs.NewSingleton[input.State](storage)
	scene.ApplyConfig(storage, cfg)
	scene.Setup(storage, cfg.Scene)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&input.InputSystem{Source: source, Debug: cfg.Debug})
	scheduler.Register(&scene.MovementSystem{})
	scheduler.Register(&scene.FollowSystem{})
	scheduler.Register(&scene.HierarchySystem{})
	scheduler.Register(&scene.DebugToggleSystem{Debug: cfg.Debug})
	scheduler.Register(tracker)

	return storage, scheduler
}

// frameLimit is the number of frames to run: the -frames flag when set,
// otherwise the length of the script. A run with no frames would never stop.
func frameLimit(frames int, script *input.Script) (int, error) {
	if frames > 0 {
		return frames, nil
	}
	if n := script.Frames(); n > 0 {
		return n, nil
	}
	return 0, errors.New("script has no frames and -frames is not set")
}
