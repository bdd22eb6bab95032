package main

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/chasecam/ecs"
	"github.com/plus3/chasecam/input"
	"github.com/plus3/chasecam/scene"
)

// TrackResult summarizes how the camera followed the player.
type TrackResult struct {
	Frames         int
	Events         int
	MinGap         float32
	MaxGap         float32
	MaxHeightError float32
	Violations     int
	Player         mgl32.Vec3
	Camera         mgl32.Vec3
	Quit           bool
}

// TrackSystem checks the follow invariants every frame and stops the run
// after Limit frames or when the script asks to quit.
type TrackSystem struct {
	Limit int
	Stop  context.CancelFunc

	Moved    ecs.EventReader[scene.PlayerMoved]
	Cameras  ecs.Query[struct{ *scene.FollowPlayer; *scene.Transform }]
	Input    ecs.Singleton[input.State]
	Settings ecs.Singleton[scene.FollowSettings]

	result TrackResult
}

func (s *TrackSystem) Execute(frame *ecs.UpdateFrame) {
	if s.result.Frames == 0 {
		s.result.MinGap = float32(math.Inf(1))
	}
	s.result.Frames++

	settings := s.Settings.Get()
	for ev := range s.Moved.Read() {
		s.result.Events++
		s.result.Player = ev.Transform.Translation

		for camera := range s.Cameras.Values() {
			pos := camera.Transform.Translation
			s.result.Camera = pos

			gap := scene.HorizontalDistance(pos, ev.Transform.Translation)
			s.result.MinGap = min(s.result.MinGap, gap)
			s.result.MaxGap = max(s.result.MaxGap, gap)

			want := ev.Transform.Translation.Y() + expectedHeight(settings)
			if pos.Y() != want {
				s.result.MaxHeightError = max(s.result.MaxHeightError, float32(math.Abs(float64(pos.Y()-want))))
				s.result.Violations++
			}
			if settings != nil && settings.Trail && gap < settings.MinDistance {
				s.result.Violations++
			}
		}
	}

	if state := s.Input.Get(); state != nil && state.Quit {
		s.result.Quit = true
		s.Stop()
	}
	if s.Limit > 0 && s.result.Frames >= s.Limit {
		s.Stop()
	}
}

func expectedHeight(settings *scene.FollowSettings) float32 {
	if settings == nil {
		return scene.DefaultFollowSettings().Offset.Y()
	}
	if settings.Trail {
		return settings.Height
	}
	return settings.Offset.Y()
}

func (s *TrackSystem) Result() TrackResult {
	return s.result
}
