package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/chasecam/ecs"
)

// FollowSystem points every FollowPlayer node at the player and repositions it,
// once per PlayerMoved event. Several events in one frame compound.
type FollowSystem struct {
	Moved    ecs.EventReader[PlayerMoved]
	Cameras  ecs.Query[struct{ *FollowPlayer; *Transform }]
	Settings ecs.Singleton[FollowSettings]
}

func (s *FollowSystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Settings.Get()
	if settings == nil {
		defaults := DefaultFollowSettings()
		settings = &defaults
	}

	for ev := range s.Moved.Read() {
		target := ev.Transform.Translation
		for camera := range s.Cameras.Values() {
			follow(camera.Transform, target, settings)
		}
	}
}

func follow(camera *Transform, target mgl32.Vec3, settings *FollowSettings) {
	camera.LookAt(target, axisY)

	if !settings.Trail {
		camera.Translation = target.Add(settings.Offset)
		return
	}

	camera.Translation[1] = target.Y() + settings.Height

	r := horizontal(camera.Translation.Sub(target))
	gap := r.Len()

	if gap < settings.MinDistance {
		back := horizontal(camera.Back())
		if back.Len() < lookAtEpsilon {
			back = r
		}
		if back.Len() < lookAtEpsilon {
			back = axisZ
		}
		back = back.Normalize()
		camera.Translation = camera.Translation.Add(back.Mul(pushOut(r, back, settings.MinDistance)))
		return
	}

	if settings.MaxDistance > 0 && gap > settings.MaxDistance {
		toward := r.Mul(-1 / gap)
		camera.Translation = camera.Translation.Add(toward.Mul(gap - settings.MaxDistance))
	}
}

// pushOut returns the t >= 0 for which |r + t*dir| == dist, given |r| < dist
// and a unit dir.
func pushOut(r, dir mgl32.Vec3, dist float32) float32 {
	rd := float64(r.Dot(dir))
	rr := float64(r.Dot(r))
	d := float64(dist)
	return float32(-rd + math.Sqrt(rd*rd-rr+d*d))
}

func horizontal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X(), 0, v.Z()}
}

// HorizontalDistance is the XZ distance between a and b.
func HorizontalDistance(a, b mgl32.Vec3) float32 {
	return horizontal(a.Sub(b)).Len()
}
