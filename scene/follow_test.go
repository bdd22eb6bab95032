package scene

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/chasecam/config"
	"github.com/plus3/chasecam/ecs"
	"github.com/plus3/chasecam/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowOffset(t *testing.T) {
	w := newTestWorld(t, nil)

	w.step(input.State{Forward: true, Right: true})

	player := w.player().Translation
	camera := w.camera()
	assertVec3(t, player.Add(mgl32.Vec3{-2, 2.5, 5}), camera.Translation)
	assert.Equal(t, player.Y()+2.5, camera.Translation.Y())
}

func TestFollowLooksAtPlayerBeforeMoving(t *testing.T) {
	w := newTestWorld(t, nil)
	eye := w.camera().Translation

	w.step(input.State{Right: true})

	target := w.player().Translation
	assertVec3(t, target.Sub(eye).Normalize(), w.camera().Forward())
}

func randomHeld(rng *rand.Rand) input.State {
	return input.State{
		Forward:   rng.Intn(2) == 0,
		Back:      rng.Intn(4) == 0,
		Left:      rng.Intn(3) == 0,
		Right:     rng.Intn(3) == 0,
		TurnLeft:  rng.Intn(5) == 0,
		TurnRight: rng.Intn(5) == 0,
	}
}

func TestFollowTrailKeepsMinimumDistance(t *testing.T) {
	for _, mode := range []string{config.MovementWorld, config.MovementLocal} {
		t.Run(mode, func(t *testing.T) {
			w := newTestWorld(t, func(c *config.Config) {
				c.Movement.Mode = mode
				c.Follow.Mode = config.FollowTrail
			})
			rng := rand.New(rand.NewSource(7))

			for frame := range 400 {
				w.step(randomHeld(rng))

				player := w.player().Translation
				camera := w.camera().Translation
				require.GreaterOrEqual(t, HorizontalDistance(camera, player), float32(4.0), "frame %d", frame)
				require.Equal(t, player.Y()+2.5, camera.Y(), "frame %d", frame)
			}
		})
	}
}

func TestFollowTrailPushesToExactlyMinDistance(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) { c.Follow.Mode = config.FollowTrail })
	w.camera().Translation = mgl32.Vec3{1, 2.5, 1}

	w.step(input.State{})

	assert.InDelta(t, 4.0, HorizontalDistance(w.camera().Translation, w.player().Translation), 1e-4)
}

func TestFollowTrailLeavesDistantCameraAlone(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) { c.Follow.Mode = config.FollowTrail })
	w.camera().Translation = mgl32.Vec3{0, 9, 10}

	w.step(input.State{})

	assertVec3(t, mgl32.Vec3{0, 3, 10}, w.camera().Translation)
}

func TestFollowTrailMaxDistance(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) {
		c.Follow.Mode = config.FollowTrail
		c.Follow.MaxDistance = 6
	})
	w.camera().Translation = mgl32.Vec3{0, 2.5, 20}

	w.step(input.State{})

	assert.InDelta(t, 6.0, HorizontalDistance(w.camera().Translation, w.player().Translation), 1e-4)
	assert.InDelta(t, 0, w.camera().Translation.X(), eps)
}

func TestPushOut(t *testing.T) {
	r := mgl32.Vec3{1, 0, -0.5}
	for _, dir := range []mgl32.Vec3{
		{0, 0, 1},
		{1, 0, 0},
		mgl32.Vec3{-1, 0, 1}.Normalize(),
	} {
		step := pushOut(r, dir, 4)
		assert.GreaterOrEqual(t, step, float32(0))
		assert.InDelta(t, 4.0, r.Add(dir.Mul(step)).Len(), 1e-4)
	}
}

func TestFollowWithoutPlayer(t *testing.T) {
	w := newTestWorld(t, nil)
	w.storage.Delete(w.handles.Player)
	before := *w.camera()
	moved := ecs.NewEventReader[PlayerMoved](w.storage)

	w.step(input.State{Forward: true})

	assert.Zero(t, moved.Len())
	assert.Equal(t, before, *w.camera())
}

func TestFollowMultiplePlayersCompound(t *testing.T) {
	w := newTestWorld(t, nil)
	w.storage.Spawn(Player{}, NewTransform(3, 0.5, 0), NewGlobalTransform(), Cube(1), Material{})

	players := ecs.NewQuery[struct{ *Player; *Transform }](w.storage)
	w.step(input.State{})

	players.Execute()
	require.Equal(t, 2, players.Len())
	var last mgl32.Vec3
	for p := range players.Values() {
		last = p.Transform.Translation
	}

	assertVec3(t, last.Add(mgl32.Vec3{-2, 2.5, 5}), w.camera().Translation, "last player in iteration order wins")
}

func TestFollowReaderBeforeWriterSeesEventsLate(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	ecs.NewSingleton(storage, input.State{Right: true})
	ApplyConfig(storage, config.Default())
	h := Setup(storage, config.Default().Scene)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&FollowSystem{})
	scheduler.Register(&MovementSystem{})

	camera := ecs.ReadComponent[Transform](storage, h.Camera)
	player := ecs.ReadComponent[Transform](storage, h.Player)
	start := camera.Translation

	scheduler.Once(0.016)
	assert.Equal(t, start, camera.Translation)

	before := player.Translation
	scheduler.Once(0.016)
	assertVec3(t, before.Add(mgl32.Vec3{-2, 2.5, 5}), camera.Translation, "previous frame's event")
}
