package main

import (
	"fmt"
	"math"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/chasecam/ecs"
	"github.com/plus3/chasecam/ecs/debugui"
	"github.com/plus3/chasecam/scene"
)

var warningColor = imgui.NewVec4(1, 0.6, 0.2, 1)

// spawnSceneInspector adds a window showing the Player and FollowPlayer nodes
// and editing the movement and follow settings in place.
func spawnSceneInspector(storage *ecs.Storage) {
	players := ecs.NewQuery[struct {
		ecs.EntityId
		*scene.Player
		*scene.Transform
	}](storage)
	cameras := ecs.NewQuery[struct {
		ecs.EntityId
		*scene.FollowPlayer
		*scene.Transform
	}](storage)
	movement := ecs.NewSingleton(storage, scene.DefaultMovementSettings())
	follow := ecs.NewSingleton(storage, scene.DefaultFollowSettings())

	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			players.Execute()
			cameras.Execute()

			imgui.SetNextWindowPosV(imgui.NewVec2(10, 320), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(320, 380), imgui.CondOnce)

			if !imgui.BeginV("Scene", nil, imgui.WindowFlagsNone) {
				imgui.End()
				return
			}

			imgui.Text(fmt.Sprintf("Player nodes: %d  Follow nodes: %d", players.Len(), cameras.Len()))
			if players.Len() > 1 {
				imgui.TextColored(warningColor, "More than one Player: camera follows each in turn")
			}
			if players.Len() == 0 {
				imgui.TextColored(warningColor, "No Player: camera is idle")
			}

			for p := range players.Values() {
				t := p.Transform
				forward := t.Forward()
				yaw := math.Atan2(float64(-forward.X()), float64(-forward.Z()))
				imgui.BulletText(fmt.Sprintf("%v pos (%.2f, %.2f, %.2f) yaw %.1f°",
					p.EntityId, t.Translation.X(), t.Translation.Y(), t.Translation.Z(), yaw*180/math.Pi))
			}
			for c := range cameras.Values() {
				t := c.Transform
				imgui.BulletText(fmt.Sprintf("%v cam (%.2f, %.2f, %.2f)",
					c.EntityId, t.Translation.X(), t.Translation.Y(), t.Translation.Z()))
			}

			imgui.Separator()
			if m := movement.Get(); m != nil && imgui.TreeNodeStr("Movement") {
				imgui.Checkbox("Local axes", &m.Local)
				imgui.SetNextItemWidth(120)
				imgui.InputFloat("Step", &m.Step)
				imgui.SetNextItemWidth(120)
				imgui.InputFloat("Turn step", &m.TurnStep)
				imgui.Checkbox("Gamepad", &m.Gamepad)
				imgui.SetNextItemWidth(120)
				imgui.InputFloat("Deadzone", &m.Deadzone)
				imgui.Checkbox("Debug log", &m.Debug)
				imgui.TreePop()
			}

			if f := follow.Get(); f != nil && imgui.TreeNodeStr("Follow") {
				imgui.Checkbox("Trail", &f.Trail)
				imgui.SetNextItemWidth(120)
				imgui.InputFloat("Height", &f.Height)
				imgui.SetNextItemWidth(120)
				imgui.InputFloat("Min distance", &f.MinDistance)
				imgui.SetNextItemWidth(120)
				imgui.InputFloat("Max distance", &f.MaxDistance)
				imgui.TreePop()
			}

			imgui.Separator()
			if imgui.Button("Toggle debug lines") {
				scene.ToggleDebugLines(storage)
			}

			imgui.End()
		},
	})
}
