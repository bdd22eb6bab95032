// Command chasecam opens a window with a player cube and a camera that
// follows it.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/chasecam/config"
	"github.com/plus3/chasecam/ecs"
	"github.com/plus3/chasecam/ecs/debugui"
	debugui_ebiten "github.com/plus3/chasecam/ecs/debugui/ebiten"
	"github.com/plus3/chasecam/input"
	input_ebiten "github.com/plus3/chasecam/input/ebiten"
	render_ebiten "github.com/plus3/chasecam/render/ebiten"
	"github.com/plus3/chasecam/scene"
)

type Game struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	renderer  *render_ebiten.Renderer
	input     *ecs.Singleton[input.State]

	// imguiBackend is nil when the debug UI is disabled.
	imguiBackend *ecs.Singleton[debugui_ebiten.ImguiBackend]

	watcher     *config.Watcher
	inputSystem *input.InputSystem
	debugSystem *scene.DebugToggleSystem
}

func main() {
	configPath := flag.String("config", config.DefaultFile, "YAML config file; the embedded default is used when it does not exist.")
	debug := flag.Bool("debug", false, "Enable debug logging.")
	watch := flag.Bool("watch", false, "Reload movement and follow settings when the config file changes.")
	withImgui := flag.Bool("imgui", false, "Show the Dear ImGui debug windows.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.Debug = cfg.Debug || *debug

	registry := ecs.NewComponentRegistry()
	scene.RegisterComponents(registry)
	debugui.RegisterDebugUIComponents(registry)
	storage := ecs.NewStorage(registry)

	game := &Game{
		storage: storage,
		input:   ecs.NewSingleton[input.State](storage),
	}

	if *withImgui {
		ecs.NewSingleton(storage, debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height))
		game.imguiBackend = ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage)
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	scene.ApplyConfig(storage, cfg)
	handles := scene.Setup(storage, cfg.Scene)
	log.Printf("Scene ready: player %v, camera %v (movement=%s follow=%s)",
		handles.Player, handles.Camera, cfg.Movement.Mode, cfg.Follow.Mode)

	source := input_ebiten.NewSource()
	game.inputSystem = &input.InputSystem{Source: source, Debug: cfg.Debug}
	game.debugSystem = &scene.DebugToggleSystem{Debug: cfg.Debug}

	game.scheduler = ecs.NewScheduler(storage)
	game.scheduler.Register(game.inputSystem)
	game.scheduler.Register(&scene.MovementSystem{})
	game.scheduler.Register(&scene.FollowSystem{})
	game.scheduler.Register(&scene.HierarchySystem{})
	game.scheduler.Register(game.debugSystem)

	if *withImgui {
		captured := ecs.NewSingleton[debugui.ImguiInputState](storage)
		source.KeyboardCaptured = func() bool {
			state := captured.Get()
			return state != nil && state.WantCaptureKeyboard
		}

		debugui.SpawnDebugUI(storage, game.scheduler)
		spawnSceneInspector(storage)
		game.scheduler.Register(&debugui.ImguiSystem{})
	}

	game.renderer = render_ebiten.NewRenderer(storage, cfg.Window)

	if *watch {
		if cfg.Source == "" {
			log.Printf("No config file on disk; -watch ignored")
		} else {
			game.watcher, err = config.NewWatcher(cfg.Source)
			if err != nil {
				log.Fatalf("Failed to watch config: %v", err)
			}
			defer game.watcher.Close()
			log.Printf("Watching %s", cfg.Source)
		}
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}

func (g *Game) Update() error {
	g.applyReloads()

	if g.imguiBackend != nil {
		g.imguiBackend.Get().BeginFrame()
	}

	g.scheduler.Once(1.0 / float64(ebiten.TPS()))

	if g.imguiBackend != nil {
		g.imguiBackend.Get().EndFrame()
	}

	if state := g.input.Get(); state != nil && state.Quit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)

	if g.imguiBackend != nil {
		g.imguiBackend.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imguiBackend != nil {
		g.imguiBackend.Get().Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// applyReloads drains the watcher between frames. Only movement, follow,
// debug and HUD settings take effect; the scene layout needs a restart.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}

	for {
		select {
		case cfg, ok := <-g.watcher.Configs:
			if !ok {
				g.watcher = nil
				return
			}
			scene.ApplyConfig(g.storage, cfg)
			g.inputSystem.Debug = cfg.Debug
			g.debugSystem.Debug = cfg.Debug
			g.renderer.ShowHUD = cfg.Window.HUD
			log.Printf("Config reloaded: movement=%s follow=%s", cfg.Movement.Mode, cfg.Follow.Mode)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Config reload failed: %v", err)
		default:
			return
		}
	}
}
