package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/lockon/common"
	"github.com/milk9111/lockon/ecs"
	"github.com/milk9111/lockon/ecs/entity"
	"github.com/milk9111/lockon/ecs/system"
	"github.com/milk9111/lockon/prefabs"
)

type Options struct {
	Preset string
	Arena  string
	Debug  bool
	Watch  bool
}

// Game is the lock-on sandbox: one arena world stepped at a fixed rate,
// a preset picker on Escape and optional hot reload of prefabs/.
type Game struct {
	opts   Options
	logger *log.Logger

	presets *prefabs.LockOnPresets
	world   *ecs.World
	arena   *entity.Arena
	debug   *system.DebugRenderSystem
	camera  *system.CameraSystem
	watcher *prefabs.Watcher

	screenW, screenH int

	paused bool
	ui     *ebitenui.UI
}

func NewGame(opts Options, logger *log.Logger) (*Game, error) {
	presets, err := prefabs.LoadLockOnPresets()
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:    opts,
		logger:  logger,
		presets: presets,
		screenW: common.BaseWidth,
		screenH: common.BaseHeight,
	}
	if err := g.loadArena(opts.Preset); err != nil {
		return nil, err
	}
	g.ui = NewPresetUI(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.DiskDir, prefabs.ScriptsDir)
		if err != nil {
			logger.Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = w
			logger.Info("watching prefabs for changes")
		}
	}
	return g, nil
}

// loadArena builds a fresh world from the arena spec. The previous world is
// only replaced once the new one built cleanly.
func (g *Game) loadArena(preset string) error {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())

	arena, err := entity.BuildArena(w, g.opts.Arena, &entity.BuildContext{
		Presets: g.presets,
		Preset:  preset,
		Logger:  g.logger,
	})
	if err != nil {
		return err
	}

	debugEnabled := g.opts.Debug
	if g.debug != nil {
		debugEnabled = g.debug.Enabled
	}
	g.debug = system.NewDebugRenderSystem(debugEnabled)
	g.camera = system.NewCameraSystem(float64(g.screenW), float64(g.screenH))

	w.AddSystem(system.NewInputSystem())
	w.AddSystem(system.NewOccluderSystem(g.logger.WithPrefix("occluder")))
	w.AddSystem(system.NewPlayerControllerSystem())
	w.AddSystem(system.NewPatrolSystem())
	w.AddSystem(system.NewCombatSystem())
	w.AddSystem(system.NewLockOnSystem(g.logger.WithPrefix("lockon")))
	w.AddSystem(g.camera)
	w.AddSystem(system.NewLockOnLogSystem(g.logger.WithPrefix("events")))
	w.AddSystem(system.NewTTLSystem())
	w.AddSystem(system.NewRenderSystem())
	w.AddSystem(g.debug)

	g.world = w
	g.arena = arena
	g.logger.Info("arena loaded", "arena", arena.Name, "entities", len(arena.Entities), "preset", g.activePreset())
	return nil
}

func (g *Game) activePreset() string {
	if lo, ok := g.arena.LockOn(g.world); ok {
		return lo.Preset
	}
	return ""
}

// SelectPreset switches the live controller to another preset.
func (g *Game) SelectPreset(name string) error {
	lo, ok := g.arena.LockOn(g.world)
	if !ok {
		return fmt.Errorf("select preset: player has no lock-on")
	}
	if err := entity.ApplyPreset(lo, g.presets, name, g.logger.WithPrefix("lockon")); err != nil {
		return err
	}
	g.logger.Info("preset applied", "preset", name)
	return nil
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug.Enabled = !g.debug.Enabled
	}
	if g.paused {
		g.ui.Update()
		return nil
	}

	g.world.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)
	if g.paused {
		g.ui.Draw(screen)
	}
}

// Layout follows the window size so the lock-on screen checks and the
// projection always match what is drawn.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.screenW || outsideHeight != g.screenH) {
		g.screenW, g.screenH = outsideWidth, outsideHeight
		g.camera.SetViewport(float64(outsideWidth), float64(outsideHeight))
	}
	return g.screenW, g.screenH
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err := <-g.watcher.Errors:
			g.logger.Warn("watch error", "err", err)
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	g.logger.Debug("prefab changed", "path", change.Path, "kind", change.Kind)
	current := g.activePreset()

	switch change.Kind {
	case prefabs.ChangePresets:
		presets, err := prefabs.LoadLockOnPresets()
		if err != nil {
			g.logger.Error("preset reload rejected", "err", err)
			return
		}
		g.presets = presets
		if _, err := presets.Preset(current); err != nil {
			current = ""
		}
		if err := g.SelectPreset(current); err != nil {
			g.logger.Error("preset reload rejected", "err", err)
			return
		}
		g.ui = NewPresetUI(g)
	case prefabs.ChangeScript:
		// Recompiles the script when the active preset uses one.
		if err := g.SelectPreset(current); err != nil {
			g.logger.Error("script reload rejected", "err", err)
		}
	case prefabs.ChangeArena:
		if err := g.loadArena(current); err != nil {
			g.logger.Error("arena reload rejected", "err", err)
		}
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
