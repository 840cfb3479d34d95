package main

import (
	"errors"
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/customgravity/common"
	"github.com/milk9111/customgravity/ecs/component"
	"github.com/milk9111/customgravity/ecs/entity"
	"github.com/milk9111/customgravity/ecs/render"
	"github.com/milk9111/customgravity/ecs/system"
	"github.com/milk9111/customgravity/input"
	"github.com/milk9111/customgravity/persistence"
	"github.com/milk9111/customgravity/prefabs"
	"github.com/milk9111/customgravity/sim"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

const messageTicks = 2 * common.TPS

type Options struct {
	Scene   string
	Debug   bool
	Watch   bool
	Persist bool
	// ResetSettings drops saved settings before they are restored.
	ResetSettings bool
}

type Game struct {
	logger *zap.Logger
	opts   Options

	sim      *sim.Simulation
	keyboard *input.Keyboard
	clock    system.Clock
	settings sim.Settings
	hash     uint64

	watcher   *prefabs.Watcher
	store     *persistence.Store
	clipboard bool

	paused  bool
	debug   bool
	quit    bool
	pauseUI *ebitenui.UI

	message      string
	messageTimer int
}

func NewGame(opts Options, logger *zap.Logger) (*Game, error) {
	if opts.Scene == "" {
		opts.Scene = prefabs.DefaultScene
	}
	g := &Game{
		logger:   logger,
		opts:     opts,
		keyboard: input.NewKeyboard(),
		clock:    system.NewTPSClock(common.TPS),
		settings: sim.Settings{Preset: entity.PresetScene},
		debug:    opts.Debug,
	}

	if opts.Persist {
		store, err := persistence.Open(logger)
		if err != nil {
			logger.Warn("settings will not persist", zap.Error(err))
		} else {
			g.store = store
			if opts.ResetSettings {
				if err := store.Clear(); err != nil {
					logger.Warn("clear saved settings", zap.Error(err))
				}
			}
			g.restoreSettings()
		}
	}

	if err := g.reload(); err != nil {
		return nil, err
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.WatchDirs()...)
		if err != nil {
			logger.Warn("scene hot reload disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", zap.Error(err))
	} else {
		g.clipboard = true
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) restoreSettings() {
	saved, err := g.store.LoadGravity()
	if err != nil {
		g.logger.Warn("load saved settings", zap.Error(err))
		return
	}
	if saved == nil {
		return
	}
	preset := entity.AmbientPreset(saved.Preset)
	if _, _, err := preset.Vector(nil); err == nil {
		g.settings.Preset = preset
	}
	if saved.Composition != "" {
		if c, err := component.ParseComposition(saved.Composition); err == nil {
			g.settings.Composition = &c
		}
	}
	g.logger.Info("settings restored",
		zap.String("preset", string(g.settings.Preset)),
		zap.String("composition", saved.Composition),
	)
}

func (g *Game) saveSettings() {
	saved := persistence.SavedGravity{Preset: string(g.settings.Preset)}
	if g.settings.Composition != nil {
		saved.Composition = g.settings.Composition.String()
	}
	if err := g.store.SaveGravity(saved); err != nil {
		g.logger.Warn("save settings", zap.Error(err))
	}
}

// reload rebuilds the world from the scene file. On failure the running
// simulation is left untouched.
func (g *Game) reload() error {
	next, err := sim.Load(g.opts.Scene, g.keyboard, g.clock, g.logger)
	if err != nil {
		return err
	}
	if err := next.Apply(g.settings); err != nil {
		return err
	}
	hash, err := prefabs.SceneHash(g.opts.Scene)
	if err != nil {
		g.logger.Warn("hash scene", zap.Error(err))
	}
	if g.sim != nil {
		g.sim.Physics.Reset()
	}
	g.sim = next
	g.hash = hash
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	changed := false
	for drained := false; !drained; {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Debug("prefab changed", zap.String("path", path))
			changed = true
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("watcher", zap.Error(err))
			}
		default:
			drained = true
		}
	}
	if !changed {
		return
	}

	hash, err := prefabs.SceneHash(g.opts.Scene)
	if err != nil {
		g.logger.Warn("scene reload skipped", zap.Error(err))
		g.flash("reload failed: " + err.Error())
		return
	}
	if hash == g.hash {
		return
	}
	if err := g.reload(); err != nil {
		g.logger.Warn("scene reload failed", zap.Error(err))
		g.flash("reload failed: " + err.Error())
		return
	}
	g.logger.Info("scene reloaded", zap.String("scene", g.opts.Scene), zap.Stringer("id", g.sim.Scene.ID))
	g.flash("scene reloaded")
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.setPaused(!g.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copySnapshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.resetScene()
	}

	if g.messageTimer > 0 {
		g.messageTimer--
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.sim.Step()
	return nil
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	g.keyboard.SetEnabled(!paused)
}

func (g *Game) resetScene() {
	if err := g.reload(); err != nil {
		g.logger.Warn("reset scene", zap.Error(err))
		g.flash("reset failed: " + err.Error())
		return
	}
	g.flash("scene reset")
}

func (g *Game) toggleComposition() {
	c, err := entity.ToggleComposition(g.sim.World)
	if err != nil {
		g.logger.Warn("toggle composition", zap.Error(err))
		return
	}
	g.settings.Composition = &c
	g.saveSettings()
	g.flash("composition: " + c.String())
}

func (g *Game) cyclePreset() {
	next := g.settings.Preset.Next()
	if err := entity.ApplyPreset(g.sim.World, g.sim.Scene, next); err != nil {
		g.logger.Warn("apply preset", zap.Error(err))
		return
	}
	g.settings.Preset = next
	g.saveSettings()
	g.flash("ambient gravity: " + string(next))
}

func (g *Game) copySnapshot() {
	if !g.clipboard {
		g.flash("clipboard unavailable")
		return
	}
	data, err := entity.Snapshot(g.sim.World, g.sim.Scene)
	if err != nil {
		g.logger.Warn("snapshot", zap.Error(err))
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.flash(fmt.Sprintf("copied snapshot (%d bytes)", len(data)))
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTimer = messageTicks
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.sim.Scene.Background)

	view := render.View{Width: common.BaseWidth, Height: common.BaseHeight, Zoom: 1}
	space := g.sim.Physics.Space()
	render.DrawBodies(screen, space, g.sim.World, view)
	if g.debug {
		render.DrawDebug(screen, space, view)
	}

	hud := render.HUD{
		Scene:  g.sim.Scene.Name,
		Preset: string(g.settings.Preset),
		Bodies: g.sim.Physics.BodyCount(),
		Debug:  g.debug,
	}
	if g.messageTimer > 0 {
		hud.Message = g.message
	}
	render.DrawHUD(screen, g.sim.World, hud)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() error {
	var errs []error
	if g.watcher != nil {
		errs = append(errs, g.watcher.Close())
	}
	if g.sim != nil {
		g.sim.Physics.Reset()
	}
	return errors.Join(errs...)
}
