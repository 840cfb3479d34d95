package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/customgravity/common"
	"github.com/milk9111/customgravity/logging"
	"github.com/milk9111/customgravity/prefabs"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and debug logging")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	sceneName := flag.String("scene", prefabs.DefaultScene, "scene file in prefabs/ (embedded copy used when missing on disk)")
	noWatch := flag.Bool("no-watch", false, "disable scene hot reload")
	noPersist := flag.Bool("no-persist", false, "do not load or save menu settings")
	resetSettings := flag.Bool("reset-settings", false, "forget saved menu settings")
	flag.Parse()

	logger, err := logging.New(logging.Config{Debug: *debug})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("custom gravity")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Options{
		Scene:   *sceneName,
		Debug:   *debug,
		Watch:   !*noWatch,
		Persist: !*noPersist,

		ResetSettings: *resetSettings,
	}, logger)
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}
	defer func() {
		if err := game.Close(); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("run game", zap.Error(err))
	}
}
