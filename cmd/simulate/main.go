// Command simulate steps a scene without opening a window and prints a YAML
// snapshot of the final state.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/milk9111/customgravity/common"
	"github.com/milk9111/customgravity/ecs/component"
	"github.com/milk9111/customgravity/ecs/entity"
	"github.com/milk9111/customgravity/ecs/system"
	"github.com/milk9111/customgravity/logging"
	"github.com/milk9111/customgravity/prefabs"
	"github.com/milk9111/customgravity/sim"
	"go.uber.org/zap"
)

// heldKeys reports the same directions every tick.
type heldKeys struct {
	state component.Input
}

func (h heldKeys) Poll() component.Input {
	return h.state
}

func parseHeld(s string) (component.Input, error) {
	var in component.Input
	for _, key := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "":
		case "up":
			in.Up = true
		case "down":
			in.Down = true
		case "left":
			in.Left = true
		case "right":
			in.Right = true
		default:
			return in, fmt.Errorf("unknown direction %q", key)
		}
	}
	return in, nil
}

func main() {
	sceneName := flag.String("scene", prefabs.DefaultScene, "scene file in prefabs/")
	ticks := flag.Int("ticks", common.TPS, "number of ticks to simulate")
	hold := flag.String("hold", "", "comma separated directions held every tick (up,down,left,right)")
	preset := flag.String("preset", string(entity.PresetScene), "ambient gravity preset")
	composition := flag.String("composition", "", "override the scene composition (replace or additive)")
	out := flag.String("o", "", "write the snapshot to this file instead of stdout")
	debug := flag.Bool("debug", false, "debug logging")
	list := flag.Bool("list", false, "list the embedded scenes and exit")
	flag.Parse()

	if *list {
		for _, name := range prefabs.Scenes() {
			fmt.Println(name)
		}
		return
	}

	logger, err := logging.New(logging.Config{Debug: *debug, OutputPaths: []string{"stderr"}})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	held, err := parseHeld(*hold)
	if err != nil {
		logger.Fatal("parse -hold", zap.Error(err))
	}
	if *ticks < 0 {
		logger.Fatal("-ticks must not be negative", zap.Int("ticks", *ticks))
	}

	settings := sim.Settings{Preset: entity.AmbientPreset(*preset)}
	if *composition != "" {
		c, err := component.ParseComposition(*composition)
		if err != nil {
			logger.Fatal("parse -composition", zap.Error(err))
		}
		settings.Composition = &c
	}

	s, err := sim.Load(*sceneName, heldKeys{state: held}, system.NewTPSClock(common.TPS), logger)
	if err != nil {
		logger.Fatal("load scene", zap.Error(err))
	}
	if err := s.Apply(settings); err != nil {
		logger.Fatal("apply settings", zap.Error(err))
	}

	for i := 0; i < *ticks; i++ {
		s.Step()
	}
	logger.Info("simulation finished",
		zap.String("scene", s.Scene.Name),
		zap.Int("ticks", *ticks),
		zap.Int("bodies", s.Physics.BodyCount()),
	)

	data, err := entity.Snapshot(s.World, s.Scene)
	if err != nil {
		logger.Fatal("snapshot", zap.Error(err))
	}
	if *out == "" {
		_, _ = os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Fatal("write snapshot", zap.Error(err), zap.String("path", *out))
	}
}
