package render

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/customgravity/ecs"
	"github.com/milk9111/customgravity/ecs/component"
)

// HUD is the per-frame status shown in the top-left corner.
type HUD struct {
	Scene   string
	Preset  string
	Bodies  int
	Debug   bool
	Message string
}

func DrawHUD(screen *ebiten.Image, w *ecs.World, hud HUD) {
	if screen == nil {
		return
	}
	ambient, _ := ecs.Singleton(w, component.AmbientGravityComponent)
	in, _ := ecs.Singleton(w, component.InputComponent)

	var b strings.Builder
	fmt.Fprintf(&b, "Scene: %s\n", hud.Scene)
	fmt.Fprintf(&b, "Ambient: (%.1f, %.1f) [%s]\n", ambient.X, ambient.Y, hud.Preset)
	fmt.Fprintf(&b, "Composition: %s\n", ambient.Composition)
	fmt.Fprintf(&b, "Bodies: %d  FPS: %.0f  TPS: %.0f\n", hud.Bodies, ebiten.ActualFPS(), ebiten.ActualTPS())
	if hud.Debug {
		fmt.Fprintf(&b, "Input: up=%t down=%t left=%t right=%t\n", in.Up, in.Down, in.Left, in.Right)
		if t, ok := ecs.Singleton(w, component.TimeComponent); ok {
			fmt.Fprintf(&b, "Tick: %d  t=%.2fs\n", t.Tick, t.Elapsed)
		}
	}
	b.WriteString("WASD/arrows move  R reset  F1 debug  F2 copy  Esc menu\n")
	if hud.Message != "" {
		b.WriteString(hud.Message)
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 10, 10)
}
