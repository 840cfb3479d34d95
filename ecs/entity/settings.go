package entity

import (
	"fmt"

	"github.com/milk9111/customgravity/ecs"
	"github.com/milk9111/customgravity/ecs/component"
)

// LengthUnit is the number of world units (pixels) per meter.
const LengthUnit = 20.0

const standardGravity = 9.81 * LengthUnit

// AmbientPreset names an ambient gravity the pause menu can switch to.
type AmbientPreset string

const (
	PresetScene AmbientPreset = "scene"
	PresetZero  AmbientPreset = "zero"
	PresetDown  AmbientPreset = "down"
	PresetUp    AmbientPreset = "up"
)

var presetOrder = []AmbientPreset{PresetScene, PresetZero, PresetDown, PresetUp}

// Presets lists every preset in menu order.
func Presets() []AmbientPreset {
	return append([]AmbientPreset(nil), presetOrder...)
}

// Next returns the preset after p, wrapping around.
func (p AmbientPreset) Next() AmbientPreset {
	for i, q := range presetOrder {
		if q == p {
			return presetOrder[(i+1)%len(presetOrder)]
		}
	}
	return PresetScene
}

// Vector resolves the preset to a gravity vector. The scene preset returns
// whatever the scene file declared.
func (p AmbientPreset) Vector(scene *Scene) (float64, float64, error) {
	switch p {
	case PresetScene, "":
		if scene == nil {
			return 0, 0, nil
		}
		return scene.Ambient.X, scene.Ambient.Y, nil
	case PresetZero:
		return 0, 0, nil
	case PresetDown:
		return 0, -standardGravity, nil
	case PresetUp:
		return 0, standardGravity, nil
	}
	return 0, 0, fmt.Errorf("unknown ambient preset %q", p)
}

// SetAmbient replaces the ambient vector, keeping the composition mode. Bodies
// pick it up on the next tick.
func SetAmbient(w *ecs.World, x, y float64) error {
	ambient, _ := ecs.Singleton(w, component.AmbientGravityComponent)
	ambient.X = x
	ambient.Y = y
	_, err := ecs.SetSingleton(w, component.AmbientGravityComponent, ambient)
	return err
}

func ApplyPreset(w *ecs.World, scene *Scene, p AmbientPreset) error {
	x, y, err := p.Vector(scene)
	if err != nil {
		return err
	}
	return SetAmbient(w, x, y)
}

func SetComposition(w *ecs.World, c component.Composition) error {
	ambient, _ := ecs.Singleton(w, component.AmbientGravityComponent)
	ambient.Composition = c
	_, err := ecs.SetSingleton(w, component.AmbientGravityComponent, ambient)
	return err
}

// ToggleComposition flips between replace and additive and returns the new mode.
func ToggleComposition(w *ecs.World) (component.Composition, error) {
	ambient, _ := ecs.Singleton(w, component.AmbientGravityComponent)
	next := component.CompositionAdditive
	if ambient.Composition == component.CompositionAdditive {
		next = component.CompositionReplace
	}
	return next, SetComposition(w, next)
}
