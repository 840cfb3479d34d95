package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/customgravity/ecs/component"
)

// Direction is one of the four movement directions.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	dirCount
)

// Binding lists every key and gamepad button that activates a direction.
type Binding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// DefaultBindings maps WASD, the arrow keys and the d-pad.
func DefaultBindings() map[Direction]Binding {
	return map[Direction]Binding{
		DirUp: {
			Keys:                   []ebiten.Key{ebiten.KeyW, ebiten.KeyUp},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftTop},
		},
		DirDown: {
			Keys:                   []ebiten.Key{ebiten.KeyS, ebiten.KeyDown},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftBottom},
		},
		DirLeft: {
			Keys:                   []ebiten.Key{ebiten.KeyA, ebiten.KeyLeft},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftLeft},
		},
		DirRight: {
			Keys:                   []ebiten.Key{ebiten.KeyD, ebiten.KeyRight},
			StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftRight},
		},
	}
}

const defaultDeadzone = 0.25

// Keyboard polls Ebiten's keyboard and standard-layout gamepads. It
// implements system.InputSource.
type Keyboard struct {
	bindings   map[Direction]Binding
	deadzone   float64
	gamepadIDs []ebiten.GamepadID
	disabled   bool
}

func NewKeyboard() *Keyboard {
	return &Keyboard{
		bindings: DefaultBindings(),
		deadzone: defaultDeadzone,
	}
}

// SetEnabled turns polling off while a menu owns the input.
func (k *Keyboard) SetEnabled(enabled bool) {
	k.disabled = !enabled
}

func (k *Keyboard) Poll() component.Input {
	if k == nil || k.disabled {
		return component.Input{}
	}

	var held [dirCount]bool
	for dir, b := range k.bindings {
		for _, key := range b.Keys {
			if ebiten.IsKeyPressed(key) {
				held[dir] = true
				break
			}
		}
	}

	k.gamepadIDs = ebiten.AppendGamepadIDs(k.gamepadIDs[:0])
	for _, id := range k.gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for dir, b := range k.bindings {
			for _, btn := range b.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(id, btn) {
					held[dir] = true
				}
			}
		}

		// stick y grows downward
		h := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		v := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		held[DirLeft] = held[DirLeft] || h < -k.deadzone
		held[DirRight] = held[DirRight] || h > k.deadzone
		held[DirUp] = held[DirUp] || v < -k.deadzone
		held[DirDown] = held[DirDown] || v > k.deadzone
	}

	return component.Input{
		Up:    held[DirUp],
		Down:  held[DirDown],
		Left:  held[DirLeft],
		Right: held[DirRight],
	}
}
