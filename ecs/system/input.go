package system

import (
	"github.com/milk9111/customgravity/ecs"
	"github.com/milk9111/customgravity/ecs/component"
)

// InputSource is a read-only view of the directional input devices.
type InputSource interface {
	Poll() component.Input
}

// InputSystem polls the device state once at the top of the tick and stores
// the snapshot, so every later system in the tick sees the same input.
type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.source == nil || w == nil {
		return
	}
	if _, err := ecs.SetSingleton(w, component.InputComponent, i.source.Poll()); err != nil {
		panic("input system: update input: " + err.Error())
	}
}
