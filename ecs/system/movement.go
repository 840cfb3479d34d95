package system

import (
	"github.com/milk9111/customgravity/ecs"
	"github.com/milk9111/customgravity/ecs/component"
)

// MovementSystem turns held directions into velocity changes on Controllable
// bodies. Speed is not clamped: holding a direction keeps accelerating.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	input, ok := ecs.Singleton(w, component.InputComponent)
	if !ok || !input.Any() {
		return
	}
	tuning, ok := ecs.Singleton(w, component.MovementTuningComponent)
	if !ok {
		tuning = component.DefaultMovementTuning()
	}
	dt := tickDelta(w)

	for _, e := range w.Query(component.ControllableComponent.Kind(), component.LinearVelocityComponent.Kind()) {
		vel, ok := ecs.GetRef(w, e, component.LinearVelocityComponent)
		if !ok {
			continue
		}
		applyInput(vel, input, tuning, dt)
	}
}

func applyInput(vel *component.LinearVelocity, input component.Input, tuning component.MovementTuning, dt float64) {
	if input.Up {
		vel.Y += tuning.Up * dt
	}
	if input.Down {
		vel.Y -= tuning.Down * dt
	}
	if input.Left {
		vel.X -= tuning.Left * dt
	}
	if input.Right {
		vel.X += tuning.Right * dt
	}
}
