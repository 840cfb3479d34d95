package system

import (
	"github.com/milk9111/customgravity/ecs"
	"github.com/milk9111/customgravity/ecs/component"
)

// GravitySystem decides the gravitational acceleration of every body for the
// coming physics step. It must run before PhysicsSystem in the same tick.
//
// The result is assigned to the body's GravityAccumulator rather than added,
// so running the system more than once per tick is harmless.
type GravitySystem struct{}

func NewGravitySystem() *GravitySystem {
	return &GravitySystem{}
}

func (g *GravitySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ambient, _ := ecs.Singleton(w, component.AmbientGravityComponent)

	for _, e := range w.Query(component.RigidBodyComponent.Kind()) {
		override, has := ecs.Get(w, e, component.GravityOverrideComponent)
		var ov *component.GravityOverride
		if has {
			ov = &override
		}
		x, y := ComposeGravity(ambient, ov)
		if err := ecs.Add(w, e, component.GravityAccumulatorComponent, component.GravityAccumulator{X: x, Y: y}); err != nil {
			panic("gravity system: update accumulator: " + err.Error())
		}
	}
}

// ComposeGravity returns the acceleration for a body given the ambient field
// and its override, if any.
func ComposeGravity(ambient component.AmbientGravity, override *component.GravityOverride) (float64, float64) {
	if override == nil {
		return ambient.X, ambient.Y
	}
	if ambient.Composition == component.CompositionAdditive {
		return ambient.X + override.X, ambient.Y + override.Y
	}
	return override.X, override.Y
}
