package sim

import (
	"fmt"

	"github.com/milk9111/customgravity/ecs"
	"github.com/milk9111/customgravity/ecs/component"
	"github.com/milk9111/customgravity/ecs/entity"
	"github.com/milk9111/customgravity/ecs/system"
	"github.com/milk9111/customgravity/prefabs"
	"go.uber.org/zap"
)

// Settings are the user choices layered over a scene: the ambient preset and,
// if set, a composition mode that overrides the scene file.
type Settings struct {
	Preset      entity.AmbientPreset
	Composition *component.Composition
}

// Simulation is one built scene plus the tick pipeline that drives it.
type Simulation struct {
	World     *ecs.World
	Scene     *entity.Scene
	Physics   *system.PhysicsSystem
	Scheduler *ecs.Scheduler
}

// Build turns a scene spec into a ready-to-step simulation. The stage order is
// time, input, movement, gravity, physics.
func Build(spec *prefabs.SceneSpec, input system.InputSource, clock system.Clock, logger *zap.Logger) (*Simulation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := ecs.NewWorld()
	scene, err := entity.BuildScene(w, spec, logger)
	if err != nil {
		return nil, err
	}

	physics := system.NewPhysicsSystem(system.PhysicsConfig{
		Iterations: scene.Iterations,
		Damping:    scene.Damping,
	}, logger)

	scheduler := ecs.NewScheduler(
		system.NewTimeSystem(clock),
		system.NewInputSystem(input),
		system.NewMovementSystem(),
		system.NewGravitySystem(),
		physics,
	)

	return &Simulation{
		World:     w,
		Scene:     scene,
		Physics:   physics,
		Scheduler: scheduler,
	}, nil
}

// Load reads a scene by name through prefabs and builds it.
func Load(name string, input system.InputSource, clock system.Clock, logger *zap.Logger) (*Simulation, error) {
	spec, err := prefabs.LoadSceneSpec(name)
	if err != nil {
		return nil, err
	}
	s, err := Build(spec, input, clock, logger)
	if err != nil {
		return nil, fmt.Errorf("sim: load %s: %w", name, err)
	}
	return s, nil
}

// Apply writes settings into the world singletons.
func (s *Simulation) Apply(settings Settings) error {
	if err := entity.ApplyPreset(s.World, s.Scene, settings.Preset); err != nil {
		return fmt.Errorf("sim: apply preset: %w", err)
	}
	composition := s.Scene.Ambient.Composition
	if settings.Composition != nil {
		composition = *settings.Composition
	}
	if err := entity.SetComposition(s.World, composition); err != nil {
		return fmt.Errorf("sim: apply composition: %w", err)
	}
	return nil
}

func (s *Simulation) Step() {
	s.Scheduler.Update(s.World)
}

// Ambient returns the ambient gravity currently in effect.
func (s *Simulation) Ambient() component.AmbientGravity {
	a, _ := ecs.Singleton(s.World, component.AmbientGravityComponent)
	return a
}
