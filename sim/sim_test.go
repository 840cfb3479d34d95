package sim

import (
	"testing"

	"github.com/milk9111/customgravity/ecs"
	"github.com/milk9111/customgravity/ecs/component"
	"github.com/milk9111/customgravity/ecs/entity"
	"github.com/milk9111/customgravity/ecs/system"
	"github.com/milk9111/customgravity/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type heldInput struct {
	state component.Input
}

func (h *heldInput) Poll() component.Input {
	return h.state
}

func byName(t *testing.T, w *ecs.World, name string) ecs.Entity {
	t.Helper()
	for _, e := range w.Query(component.NameComponent.Kind()) {
		if n, _ := ecs.Get(w, e, component.NameComponent); n.Value == name {
			return e
		}
	}
	t.Fatalf("no entity named %q", name)
	return 0
}

func TestLoadCustomGravity(t *testing.T) {
	s, err := Load(prefabs.DefaultScene, &heldInput{}, system.NewTPSClock(60), nil)
	require.NoError(t, err)

	s.Step()
	assert.Equal(t, 4+24*16, s.Physics.BodyCount())

	// marble[2,2] is a circle with room around it, so only its override acts
	e := byName(t, s.World, "marble[2,2]")
	v, _ := ecs.Get(s.World, e, component.LinearVelocityComponent)
	assert.InDelta(t, -200.0/60, v.X, 1e-9)
	assert.InDelta(t, -200.0/60, v.Y, 1e-9)

	center := byName(t, s.World, "marble[0,0]")
	v, _ = ecs.Get(s.World, center, component.LinearVelocityComponent)
	assert.InDelta(t, 0, v.X, 1e-9)
	assert.InDelta(t, 0, v.Y, 1e-9)
}

func TestControlledBodiesRespondToInput(t *testing.T) {
	in := &heldInput{state: component.Input{Up: true}}
	s, err := Load(prefabs.DefaultScene, in, system.NewTPSClock(60), nil)
	require.NoError(t, err)

	s.Step()
	e := byName(t, s.World, "marble[0,0]")
	v, _ := ecs.Get(s.World, e, component.LinearVelocityComponent)
	assert.InDelta(t, 2500.0/60, v.Y, 1e-9)

	floor := byName(t, s.World, "floor")
	tr, _ := ecs.Get(s.World, floor, component.TransformComponent)
	assert.Equal(t, -300.0, tr.Y, "statics never move")
}

func TestApplySettings(t *testing.T) {
	s, err := Load("orbit.yaml", &heldInput{}, system.NewTPSClock(60), nil)
	require.NoError(t, err)

	require.NoError(t, s.Apply(Settings{Preset: entity.PresetScene}))
	assert.Equal(t, component.AmbientGravity{Y: -200, Composition: component.CompositionAdditive}, s.Ambient())

	replace := component.CompositionReplace
	require.NoError(t, s.Apply(Settings{Preset: entity.PresetZero, Composition: &replace}))
	assert.Equal(t, component.AmbientGravity{}, s.Ambient())

	assert.Error(t, s.Apply(Settings{Preset: "sideways"}))
}

func TestAmbientChangeTakesEffectNextTick(t *testing.T) {
	s, err := Load("orbit.yaml", &heldInput{}, system.NewTPSClock(60), nil)
	require.NoError(t, err)

	drifter := byName(t, s.World, "drifter")
	weightless := byName(t, s.World, "weightless")

	s.Step()
	v, _ := ecs.Get(s.World, drifter, component.LinearVelocityComponent)
	assert.InDelta(t, -200.0/60, v.Y, 1e-9)

	require.NoError(t, entity.SetAmbient(s.World, 0, 300))
	s.Step()
	v, _ = ecs.Get(s.World, drifter, component.LinearVelocityComponent)
	assert.InDelta(t, (-200.0+300.0)/60, v.Y, 1e-9)

	// additive mode with a zero override follows ambient too
	w, _ := ecs.Get(s.World, weightless, component.LinearVelocityComponent)
	assert.InDelta(t, (-200.0+300.0)/60, w.Y, 1e-9)
}

func TestLoadMissingScene(t *testing.T) {
	_, err := Load("missing.yaml", &heldInput{}, system.NewTPSClock(60), nil)
	assert.Error(t, err)
}
