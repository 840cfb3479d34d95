package system

import (
	"testing"

	"github.com/milk9111/customgravity/ecs"
	"github.com/milk9111/customgravity/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBody(t *testing.T, w *ecs.World, override *component.GravityOverride) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{
		Kind:     component.BodyDynamic,
		Collider: component.Collider{Shape: component.ShapeCircle, Radius: 5},
	}))
	if override != nil {
		require.NoError(t, ecs.Add(w, e, component.GravityOverrideComponent, *override))
	}
	return e
}

func accumulator(t *testing.T, w *ecs.World, e ecs.Entity) component.GravityAccumulator {
	t.Helper()
	acc, ok := ecs.Get(w, e, component.GravityAccumulatorComponent)
	require.True(t, ok, "accumulator missing for %v", e)
	return acc
}

func TestGravitySystem_ReplaceMode(t *testing.T) {
	w := ecs.NewWorld()
	_, err := ecs.SetSingleton(w, component.AmbientGravityComponent, component.AmbientGravity{X: 0, Y: -500})
	require.NoError(t, err)

	overridden := newBody(t, w, &component.GravityOverride{X: 300, Y: 200})
	ambient := newBody(t, w, nil)
	zero := newBody(t, w, &component.GravityOverride{})

	sys := NewGravitySystem()
	for i := 0; i < 5; i++ {
		sys.Update(w)
	}

	assert.Equal(t, component.GravityAccumulator{X: 300, Y: 200}, accumulator(t, w, overridden), "override must never blend with ambient")
	assert.Equal(t, component.GravityAccumulator{X: 0, Y: -500}, accumulator(t, w, ambient))
	assert.Equal(t, component.GravityAccumulator{}, accumulator(t, w, zero), "explicit zero override means no gravity")
}

func TestGravitySystem_TracksAmbientChanges(t *testing.T) {
	w := ecs.NewWorld()
	_, err := ecs.SetSingleton(w, component.AmbientGravityComponent, component.AmbientGravity{Y: -100})
	require.NoError(t, err)
	e := newBody(t, w, nil)

	sys := NewGravitySystem()
	sys.Update(w)
	assert.Equal(t, -100.0, accumulator(t, w, e).Y)

	_, err = ecs.SetSingleton(w, component.AmbientGravityComponent, component.AmbientGravity{X: 40, Y: 250})
	require.NoError(t, err)
	sys.Update(w)
	assert.Equal(t, component.GravityAccumulator{X: 40, Y: 250}, accumulator(t, w, e))
}

func TestGravitySystem_RemovedOverrideFallsBackToAmbient(t *testing.T) {
	w := ecs.NewWorld()
	_, err := ecs.SetSingleton(w, component.AmbientGravityComponent, component.AmbientGravity{Y: -9})
	require.NoError(t, err)
	e := newBody(t, w, &component.GravityOverride{X: 1})

	sys := NewGravitySystem()
	sys.Update(w)
	assert.Equal(t, 1.0, accumulator(t, w, e).X)

	require.True(t, ecs.Remove(w, e, component.GravityOverrideComponent))
	sys.Update(w)
	assert.Equal(t, component.GravityAccumulator{Y: -9}, accumulator(t, w, e))
}

func TestGravitySystem_NoAmbientSingleton(t *testing.T) {
	w := ecs.NewWorld()
	e := newBody(t, w, nil)

	NewGravitySystem().Update(w)
	assert.Equal(t, component.GravityAccumulator{}, accumulator(t, w, e))
}

func TestComposeGravity(t *testing.T) {
	tests := []struct {
		name     string
		ambient  component.AmbientGravity
		override *component.GravityOverride
		wantX    float64
		wantY    float64
	}{
		{"no_override_replace", component.AmbientGravity{X: 1, Y: 2}, nil, 1, 2},
		{"no_override_additive", component.AmbientGravity{X: 1, Y: 2, Composition: component.CompositionAdditive}, nil, 1, 2},
		{"override_replace", component.AmbientGravity{X: 1, Y: 2}, &component.GravityOverride{X: -5, Y: 7}, -5, 7},
		{"override_additive", component.AmbientGravity{X: 1, Y: 2, Composition: component.CompositionAdditive}, &component.GravityOverride{X: -5, Y: 7}, -4, 9},
		{"zero_override_replace", component.AmbientGravity{Y: -500}, &component.GravityOverride{}, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := ComposeGravity(tc.ambient, tc.override)
			assert.Equal(t, tc.wantX, x)
			assert.Equal(t, tc.wantY, y)
		})
	}
}
