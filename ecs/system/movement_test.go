package system

import (
	"testing"

	"github.com/milk9111/customgravity/ecs"
	"github.com/milk9111/customgravity/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInput struct {
	state component.Input
	polls int
}

func (s *stubInput) Poll() component.Input {
	s.polls++
	return s.state
}

func movementWorld(t *testing.T, dt float64, input component.Input) (*ecs.World, ecs.Entity, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	_, err := ecs.SetSingleton(w, component.TimeComponent, component.Time{Delta: dt})
	require.NoError(t, err)
	_, err = ecs.SetSingleton(w, component.MovementTuningComponent, component.DefaultMovementTuning())
	require.NoError(t, err)
	_, err = ecs.SetSingleton(w, component.InputComponent, input)
	require.NoError(t, err)

	tagged := w.CreateEntity()
	require.NoError(t, ecs.Add(w, tagged, component.ControllableComponent, component.Controllable{}))
	require.NoError(t, ecs.Add(w, tagged, component.LinearVelocityComponent, component.LinearVelocity{X: 3, Y: 4}))

	untagged := w.CreateEntity()
	require.NoError(t, ecs.Add(w, untagged, component.LinearVelocityComponent, component.LinearVelocity{X: 3, Y: 4}))
	return w, tagged, untagged
}

func velocity(t *testing.T, w *ecs.World, e ecs.Entity) component.LinearVelocity {
	t.Helper()
	v, ok := ecs.Get(w, e, component.LinearVelocityComponent)
	require.True(t, ok)
	return v
}

func TestMovementSystem(t *testing.T) {
	tests := []struct {
		name  string
		dt    float64
		input component.Input
		want  component.LinearVelocity
	}{
		{"no_input_is_noop", 1.0 / 60, component.Input{}, component.LinearVelocity{X: 3, Y: 4}},
		{"up_only", 1.0, component.Input{Up: true}, component.LinearVelocity{X: 3, Y: 2504}},
		{"down_only", 1.0, component.Input{Down: true}, component.LinearVelocity{X: 3, Y: -496}},
		{"left_and_up_independent_axes", 1.0, component.Input{Left: true, Up: true}, component.LinearVelocity{X: -497, Y: 2504}},
		{"right_scaled_by_dt", 0.5, component.Input{Right: true}, component.LinearVelocity{X: 253, Y: 4}},
		{"opposites_cancel_partially", 1.0, component.Input{Up: true, Down: true}, component.LinearVelocity{X: 3, Y: 2004}},
		{"all_four", 1.0, component.Input{Up: true, Down: true, Left: true, Right: true}, component.LinearVelocity{X: 3, Y: 2004}},
		{"zero_dt", 0, component.Input{Up: true, Left: true}, component.LinearVelocity{X: 3, Y: 4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, tagged, untagged := movementWorld(t, tc.dt, tc.input)
			NewMovementSystem().Update(w)

			assert.Equal(t, tc.want, velocity(t, w, tagged))
			assert.Equal(t, component.LinearVelocity{X: 3, Y: 4}, velocity(t, w, untagged), "untagged bodies never follow input")
		})
	}
}

func TestMovementSystem_Unbounded(t *testing.T) {
	w, tagged, _ := movementWorld(t, 1.0, component.Input{Up: true})
	sys := NewMovementSystem()
	for i := 0; i < 1000; i++ {
		sys.Update(w)
	}
	assert.Equal(t, 4+1000*2500.0, velocity(t, w, tagged).Y)
}

func TestMovementSystem_CustomTuning(t *testing.T) {
	w, tagged, _ := movementWorld(t, 2, component.Input{Up: true, Right: true})
	_, err := ecs.SetSingleton(w, component.MovementTuningComponent, component.MovementTuning{Up: 10, Right: 1})
	require.NoError(t, err)

	NewMovementSystem().Update(w)
	assert.Equal(t, component.LinearVelocity{X: 5, Y: 24}, velocity(t, w, tagged))
}

func TestInputSystem_PollsOncePerTick(t *testing.T) {
	w := ecs.NewWorld()
	src := &stubInput{state: component.Input{Left: true}}
	sys := NewInputSystem(src)

	sys.Update(w)
	got, ok := ecs.Singleton(w, component.InputComponent)
	require.True(t, ok)
	assert.Equal(t, component.Input{Left: true}, got)
	assert.Equal(t, 1, src.polls)

	src.state = component.Input{}
	sys.Update(w)
	got, _ = ecs.Singleton(w, component.InputComponent)
	assert.False(t, got.Any())
	assert.Equal(t, 2, src.polls)
}

func TestTimeSystem(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewTimeSystem(NewTPSClock(50))

	sys.Update(w)
	sys.Update(w)

	tm, ok := ecs.Singleton(w, component.TimeComponent)
	require.True(t, ok)
	assert.InDelta(t, 0.02, tm.Delta, 1e-12)
	assert.InDelta(t, 0.04, tm.Elapsed, 1e-12)
	assert.Equal(t, uint64(2), tm.Tick)
}

func TestTimeSystem_NegativeDeltaClamped(t *testing.T) {
	w := ecs.NewWorld()
	NewTimeSystem(FixedClock{Step: -1}).Update(w)

	tm, _ := ecs.Singleton(w, component.TimeComponent)
	assert.Equal(t, 0.0, tm.Delta)
	assert.Equal(t, 0.0, tm.Elapsed)
}
