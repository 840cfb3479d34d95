package system

import (
	"github.com/milk9111/customgravity/ecs"
	"github.com/milk9111/customgravity/ecs/component"
)

// Clock reports the elapsed time for the tick about to run, in seconds.
type Clock interface {
	Delta() float64
}

// FixedClock advances by the same step every tick. The game loop runs at a
// fixed TPS, so this keeps the simulation frame-rate independent.
type FixedClock struct {
	Step float64
}

// NewTPSClock returns a clock stepping 1/tps seconds per tick.
func NewTPSClock(tps int) FixedClock {
	if tps <= 0 {
		tps = 60
	}
	return FixedClock{Step: 1.0 / float64(tps)}
}

func (c FixedClock) Delta() float64 {
	return c.Step
}

// TimeSystem publishes the tick clock into the Time singleton.
type TimeSystem struct {
	clock Clock
}

func NewTimeSystem(clock Clock) *TimeSystem {
	return &TimeSystem{clock: clock}
}

func (ts *TimeSystem) Update(w *ecs.World) {
	if ts == nil || ts.clock == nil || w == nil {
		return
	}
	dt := ts.clock.Delta()
	if dt < 0 {
		// time never runs backwards
		dt = 0
	}
	t, _ := ecs.Singleton(w, component.TimeComponent)
	t.Delta = dt
	t.Elapsed += dt
	t.Tick++
	if _, err := ecs.SetSingleton(w, component.TimeComponent, t); err != nil {
		panic("time system: update time: " + err.Error())
	}
}

func tickDelta(w *ecs.World) float64 {
	t, ok := ecs.Singleton(w, component.TimeComponent)
	if !ok {
		return 0
	}
	return t.Delta
}
