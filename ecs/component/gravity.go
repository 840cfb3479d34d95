package component

import (
	"fmt"
	"strings"
)

// GravityOverride replaces the ambient gravity for one body. The vector is an
// acceleration, so it is independent of mass. A zero vector means "no gravity",
// which is not the same as carrying no override at all.
type GravityOverride struct {
	X float64
	Y float64
}

var GravityOverrideComponent = NewComponent[GravityOverride]()

// Composition decides how an override combines with ambient gravity.
type Composition int

const (
	// CompositionReplace uses the override instead of ambient gravity.
	CompositionReplace Composition = iota
	// CompositionAdditive applies ambient gravity plus the override.
	CompositionAdditive
)

func (c Composition) String() string {
	if c == CompositionAdditive {
		return "additive"
	}
	return "replace"
}

func ParseComposition(s string) (Composition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "replace":
		return CompositionReplace, nil
	case "additive", "add":
		return CompositionAdditive, nil
	}
	return CompositionReplace, fmt.Errorf("unknown gravity composition %q", s)
}

// AmbientGravity is the world singleton applied to bodies without an override.
type AmbientGravity struct {
	X           float64
	Y           float64
	Composition Composition
}

var AmbientGravityComponent = NewComponent[AmbientGravity]()

// GravityAccumulator is the gravitational acceleration handed to the physics
// engine for the current tick. It is assigned, never summed, once per tick.
type GravityAccumulator struct {
	X float64
	Y float64
}

var GravityAccumulatorComponent = NewComponent[GravityAccumulator]()
