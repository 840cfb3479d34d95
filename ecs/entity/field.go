package entity

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/customgravity/ecs/component"
	"github.com/milk9111/customgravity/prefabs"
)

// Cell is one slot of a grid: its integer index and world position.
type Cell struct {
	IX, IY int
	X, Y   float64
}

// GravityField computes the override for a grid body. ok is false when the
// body should keep using ambient gravity.
type GravityField interface {
	At(c Cell) (override component.GravityOverride, ok bool, err error)
}

// NoField leaves every body on ambient gravity.
type NoField struct{}

func (NoField) At(Cell) (component.GravityOverride, bool, error) {
	return component.GravityOverride{}, false, nil
}

// ConstantField gives every body the same override.
type ConstantField struct {
	X, Y float64
}

func (f ConstantField) At(Cell) (component.GravityOverride, bool, error) {
	return component.GravityOverride{X: f.X, Y: f.Y}, true, nil
}

// IndexField pulls each body toward the grid cell (0, 0), proportional to its
// index: (-ix*scale, -iy*scale).
type IndexField struct {
	Scale float64
}

func (f IndexField) At(c Cell) (component.GravityOverride, bool, error) {
	return component.GravityOverride{
		X: -float64(c.IX) * f.Scale,
		Y: -float64(c.IY) * f.Scale,
	}, true, nil
}

// RadialField points at the world origin with magnitude proportional to the
// distance from it.
type RadialField struct {
	Scale float64
}

func (f RadialField) At(c Cell) (component.GravityOverride, bool, error) {
	return component.GravityOverride{X: -c.X * f.Scale, Y: -c.Y * f.Scale}, true, nil
}

// ScriptField evaluates a tengo script per body. The script sees x, y, ix, iy
// and scale, and must assign gx and gy.
type ScriptField struct {
	name     string
	scale    float64
	compiled *tengo.Compiled
}

func NewScriptField(name string, src []byte, scale float64) (*ScriptField, error) {
	script := tengo.NewScript(src)
	for _, v := range []struct {
		name  string
		value any
	}{
		{"x", 0.0},
		{"y", 0.0},
		{"ix", 0},
		{"iy", 0},
		{"scale", 0.0},
	} {
		if err := script.Add(v.name, v.value); err != nil {
			return nil, fmt.Errorf("field script %s: declare %s: %w", name, v.name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("field script %s: compile: %w", name, err)
	}
	return &ScriptField{name: name, scale: scale, compiled: compiled}, nil
}

func (f *ScriptField) At(c Cell) (component.GravityOverride, bool, error) {
	if f == nil || f.compiled == nil {
		return component.GravityOverride{}, false, fmt.Errorf("field script: not compiled")
	}
	inputs := map[string]any{
		"x":     c.X,
		"y":     c.Y,
		"ix":    c.IX,
		"iy":    c.IY,
		"scale": f.scale,
	}
	for k, v := range inputs {
		if err := f.compiled.Set(k, v); err != nil {
			return component.GravityOverride{}, false, fmt.Errorf("field script %s: set %s: %w", f.name, k, err)
		}
	}
	if err := f.compiled.Run(); err != nil {
		return component.GravityOverride{}, false, fmt.Errorf("field script %s: run cell (%d,%d): %w", f.name, c.IX, c.IY, err)
	}
	if !f.compiled.IsDefined("gx") || !f.compiled.IsDefined("gy") {
		return component.GravityOverride{}, false, fmt.Errorf("field script %s: gx and gy must be assigned", f.name)
	}
	return component.GravityOverride{
		X: f.compiled.Get("gx").Float(),
		Y: f.compiled.Get("gy").Float(),
	}, true, nil
}

// NewField resolves a field spec. Scripts are loaded through prefabs so
// on-disk edits take effect on reload.
func NewField(spec prefabs.GravityFieldSpec) (GravityField, error) {
	switch strings.ToLower(strings.TrimSpace(spec.Type)) {
	case "", "none":
		return NoField{}, nil
	case "constant":
		return ConstantField{X: spec.X, Y: spec.Y}, nil
	case "index":
		return IndexField{Scale: spec.Scale}, nil
	case "radial":
		return RadialField{Scale: spec.Scale}, nil
	case "script":
		src, err := prefabs.LoadScript(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("field script %s: load: %w", spec.Script, err)
		}
		return NewScriptField(spec.Script, src, spec.Scale)
	}
	return nil, fmt.Errorf("unknown gravity field %q", spec.Type)
}
