package entity

import (
	"testing"

	"github.com/milk9111/customgravity/ecs/component"
	"github.com/milk9111/customgravity/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields(t *testing.T) {
	cell := Cell{IX: 3, IY: -2, X: 75, Y: -50}

	tests := []struct {
		name  string
		field GravityField
		want  component.GravityOverride
		ok    bool
	}{
		{"none", NoField{}, component.GravityOverride{}, false},
		{"constant", ConstantField{X: 1, Y: -9}, component.GravityOverride{X: 1, Y: -9}, true},
		{"index", IndexField{Scale: 100}, component.GravityOverride{X: -300, Y: 200}, true},
		{"radial", RadialField{Scale: 2}, component.GravityOverride{X: -150, Y: 100}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok, err := tc.field.At(cell)
			require.NoError(t, err)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestScriptField(t *testing.T) {
	src := []byte(`
gx := x * scale + ix
gy := y * scale - iy
`)
	f, err := NewScriptField("inline", src, 2)
	require.NoError(t, err)

	got, ok, err := f.At(Cell{IX: 1, IY: 2, X: 10, Y: -5})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, component.GravityOverride{X: 21, Y: -12}, got)

	// compiled state is reused across cells
	got, _, err = f.At(Cell{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, component.GravityOverride{X: 2, Y: 2}, got)
}

func TestScriptFieldMatchesIndexField(t *testing.T) {
	scripted, err := NewField(prefabs.GravityFieldSpec{Type: "script", Script: "index.tengo", Scale: 100})
	require.NoError(t, err)

	for ix := -3; ix <= 3; ix++ {
		for iy := -2; iy <= 2; iy++ {
			cell := Cell{IX: ix, IY: iy, X: float64(ix) * 25, Y: float64(iy) * 25}
			want, _, _ := IndexField{Scale: 100}.At(cell)
			got, ok, err := scripted.At(cell)
			require.NoError(t, err)
			require.True(t, ok)
			assert.InDelta(t, want.X, got.X, 1e-9)
			assert.InDelta(t, want.Y, got.Y, 1e-9)
		}
	}
}

func TestScriptFieldErrors(t *testing.T) {
	_, err := NewScriptField("broken", []byte(`gx := (`), 1)
	assert.Error(t, err)

	f, err := NewScriptField("silent", []byte(`a := x`), 1)
	require.NoError(t, err)
	_, _, err = f.At(Cell{})
	assert.Error(t, err)

	_, err = NewField(prefabs.GravityFieldSpec{Type: "script", Script: "missing.tengo"})
	assert.Error(t, err)

	_, err = NewField(prefabs.GravityFieldSpec{Type: "vortex"})
	assert.Error(t, err)
}

func TestNewFieldTypes(t *testing.T) {
	tests := []struct {
		typ  string
		want GravityField
	}{
		{"", NoField{}},
		{"none", NoField{}},
		{"Constant", ConstantField{X: 1, Y: 2}},
		{"index", IndexField{Scale: 3}},
		{" radial ", RadialField{Scale: 3}},
	}
	for _, tc := range tests {
		t.Run(tc.typ, func(t *testing.T) {
			f, err := NewField(prefabs.GravityFieldSpec{Type: tc.typ, X: 1, Y: 2, Scale: 3})
			require.NoError(t, err)
			assert.IsType(t, tc.want, f)
		})
	}
}
