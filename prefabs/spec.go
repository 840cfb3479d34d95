package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultScene = "custom_gravity.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// SceneSpec is the on-disk description of a simulation scene.
type SceneSpec struct {
	Name     string       `yaml:"name"`
	World    WorldSpec    `yaml:"world"`
	Movement MovementSpec `yaml:"movement"`
	Statics  []BodySpec   `yaml:"statics,omitempty"`
	Bodies   []BodySpec   `yaml:"bodies,omitempty"`
	Grids    []GridSpec   `yaml:"grids,omitempty"`
}

func LoadSceneSpec(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate %s: %w", filename, err)
	}
	return &spec, nil
}

// ParseSceneSpec decodes and validates a scene from raw YAML.
func ParseSceneSpec(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal scene: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate scene: %w", err)
	}
	return &spec, nil
}

// Validate checks the structural parts of the scene that the YAML decoder
// cannot. Enum names are resolved by the scene builder.
func (s *SceneSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("scene is nil")
	}
	if s.World.Iterations < 0 {
		return fmt.Errorf("world: iterations must not be negative, got %d", s.World.Iterations)
	}
	if s.World.Damping < 0 || s.World.Damping > 1 {
		return fmt.Errorf("world: damping must be in [0,1], got %g", s.World.Damping)
	}
	for i, g := range s.Grids {
		label := g.Name
		if label == "" {
			label = strconv.Itoa(i)
		}
		if g.Columns.To < g.Columns.From || g.Rows.To < g.Rows.From {
			return fmt.Errorf("grid %s: range end before start", label)
		}
		if g.Spacing <= 0 {
			return fmt.Errorf("grid %s: spacing must be positive, got %g", label, g.Spacing)
		}
		if len(g.Shapes) == 0 {
			return fmt.Errorf("grid %s: no shapes", label)
		}
		if g.Field.Type == "script" && strings.TrimSpace(g.Field.Script) == "" {
			return fmt.Errorf("grid %s: script field without script", label)
		}
	}
	return nil
}

// Scripts lists every field script the scene references, in order.
func (s *SceneSpec) Scripts() []string {
	if s == nil {
		return nil
	}
	var out []string
	seen := map[string]bool{}
	for _, g := range s.Grids {
		name := strings.TrimSpace(g.Field.Script)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

type WorldSpec struct {
	Gravity     VectorSpec `yaml:"gravity"`
	Composition string     `yaml:"composition,omitempty"`
	Iterations  int        `yaml:"iterations,omitempty"`
	Damping     float64    `yaml:"damping,omitempty"`
	Background  *YAMLColor `yaml:"background,omitempty"`
}

// MovementSpec overrides the per-direction velocity change. Missing entries
// keep their defaults; an explicit zero disables the direction.
type MovementSpec struct {
	Up    *float64 `yaml:"up,omitempty"`
	Down  *float64 `yaml:"down,omitempty"`
	Left  *float64 `yaml:"left,omitempty"`
	Right *float64 `yaml:"right,omitempty"`
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x,omitempty"`
	ScaleY   float64 `yaml:"scale_y,omitempty"`
	Rotation float64 `yaml:"rotation,omitempty"`
}

type ColliderSpec struct {
	Shape    string       `yaml:"shape"`
	Width    float64      `yaml:"width,omitempty"`
	Height   float64      `yaml:"height,omitempty"`
	Radius   float64      `yaml:"radius,omitempty"`
	Length   float64      `yaml:"length,omitempty"`
	Vertices []VectorSpec `yaml:"vertices,omitempty"`
}

type BodySpec struct {
	Name         string        `yaml:"name,omitempty"`
	Kind         string        `yaml:"kind,omitempty"`
	Transform    TransformSpec `yaml:"transform"`
	Collider     ColliderSpec  `yaml:"collider"`
	Mass         float64       `yaml:"mass,omitempty"`
	Friction     float64       `yaml:"friction,omitempty"`
	Elasticity   float64       `yaml:"elasticity,omitempty"`
	Controllable bool          `yaml:"controllable,omitempty"`
	Gravity      *VectorSpec   `yaml:"gravity,omitempty"`
	Color        *YAMLColor    `yaml:"color,omitempty"`
}

// RangeSpec is a half-open integer range [From, To).
type RangeSpec struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

func (r RangeSpec) Len() int {
	if r.To < r.From {
		return 0
	}
	return r.To - r.From
}

// GridSpec lays out one body per cell. Shapes and colors cycle by the
// Euclidean remainder of ix+iy.
type GridSpec struct {
	Name         string           `yaml:"name,omitempty"`
	Kind         string           `yaml:"kind,omitempty"`
	Columns      RangeSpec        `yaml:"columns"`
	Rows         RangeSpec        `yaml:"rows"`
	Spacing      float64          `yaml:"spacing"`
	Origin       VectorSpec       `yaml:"origin,omitempty"`
	Shapes       []ColliderSpec   `yaml:"shapes"`
	Colors       []YAMLColor      `yaml:"colors,omitempty"`
	Mass         float64          `yaml:"mass,omitempty"`
	Friction     float64          `yaml:"friction,omitempty"`
	Elasticity   float64          `yaml:"elasticity,omitempty"`
	Controllable bool             `yaml:"controllable,omitempty"`
	Field        GravityFieldSpec `yaml:"field,omitempty"`
}

// GravityFieldSpec selects how each grid body's gravity override is computed.
type GravityFieldSpec struct {
	Type   string  `yaml:"type,omitempty"`
	Scale  float64 `yaml:"scale,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Script string  `yaml:"script,omitempty"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	n := c.NRGBA()
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}

// NRGBA returns the color as non-premultiplied RGBA. A missing color is
// opaque white.
func (c YAMLColor) NRGBA() color.NRGBA {
	if c.Color == nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}

func ColorOf(n color.NRGBA) *YAMLColor {
	return &YAMLColor{Color: n}
}
