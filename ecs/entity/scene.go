package entity

import (
	"fmt"
	"image/color"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/customgravity/ecs"
	"github.com/milk9111/customgravity/ecs/component"
	"github.com/milk9111/customgravity/prefabs"
	"go.uber.org/zap"
)

var (
	defaultStaticColor  = color.NRGBA{R: 0xb3, G: 0xb3, B: 0xcc, A: 0xff}
	defaultDynamicColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	defaultBackground   = color.NRGBA{R: 0x0d, G: 0x0d, B: 0x1a, A: 0xff}
)

// Scene is the result of building a SceneSpec into a world.
type Scene struct {
	// ID changes on every build, including hot reloads of the same file.
	ID       uuid.UUID
	Name     string
	Settings ecs.Entity
	Bodies   []ecs.Entity

	// Ambient is the gravity the scene file asked for, before any preset.
	Ambient    component.AmbientGravity
	Iterations int
	Damping    float64
	Background color.NRGBA
}

// BuildScene populates an empty world from spec: the settings entity holding
// the world singletons, then statics, bodies and expanded grids.
func BuildScene(w *ecs.World, spec *prefabs.SceneSpec, logger *zap.Logger) (*Scene, error) {
	if w == nil {
		return nil, fmt.Errorf("build scene: world is nil")
	}
	if spec == nil {
		return nil, fmt.Errorf("build scene: spec is nil")
	}
	if w.Len() != 0 {
		return nil, fmt.Errorf("build scene: world already has %d entities", w.Len())
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	composition, err := component.ParseComposition(spec.World.Composition)
	if err != nil {
		return nil, fmt.Errorf("build scene %s: %w", spec.Name, err)
	}

	scene := &Scene{
		ID:   uuid.New(),
		Name: spec.Name,
		Ambient: component.AmbientGravity{
			X:           spec.World.Gravity.X,
			Y:           spec.World.Gravity.Y,
			Composition: composition,
		},
		Iterations: spec.World.Iterations,
		Damping:    spec.World.Damping,
		Background: defaultBackground,
	}
	if spec.World.Background != nil {
		scene.Background = spec.World.Background.NRGBA()
	}

	settings, err := buildSettings(w, scene.Ambient, movementTuning(spec.Movement))
	if err != nil {
		return nil, fmt.Errorf("build scene %s: %w", spec.Name, err)
	}
	scene.Settings = settings

	for i, b := range spec.Statics {
		if b.Kind == "" {
			b.Kind = component.BodyStatic.String()
		}
		e, err := spawnBody(w, b)
		if err != nil {
			return nil, fmt.Errorf("build scene %s: static %d: %w", spec.Name, i, err)
		}
		scene.Bodies = append(scene.Bodies, e)
	}

	for i, b := range spec.Bodies {
		e, err := spawnBody(w, b)
		if err != nil {
			return nil, fmt.Errorf("build scene %s: body %d: %w", spec.Name, i, err)
		}
		scene.Bodies = append(scene.Bodies, e)
	}

	for i, g := range spec.Grids {
		ents, err := spawnGrid(w, g)
		if err != nil {
			return nil, fmt.Errorf("build scene %s: grid %d: %w", spec.Name, i, err)
		}
		scene.Bodies = append(scene.Bodies, ents...)
	}

	logger.Info("scene built",
		zap.String("scene", scene.Name),
		zap.Stringer("id", scene.ID),
		zap.Int("bodies", len(scene.Bodies)),
		zap.Float64("gravity_x", scene.Ambient.X),
		zap.Float64("gravity_y", scene.Ambient.Y),
		zap.Stringer("composition", scene.Ambient.Composition),
	)
	return scene, nil
}

func buildSettings(w *ecs.World, ambient component.AmbientGravity, tuning component.MovementTuning) (ecs.Entity, error) {
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.NameComponent, component.Name{Value: "settings"}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.AmbientGravityComponent, ambient); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.MovementTuningComponent, tuning); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.InputComponent, component.Input{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TimeComponent, component.Time{}); err != nil {
		return 0, err
	}
	return e, nil
}

func movementTuning(spec prefabs.MovementSpec) component.MovementTuning {
	tuning := component.DefaultMovementTuning()
	if spec.Up != nil {
		tuning.Up = *spec.Up
	}
	if spec.Down != nil {
		tuning.Down = *spec.Down
	}
	if spec.Left != nil {
		tuning.Left = *spec.Left
	}
	if spec.Right != nil {
		tuning.Right = *spec.Right
	}
	return tuning
}

func spawnBody(w *ecs.World, spec prefabs.BodySpec) (ecs.Entity, error) {
	kind, err := component.ParseBodyKind(spec.Kind)
	if err != nil {
		return 0, err
	}
	collider, err := colliderFromSpec(spec.Collider)
	if err != nil {
		return 0, err
	}

	tint := defaultDynamicColor
	if kind == component.BodyStatic {
		tint = defaultStaticColor
	}
	if spec.Color != nil {
		tint = spec.Color.NRGBA()
	}

	var override *component.GravityOverride
	if spec.Gravity != nil {
		override = &component.GravityOverride{X: spec.Gravity.X, Y: spec.Gravity.Y}
	}

	return addBody(w, bodyParts{
		name: spec.Name,
		transform: component.Transform{
			X:        spec.Transform.X,
			Y:        spec.Transform.Y,
			ScaleX:   orOne(spec.Transform.ScaleX),
			ScaleY:   orOne(spec.Transform.ScaleY),
			Rotation: spec.Transform.Rotation,
		},
		body: component.RigidBody{
			Kind:       kind,
			Collider:   collider,
			Mass:       spec.Mass,
			Friction:   spec.Friction,
			Elasticity: spec.Elasticity,
		},
		tint:         tint,
		override:     override,
		controllable: spec.Controllable,
	})
}

func spawnGrid(w *ecs.World, g prefabs.GridSpec) ([]ecs.Entity, error) {
	kind, err := component.ParseBodyKind(g.Kind)
	if err != nil {
		return nil, err
	}
	colliders := make([]component.Collider, len(g.Shapes))
	for i, s := range g.Shapes {
		c, err := colliderFromSpec(s)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		colliders[i] = c
	}
	if len(colliders) == 0 {
		return nil, fmt.Errorf("grid %q has no shapes", g.Name)
	}
	field, err := NewField(g.Field)
	if err != nil {
		return nil, err
	}

	name := g.Name
	if name == "" {
		name = "grid"
	}

	out := make([]ecs.Entity, 0, g.Columns.Len()*g.Rows.Len())
	for ix := g.Columns.From; ix < g.Columns.To; ix++ {
		for iy := g.Rows.From; iy < g.Rows.To; iy++ {
			cell := Cell{
				IX: ix,
				IY: iy,
				X:  g.Origin.X + float64(ix)*g.Spacing,
				Y:  g.Origin.Y + float64(iy)*g.Spacing,
			}
			slot := euclidMod(ix+iy, len(colliders))

			tint := defaultDynamicColor
			if len(g.Colors) > 0 {
				tint = g.Colors[euclidMod(ix+iy, len(g.Colors))].NRGBA()
			}

			override, ok, err := field.At(cell)
			if err != nil {
				return nil, err
			}
			var ov *component.GravityOverride
			if ok {
				ov = &override
			}

			e, err := addBody(w, bodyParts{
				name:      fmt.Sprintf("%s[%d,%d]", name, ix, iy),
				transform: component.Transform{X: cell.X, Y: cell.Y, ScaleX: 1, ScaleY: 1},
				body: component.RigidBody{
					Kind:       kind,
					Collider:   colliders[slot],
					Mass:       g.Mass,
					Friction:   g.Friction,
					Elasticity: g.Elasticity,
				},
				tint:         tint,
				override:     ov,
				controllable: g.Controllable,
			})
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
	}
	return out, nil
}

type bodyParts struct {
	name         string
	transform    component.Transform
	body         component.RigidBody
	tint         color.NRGBA
	override     *component.GravityOverride
	controllable bool
}

func addBody(w *ecs.World, p bodyParts) (ecs.Entity, error) {
	e := w.CreateEntity()
	fail := func(err error) (ecs.Entity, error) {
		w.DestroyEntity(e)
		return 0, err
	}

	if p.name != "" {
		if err := ecs.Add(w, e, component.NameComponent, component.Name{Value: p.name}); err != nil {
			return fail(err)
		}
	}
	if err := ecs.Add(w, e, component.TransformComponent, p.transform); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.RigidBodyComponent, p.body); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.LinearVelocityComponent, component.LinearVelocity{}); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.AngularVelocityComponent, component.AngularVelocity{}); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.TintComponent, component.Tint{Color: p.tint}); err != nil {
		return fail(err)
	}
	if p.override != nil {
		if err := ecs.Add(w, e, component.GravityOverrideComponent, *p.override); err != nil {
			return fail(err)
		}
	}
	if p.controllable {
		if err := ecs.Add(w, e, component.ControllableComponent, component.Controllable{}); err != nil {
			return fail(err)
		}
	}
	return e, nil
}

func colliderFromSpec(spec prefabs.ColliderSpec) (component.Collider, error) {
	shape, err := component.ParseShapeKind(spec.Shape)
	if err != nil {
		return component.Collider{}, err
	}
	c := component.Collider{
		Shape:  shape,
		Width:  spec.Width,
		Height: spec.Height,
		Radius: spec.Radius,
		Length: spec.Length,
	}
	if shape == component.ShapePolygon {
		if len(spec.Vertices) < 3 {
			return component.Collider{}, fmt.Errorf("polygon needs at least 3 vertices, got %d", len(spec.Vertices))
		}
		c.Vertices = make([]cp.Vector, len(spec.Vertices))
		for i, v := range spec.Vertices {
			c.Vertices[i] = cp.Vector{X: v.X, Y: v.Y}
		}
	}
	return c, nil
}

// euclidMod returns a non-negative remainder, so negative grid indices cycle
// the same way positive ones do.
func euclidMod(a, n int) int {
	if n <= 0 {
		return 0
	}
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
