package entity

import (
	"fmt"

	"github.com/milk9111/customgravity/ecs"
	"github.com/milk9111/customgravity/ecs/component"
	"github.com/milk9111/customgravity/prefabs"
	"gopkg.in/yaml.v3"
)

// SnapshotSpec captures the live world as a scene. Grid bodies are written out
// individually with their resolved overrides and current poses, so the result
// loads back on its own, with no field or script references.
func SnapshotSpec(w *ecs.World, scene *Scene) *prefabs.SceneSpec {
	spec := &prefabs.SceneSpec{}
	if scene != nil {
		spec.Name = scene.Name + "_snapshot"
		spec.World.Iterations = scene.Iterations
		spec.World.Damping = scene.Damping
		spec.World.Background = prefabs.ColorOf(scene.Background)
	}

	ambient, _ := ecs.Singleton(w, component.AmbientGravityComponent)
	spec.World.Gravity = prefabs.VectorSpec{X: ambient.X, Y: ambient.Y}
	spec.World.Composition = ambient.Composition.String()

	if tuning, ok := ecs.Singleton(w, component.MovementTuningComponent); ok {
		spec.Movement = prefabs.MovementSpec{
			Up:    floatPtr(tuning.Up),
			Down:  floatPtr(tuning.Down),
			Left:  floatPtr(tuning.Left),
			Right: floatPtr(tuning.Right),
		}
	}

	for _, e := range w.Query(component.RigidBodyComponent.Kind(), component.TransformComponent.Kind()) {
		body := snapshotBody(w, e)
		if body.Kind == component.BodyStatic.String() {
			spec.Statics = append(spec.Statics, body)
			continue
		}
		spec.Bodies = append(spec.Bodies, body)
	}
	return spec
}

// Snapshot renders SnapshotSpec as YAML.
func Snapshot(w *ecs.World, scene *Scene) ([]byte, error) {
	data, err := yaml.Marshal(SnapshotSpec(w, scene))
	if err != nil {
		return nil, fmt.Errorf("snapshot: marshal: %w", err)
	}
	return data, nil
}

func snapshotBody(w *ecs.World, e ecs.Entity) prefabs.BodySpec {
	rb, _ := ecs.Get(w, e, component.RigidBodyComponent)
	tr, _ := ecs.Get(w, e, component.TransformComponent)

	out := prefabs.BodySpec{
		Kind: rb.Kind.String(),
		Transform: prefabs.TransformSpec{
			X:        tr.X,
			Y:        tr.Y,
			ScaleX:   tr.ScaleX,
			ScaleY:   tr.ScaleY,
			Rotation: tr.Rotation,
		},
		Collider:     colliderSpec(rb.Collider),
		Mass:         rb.Mass,
		Friction:     rb.Friction,
		Elasticity:   rb.Elasticity,
		Controllable: ecs.Has(w, e, component.ControllableComponent),
	}
	if name, ok := ecs.Get(w, e, component.NameComponent); ok {
		out.Name = name.Value
	}
	if ov, ok := ecs.Get(w, e, component.GravityOverrideComponent); ok {
		out.Gravity = &prefabs.VectorSpec{X: ov.X, Y: ov.Y}
	}
	if tint, ok := ecs.Get(w, e, component.TintComponent); ok {
		out.Color = prefabs.ColorOf(tint.Color)
	}
	return out
}

func colliderSpec(c component.Collider) prefabs.ColliderSpec {
	out := prefabs.ColliderSpec{
		Shape:  c.Shape.String(),
		Width:  c.Width,
		Height: c.Height,
		Radius: c.Radius,
		Length: c.Length,
	}
	for _, v := range c.Vertices {
		out.Vertices = append(out.Vertices, prefabs.VectorSpec{X: v.X, Y: v.Y})
	}
	return out
}

func floatPtr(v float64) *float64 {
	return &v
}
