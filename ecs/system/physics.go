package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/customgravity/ecs"
	"github.com/milk9111/customgravity/ecs/component"
	"go.uber.org/zap"
)

const (
	defaultIterations = 20
	defaultSize       = 16.0
)

// PhysicsConfig tunes the Chipmunk space.
type PhysicsConfig struct {
	Iterations int
	Damping    float64
}

// PhysicsSystem mirrors RigidBody entities into a Chipmunk space, steps it and
// copies poses and velocities back.
//
// Every dynamic body gets a velocity update hook that integrates with the
// entity's GravityAccumulator instead of the space gravity.
type PhysicsSystem struct {
	space   *cp.Space
	logger  *zap.Logger
	ambient cp.Vector

	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body    *cp.Body
	shape   *cp.Shape
	kind    component.BodyKind
	gravity cp.Vector
}

func NewPhysicsSystem(cfg PhysicsConfig, logger *zap.Logger) *PhysicsSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	iterations := cfg.Iterations
	if iterations <= 0 {
		iterations = defaultIterations
	}
	damping := cfg.Damping
	if damping <= 0 {
		damping = 1
	}

	space := cp.NewSpace()
	space.Iterations = uint(iterations)
	space.SetDamping(damping)
	return &PhysicsSystem{
		space:    space,
		logger:   logger,
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// BodyCount returns the number of entities currently mirrored in the space.
func (ps *PhysicsSystem) BodyCount() int {
	if ps == nil {
		return 0
	}
	return len(ps.entities)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.space == nil || w == nil {
		return
	}

	ps.syncAmbient(w)
	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.pushState(w)

	// Chipmunk divides by dt when applying cached impulses.
	if dt := tickDelta(w); dt > 0 {
		ps.space.Step(dt)
	}

	ps.pullState(w)
}

// syncAmbient keeps the space gravity equal to the ambient field. Bodies with
// the gravity hook ignore it; it only matters for bodies added behind the
// system's back.
func (ps *PhysicsSystem) syncAmbient(w *ecs.World) {
	ambient, _ := ecs.Singleton(w, component.AmbientGravityComponent)
	ps.ambient = cp.Vector{X: ambient.X, Y: ambient.Y}
	ps.space.SetGravity(ps.ambient)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for _, e := range w.Query(component.RigidBodyComponent.Kind(), component.TransformComponent.Kind()) {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		rb, ok := ecs.GetRef(w, e, component.RigidBodyComponent)
		if !ok {
			continue
		}
		transform, _ := ecs.Get(w, e, component.TransformComponent)

		info := ps.createBodyInfo(e, transform, *rb)
		ps.entities[e] = info
		rb.Body = info.body
		rb.Shape = info.shape

		ps.logger.Debug("physics: body created",
			zap.Stringer("entity", e),
			zap.Stringer("kind", rb.Kind),
			zap.Stringer("shape", rb.Collider.Shape),
		)
	}
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform component.Transform, rb component.RigidBody) *bodyInfo {
	sx, sy := transform.ScaleX, transform.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}

	info := &bodyInfo{kind: rb.Kind}

	var body *cp.Body
	switch rb.Kind {
	case component.BodyStatic:
		body = cp.NewStaticBody()
	case component.BodyKinematic:
		body = cp.NewKinematicBody()
	default:
		mass := rb.Mass
		if mass <= 0 {
			mass = 1
		}
		body = cp.NewBody(mass, momentFor(rb.Collider, mass, sx, sy))
		body.SetVelocityUpdateFunc(func(b *cp.Body, _ cp.Vector, damping, dt float64) {
			cp.BodyUpdateVelocity(b, info.gravity, damping, dt)
		})
	}
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)
	body.UserData = e

	shape := newShape(body, rb.Collider, sx, sy)
	shape.SetFriction(rb.Friction)
	shape.SetElasticity(rb.Elasticity)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.shape = shape
	return info
}

// pushState copies the ECS side of the tick into Chipmunk: velocities edited
// by input and the gravity chosen by GravitySystem.
func (ps *PhysicsSystem) pushState(w *ecs.World) {
	for e, info := range ps.entities {
		if info.kind == component.BodyStatic {
			continue
		}
		if acc, ok := ecs.Get(w, e, component.GravityAccumulatorComponent); ok {
			info.gravity = cp.Vector{X: acc.X, Y: acc.Y}
		} else {
			info.gravity = ps.ambient
		}
		if vel, ok := ecs.Get(w, e, component.LinearVelocityComponent); ok {
			info.body.SetVelocity(vel.X, vel.Y)
		}
		if ang, ok := ecs.Get(w, e, component.AngularVelocityComponent); ok {
			info.body.SetAngularVelocity(ang.W)
		}
	}
}

func (ps *PhysicsSystem) pullState(w *ecs.World) {
	for e, info := range ps.entities {
		if info.kind == component.BodyStatic {
			continue
		}
		if transform, ok := ecs.GetRef(w, e, component.TransformComponent); ok {
			pos := info.body.Position()
			transform.X = pos.X
			transform.Y = pos.Y
			transform.Rotation = info.body.Angle()
		}
		if vel, ok := ecs.GetRef(w, e, component.LinearVelocityComponent); ok {
			v := info.body.Velocity()
			vel.X = v.X
			vel.Y = v.Y
		}
		if ang, ok := ecs.GetRef(w, e, component.AngularVelocityComponent); ok {
			ang.W = info.body.AngularVelocity()
		}
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.RigidBodyComponent) {
			continue
		}
		ps.removeBody(info)
		delete(ps.entities, e)
		ps.logger.Debug("physics: body removed", zap.Stringer("entity", e))
	}
}

// Reset removes every body from the space, e.g. before a scene rebuild.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	for e, info := range ps.entities {
		ps.removeBody(info)
		delete(ps.entities, e)
	}
}

func (ps *PhysicsSystem) removeBody(info *bodyInfo) {
	if info == nil || ps.space == nil {
		return
	}
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
	}
	if info.body != nil {
		ps.space.RemoveBody(info.body)
	}
}

func newShape(body *cp.Body, c component.Collider, sx, sy float64) *cp.Shape {
	switch c.Shape {
	case component.ShapeRectangle:
		w, h := orDefault(c.Width)*sx, orDefault(c.Height)*sy
		return cp.NewBox(body, w, h, 0)
	case component.ShapeCapsule:
		a, b := capsuleEnds(c, sy)
		return cp.NewSegment(body, a, b, orDefault(c.Radius)*sx)
	case component.ShapePolygon:
		verts := polygonVerts(c, sx, sy)
		return cp.NewPolyShapeRaw(body, len(verts), verts, 0)
	default:
		return cp.NewCircle(body, orDefault(c.Radius)*sx, cp.Vector{})
	}
}

func momentFor(c component.Collider, mass, sx, sy float64) float64 {
	switch c.Shape {
	case component.ShapeRectangle:
		return cp.MomentForBox(mass, orDefault(c.Width)*sx, orDefault(c.Height)*sy)
	case component.ShapeCapsule:
		a, b := capsuleEnds(c, sy)
		return cp.MomentForSegment(mass, a, b, orDefault(c.Radius)*sx)
	case component.ShapePolygon:
		verts := polygonVerts(c, sx, sy)
		return cp.MomentForPoly(mass, len(verts), verts, cp.Vector{}, 0)
	default:
		return cp.MomentForCircle(mass, 0, orDefault(c.Radius)*sx, cp.Vector{})
	}
}

func capsuleEnds(c component.Collider, sy float64) (cp.Vector, cp.Vector) {
	half := c.Length * sy / 2
	return cp.Vector{X: 0, Y: -half}, cp.Vector{X: 0, Y: half}
}

// polygonVerts scales the collider vertices and returns them counter-clockwise,
// which Chipmunk requires for raw polygons. Fewer than three vertices fall back
// to a square.
func polygonVerts(c component.Collider, sx, sy float64) []cp.Vector {
	if len(c.Vertices) < 3 {
		h := defaultSize / 2
		return []cp.Vector{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}}
	}
	verts := make([]cp.Vector, len(c.Vertices))
	for i, v := range c.Vertices {
		verts[i] = cp.Vector{X: v.X * sx, Y: v.Y * sy}
	}
	if signedArea(verts) < 0 {
		for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
			verts[i], verts[j] = verts[j], verts[i]
		}
	}
	return verts
}

func signedArea(verts []cp.Vector) float64 {
	area := 0.0
	for i := range verts {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

func orDefault(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return defaultSize
	}
	return v
}
