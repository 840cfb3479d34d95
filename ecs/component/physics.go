package component

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

// BodyKind selects how the physics engine treats a body.
type BodyKind int

const (
	BodyDynamic BodyKind = iota
	BodyStatic
	BodyKinematic
)

func (k BodyKind) String() string {
	switch k {
	case BodyStatic:
		return "static"
	case BodyKinematic:
		return "kinematic"
	default:
		return "dynamic"
	}
}

// ParseBodyKind maps a scene file name to a BodyKind. Empty means dynamic.
func ParseBodyKind(s string) (BodyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dynamic":
		return BodyDynamic, nil
	case "static":
		return BodyStatic, nil
	case "kinematic":
		return BodyKinematic, nil
	}
	return BodyDynamic, fmt.Errorf("unknown body kind %q", s)
}

type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRectangle
	ShapeCapsule
	ShapePolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCapsule:
		return "capsule"
	case ShapePolygon:
		return "polygon"
	default:
		return "circle"
	}
}

func ParseShapeKind(s string) (ShapeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circle":
		return ShapeCircle, nil
	case "rectangle", "rect", "box":
		return ShapeRectangle, nil
	case "capsule":
		return ShapeCapsule, nil
	case "polygon", "triangle":
		return ShapePolygon, nil
	}
	return ShapeCircle, fmt.Errorf("unknown shape %q", s)
}

// Collider describes a single collision shape in body-local, unscaled units.
// A capsule is a vertical segment of Length with rounded ends of Radius.
type Collider struct {
	Shape    ShapeKind
	Width    float64
	Height   float64
	Radius   float64
	Length   float64
	Vertices []cp.Vector
}

// RigidBody stores the body configuration plus the Chipmunk runtime handles,
// which the physics system fills in on first sight.
type RigidBody struct {
	Kind       BodyKind
	Collider   Collider
	Mass       float64
	Friction   float64
	Elasticity float64

	Body  *cp.Body
	Shape *cp.Shape
}

var RigidBodyComponent = NewComponent[RigidBody]()
