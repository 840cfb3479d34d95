package component

import "image/color"

// Tint is the fill color used when drawing a body's shape.
type Tint struct {
	Color color.NRGBA
}

var TintComponent = NewComponent[Tint]()

// Name labels an entity in logs and snapshots.
type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
