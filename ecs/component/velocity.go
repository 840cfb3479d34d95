package component

type LinearVelocity struct {
	X float64
	Y float64
}

var LinearVelocityComponent = NewComponent[LinearVelocity]()

type AngularVelocity struct {
	W float64
}

var AngularVelocityComponent = NewComponent[AngularVelocity]()
