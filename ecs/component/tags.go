package component

// Controllable marks bodies whose velocity follows directional input.
type Controllable struct{}

var ControllableComponent = NewComponent[Controllable]()
