package component

// Input is the directional snapshot polled once per tick.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// Any reports whether at least one direction is held.
func (i Input) Any() bool {
	return i.Up || i.Down || i.Left || i.Right
}

var InputComponent = NewComponent[Input]()
