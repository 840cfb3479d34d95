package component

// MovementTuning holds the velocity change per second for each direction.
// Up is larger so controlled bodies can climb against a downward pull.
type MovementTuning struct {
	Up    float64
	Down  float64
	Left  float64
	Right float64
}

const (
	DefaultUpAcceleration   = 2500.0
	DefaultMoveAcceleration = 500.0
)

func DefaultMovementTuning() MovementTuning {
	return MovementTuning{
		Up:    DefaultUpAcceleration,
		Down:  DefaultMoveAcceleration,
		Left:  DefaultMoveAcceleration,
		Right: DefaultMoveAcceleration,
	}
}

var MovementTuningComponent = NewComponent[MovementTuning]()
