package component

// Time is the per-tick clock singleton.
type Time struct {
	Delta   float64
	Elapsed float64
	Tick    uint64
}

var TimeComponent = NewComponent[Time]()
