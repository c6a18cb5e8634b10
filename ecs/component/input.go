package component

// Input is the sampled controller state for one tick.
type Input struct {
	MoveX    float64
	MoveY    float64
	Attack   bool
	Interact bool
}

var InputComponent = NewComponent[Input]()
