package component

// Transform is an entity's world position. Rotation is in degrees.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
