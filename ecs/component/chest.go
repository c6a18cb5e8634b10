package component

// Chest opens once when the player interacts within Range.
type Chest struct {
	ID          string
	Opened      bool
	Heal        int
	Coins       int
	Range       float64
	OpenedColor RGBA
}

var ChestComponent = NewComponent[Chest]()
