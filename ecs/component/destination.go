package component

// Destination is an arrival point a portal can send the player to. Its
// position and rotation come from the entity Transform.
type Destination struct {
	ID string
}

var DestinationComponent = NewComponent[Destination]()
