package component

// Pickup is collected when the player touches it.
type Pickup struct {
	Coins int
	Heal  int
}

var PickupComponent = NewComponent[Pickup]()
