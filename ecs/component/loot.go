package component

// Loot is dropped where its entity dies.
type Loot struct {
	Coins int
}

var LootComponent = NewComponent[Loot]()
