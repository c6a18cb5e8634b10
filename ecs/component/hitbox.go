package component

// Hitbox is a short-lived damaging sensor. Owner is the attacking entity and
// HitTargets stops one swing from landing twice on the same target.
type Hitbox struct {
	Damage     int
	Knockback  float64
	Owner      uint64
	Team       TeamID
	HitTargets map[uint64]bool
}

var HitboxComponent = NewComponent[Hitbox]()
