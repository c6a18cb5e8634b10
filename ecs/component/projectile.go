package component

type Projectile struct {
	Damage    int
	Knockback float64
	Team      TeamID
	Owner     uint64
}

var ProjectileComponent = NewComponent[Projectile]()
