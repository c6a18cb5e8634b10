package component

// Knockback overrides movement with a fixed velocity while Seconds > 0.
type Knockback struct {
	VX      float64
	VY      float64
	Seconds float64
}

var KnockbackComponent = NewComponent[Knockback]()
