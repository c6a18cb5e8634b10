package component

type Player struct {
	MoveSpeed      float64
	AttackDamage   int
	AttackRange    float64
	AttackSize     float64
	AttackSeconds  float64
	AttackCooldown float64
	Knockback      float64
}

var PlayerComponent = NewComponent[Player]()

// PlayerController marks the entity that reads player input. It is the
// capability the locator falls back to when no entity carries PlayerTag.
type PlayerController struct {
	FacingX     float64
	FacingY     float64
	AttackTimer float64
}

var PlayerControllerComponent = NewComponent[PlayerController]()
