package component

// AI configures a scripted enemy.
type AI struct {
	Script          string
	MoveSpeed       float64
	FollowRange     float64
	AttackRange     float64
	PreferredRange  float64
	AttackCooldown  float64
	AttackDamage    int
	AttackSize      float64
	ProjectileSpeed float64
	ProjectileTTL   float64
	Knockback       float64
	// Pattern is set by the boss system and read by scripts.
	Pattern string
}

var AIComponent = NewComponent[AI]()

// AIState is the script-visible runtime state of an AI entity.
type AIState struct {
	Current  string
	Timer    float64
	Cooldown float64
}

var AIStateComponent = NewComponent[AIState]()
