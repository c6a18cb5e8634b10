package component

// CollisionLayer selects the physics collision type of a collider.
type CollisionLayer string

const (
	LayerActor      CollisionLayer = "actor"
	LayerWall       CollisionLayer = "wall"
	LayerTrigger    CollisionLayer = "trigger"
	LayerHitbox     CollisionLayer = "hitbox"
	LayerProjectile CollisionLayer = "projectile"
)
