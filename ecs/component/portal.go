package component

// LoadMode selects how a scene is loaded.
type LoadMode string

const (
	LoadSync        LoadMode = "sync"
	LoadProgressive LoadMode = "progressive"
)

// Portal is a trigger volume that sends the player to DestinationID in
// TargetScene.
type Portal struct {
	TargetScene   string
	DestinationID string
	// TagFilter, when set, restricts activation to entities with that Tag.
	TagFilter string
	// RetriggerSeconds is this portal's own cooldown after it fires.
	RetriggerSeconds float64
	Mode             LoadMode
}

var PortalComponent = NewComponent[Portal]()

// PortalCooldown blocks one portal instance until the game clock reaches
// Until. It lives on the portal entity and dies with its scene.
type PortalCooldown struct {
	Until float64
}

var PortalCooldownComponent = NewComponent[PortalCooldown]()
