package scene

import (
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// FindPlayer returns the active player: the player-tagged entity, or failing
// that the first entity with a player controller.
func FindPlayer(w *ecs.World) (ecs.Entity, bool) {
	if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		return e, true
	}
	return ecs.First(w, component.PlayerControllerComponent.Kind())
}
