package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/ecs/entity"
)

// DeathSystem removes dead non-player entities, dropping their loot. The
// player is left in place for the game manager to handle.
type DeathSystem struct {
	log *log.Logger
}

func NewDeathSystem(logger *log.Logger) *DeathSystem {
	return &DeathSystem{log: logger}
}

func (s *DeathSystem) Update(w *ecs.World) {
	for _, d := range ecs.ReadTyped[ecs.DeathEvent](w, ecs.EventDeath) {
		if d.Player || !ecs.IsAlive(w, d.Entity) {
			continue
		}
		if loot, ok := ecs.Get(w, d.Entity, component.LootComponent.Kind()); ok && loot.Coins > 0 {
			if tf, ok := ecs.Get(w, d.Entity, component.TransformComponent.Kind()); ok {
				if _, err := entity.NewCoin(w, tf.X, tf.Y, loot.Coins); err != nil {
					s.log.Warn("drop loot", "entity", d.Entity, "err", err)
				}
			}
		}
		ecs.DestroyEntity(w, d.Entity)
	}
}
