package system

import (
	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// TTLSystem destroys entities whose lifetime ran out. Lifetimes follow game
// time so nothing expires while paused.
type TTLSystem struct {
	clock *clock.Clock
}

func NewTTLSystem(c *clock.Clock) *TTLSystem {
	return &TTLSystem{clock: c}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := s.clock.Delta()

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Seconds -= dt
		if ttl.Seconds <= 0 {
			ecs.DestroyEntity(w, e)
		}
	})
}
