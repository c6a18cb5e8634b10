package system

import (
	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// HealthSystem counts down invulnerability windows.
type HealthSystem struct {
	clock *clock.Clock
}

func NewHealthSystem(c *clock.Clock) *HealthSystem {
	return &HealthSystem{clock: c}
}

func (s *HealthSystem) Update(w *ecs.World) {
	dt := s.clock.Delta()
	ecs.ForEach(w, component.HealthComponent.Kind(), func(_ ecs.Entity, h *component.Health) {
		if h.Invulnerable > 0 {
			h.Invulnerable -= dt
			if h.Invulnerable < 0 {
				h.Invulnerable = 0
			}
		}
	})
}
