package system

import (
	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// KnockbackSystem overrides velocity while a knockback is running. It runs
// after controllers and AI so the shove wins for its duration.
type KnockbackSystem struct {
	clock *clock.Clock
}

func NewKnockbackSystem(c *clock.Clock) *KnockbackSystem {
	return &KnockbackSystem{clock: c}
}

func (s *KnockbackSystem) Update(w *ecs.World) {
	dt := s.clock.Delta()
	ecs.ForEach2(w, component.KnockbackComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, kb *component.Knockback, vel *component.Velocity) {
		if kb.Seconds <= 0 {
			ecs.Remove(w, e, component.KnockbackComponent.Kind())
			return
		}
		vel.X, vel.Y = kb.VX, kb.VY
		kb.Seconds -= dt
	})
}
