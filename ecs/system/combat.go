package system

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

const knockbackSeconds = 0.15

// CombatSystem resolves hitbox and projectile trigger contacts into damage.
type CombatSystem struct {
	log *log.Logger
}

func NewCombatSystem(logger *log.Logger) *CombatSystem {
	return &CombatSystem{log: logger}
}

func (s *CombatSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, t := range ecs.ReadTyped[ecs.TriggerEvent](w, ecs.EventTriggerEnter) {
		if !ecs.IsAlive(w, t.Trigger) || !ecs.IsAlive(w, t.Other) {
			continue
		}
		if hb, ok := ecs.Get(w, t.Trigger, component.HitboxComponent.Kind()); ok {
			s.hitboxContact(w, t, hb)
			continue
		}
		if proj, ok := ecs.Get(w, t.Trigger, component.ProjectileComponent.Kind()); ok {
			s.projectileContact(w, t, proj)
		}
	}
}

func (s *CombatSystem) hitboxContact(w *ecs.World, t ecs.TriggerEvent, hb *component.Hitbox) {
	target := t.Other
	if uint64(target) == hb.Owner || hb.HitTargets[uint64(target)] {
		return
	}
	if !opposing(w, target, hb.Team) {
		return
	}
	if hb.HitTargets == nil {
		hb.HitTargets = map[uint64]bool{}
	}
	hb.HitTargets[uint64(target)] = true
	applyDamage(w, s.log, target, t.Trigger, hb.Damage, hb.Knockback)
}

func (s *CombatSystem) projectileContact(w *ecs.World, t ecs.TriggerEvent, proj *component.Projectile) {
	if col, ok := ecs.Get(w, t.Other, component.ColliderComponent.Kind()); ok && col.Layer == component.LayerWall {
		ecs.DestroyEntity(w, t.Trigger)
		return
	}
	if uint64(t.Other) == proj.Owner || !opposing(w, t.Other, proj.Team) {
		return
	}
	applyDamage(w, s.log, t.Other, t.Trigger, proj.Damage, proj.Knockback)
	ecs.DestroyEntity(w, t.Trigger)
}

// opposing reports whether target is a living, damageable member of another
// team.
func opposing(w *ecs.World, target ecs.Entity, team component.TeamID) bool {
	tt, ok := ecs.Get(w, target, component.TeamComponent.Kind())
	if !ok || tt.ID == team {
		return false
	}
	h, ok := ecs.Get(w, target, component.HealthComponent.Kind())
	return ok && !h.Dead
}

// applyDamage hurts target unless it is invulnerable, shoves it away from
// source and emits damage/death events.
func applyDamage(w *ecs.World, logger *log.Logger, target, source ecs.Entity, amount int, knockback float64) {
	h, ok := ecs.Get(w, target, component.HealthComponent.Kind())
	if !ok || h.Dead || h.Invulnerable > 0 || amount <= 0 {
		return
	}

	h.Current -= amount
	h.Invulnerable = h.InvulnSeconds
	w.Events().Push(ecs.Event{Type: ecs.EventDamage, Data: ecs.DamageEvent{Target: target, Source: source, Amount: amount}})

	if knockback > 0 {
		if dx, dy, ok := direction(w, source, target); ok {
			err := ecs.Add(w, target, component.KnockbackComponent.Kind(), &component.Knockback{
				VX:      dx * knockback,
				VY:      dy * knockback,
				Seconds: knockbackSeconds,
			})
			if err != nil && logger != nil {
				logger.Debug("knockback not applied", "target", target, "err", err)
			}
		}
	}

	if h.Current > 0 {
		return
	}
	h.Current = 0
	h.Dead = true
	player := ecs.Has(w, target, component.PlayerTagComponent.Kind())
	w.Events().Push(ecs.Event{Type: ecs.EventDeath, Data: ecs.DeathEvent{Entity: target, Player: player}})
	if player {
		w.Events().Push(ecs.Event{Type: ecs.EventPlayerDied, Data: ecs.DeathEvent{Entity: target, Player: true}})
	}
	if logger != nil {
		logger.Debug("entity died", "entity", target, "player", player)
	}
}

// direction is the unit vector from a to b.
func direction(w *ecs.World, a, b ecs.Entity) (float64, float64, bool) {
	ta, okA := ecs.Get(w, a, component.TransformComponent.Kind())
	tb, okB := ecs.Get(w, b, component.TransformComponent.Kind())
	if !okA || !okB {
		return 0, 0, false
	}
	dx, dy := tb.X-ta.X, tb.Y-ta.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 0, 0, false
	}
	return dx / l, dy / l, true
}
