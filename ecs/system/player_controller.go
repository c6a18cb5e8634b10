package system

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/ecs/entity"
)

// PlayerControllerSystem turns sampled input into velocity, facing and
// melee swings.
type PlayerControllerSystem struct {
	log   *log.Logger
	clock *clock.Clock
}

func NewPlayerControllerSystem(logger *log.Logger, c *clock.Clock) *PlayerControllerSystem {
	return &PlayerControllerSystem{log: logger, clock: c}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := p.clock.Delta()

	ecs.ForEach3(w, component.InputComponent.Kind(), component.PlayerComponent.Kind(), component.PlayerControllerComponent.Kind(), func(e ecs.Entity, input *component.Input, cfg *component.Player, ctrl *component.PlayerController) {
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			return
		}
		if ctrl.AttackTimer > 0 {
			ctrl.AttackTimer -= dt
		}

		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Dead {
			vel.X, vel.Y = 0, 0
			return
		}
		if dt <= 0 {
			return
		}

		mx, my := input.MoveX, input.MoveY
		if l := math.Hypot(mx, my); l > 1 {
			mx, my = mx/l, my/l
		}
		vel.X = mx * cfg.MoveSpeed
		vel.Y = my * cfg.MoveSpeed
		if mx != 0 || my != 0 {
			l := math.Hypot(mx, my)
			ctrl.FacingX, ctrl.FacingY = mx/l, my/l
		}

		if input.Attack && ctrl.AttackTimer <= 0 {
			p.swing(w, e, cfg, ctrl)
			ctrl.AttackTimer = cfg.AttackCooldown
		}
	})
}

func (p *PlayerControllerSystem) swing(w *ecs.World, e ecs.Entity, cfg *component.Player, ctrl *component.PlayerController) {
	tf, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	reach := cfg.AttackRange + cfg.AttackSize/2
	if _, err := entity.NewHitbox(w, entity.HitboxParams{
		Owner:     e,
		Team:      component.TeamPlayer,
		X:         tf.X + ctrl.FacingX*reach,
		Y:         tf.Y + ctrl.FacingY*reach,
		Size:      cfg.AttackSize,
		Damage:    cfg.AttackDamage,
		Knockback: cfg.Knockback,
		Seconds:   cfg.AttackSeconds,
	}); err != nil {
		p.log.Error("player swing", "err", err)
	}
}
