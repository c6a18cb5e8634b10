package entity

import (
	"fmt"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/prefabs"
)

const HitboxPrefab = "hitbox.yaml"

// HitboxParams describes a melee swing.
type HitboxParams struct {
	Owner     ecs.Entity
	Team      component.TeamID
	X, Y      float64
	Size      float64
	Damage    int
	Knockback float64
	Seconds   float64
}

// NewHitbox spawns a short-lived sensor square that damages each overlapped
// opponent at most once.
func NewHitbox(w *ecs.World, p HitboxParams) (ecs.Entity, error) {
	spec, err := prefabs.LoadSpec[prefabs.HitboxSpec](HitboxPrefab)
	if err != nil {
		return 0, fmt.Errorf("hitbox: load spec: %w", err)
	}
	size := p.Size
	if size <= 0 {
		size = 24
	}
	seconds := p.Seconds
	if seconds <= 0 {
		seconds = 0.1
	}

	hb := ecs.CreateEntity(w)
	fail := func(what string, err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, hb)
		return 0, fmt.Errorf("hitbox: add %s: %w", what, err)
	}

	if err := ecs.Add(w, hb, component.HitboxComponent.Kind(), &component.Hitbox{
		Damage:     p.Damage,
		Knockback:  p.Knockback,
		Owner:      uint64(p.Owner),
		Team:       p.Team,
		HitTargets: map[uint64]bool{},
	}); err != nil {
		return fail("hitbox", err)
	}
	if err := ecs.Add(w, hb, component.TransformComponent.Kind(), &component.Transform{X: p.X, Y: p.Y}); err != nil {
		return fail("transform", err)
	}
	if err := ecs.Add(w, hb, component.ColliderComponent.Kind(), &component.Collider{
		Width:  size,
		Height: size,
		Sensor: true,
		Layer:  component.LayerHitbox,
	}); err != nil {
		return fail("collider", err)
	}
	if err := ecs.Add(w, hb, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{}); err != nil {
		return fail("physics body", err)
	}
	if err := ecs.Add(w, hb, component.TTLComponent.Kind(), &component.TTL{Seconds: seconds}); err != nil {
		return fail("ttl", err)
	}
	shape := shapeFromSpec(spec.Shape)
	shape.Kind = component.ShapeRect
	shape.Width, shape.Height = size, size
	if err := ecs.Add(w, hb, component.ShapeComponent.Kind(), &shape); err != nil {
		return fail("shape", err)
	}
	return hb, nil
}
