package entity

import (
	"fmt"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/prefabs"
)

const ProjectilePrefab = "projectile.yaml"

// ProjectileParams describes one shot.
type ProjectileParams struct {
	Owner  ecs.Entity
	Team   component.TeamID
	X, Y   float64
	VX, VY float64
	Damage int
	TTL    float64
}

func NewProjectile(w *ecs.World, p ProjectileParams) (ecs.Entity, error) {
	spec, err := prefabs.LoadSpec[prefabs.ProjectileSpec](ProjectilePrefab)
	if err != nil {
		return 0, fmt.Errorf("projectile: load spec: %w", err)
	}
	ttl := p.TTL
	if ttl <= 0 {
		ttl = 2
	}

	shot := ecs.CreateEntity(w)
	fail := func(what string, err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, shot)
		return 0, fmt.Errorf("projectile: add %s: %w", what, err)
	}

	if err := ecs.Add(w, shot, component.ProjectileComponent.Kind(), &component.Projectile{
		Damage:    p.Damage,
		Knockback: spec.Knockback,
		Team:      p.Team,
		Owner:     uint64(p.Owner),
	}); err != nil {
		return fail("projectile", err)
	}
	if err := ecs.Add(w, shot, component.TransformComponent.Kind(), &component.Transform{X: p.X, Y: p.Y}); err != nil {
		return fail("transform", err)
	}
	if err := ecs.Add(w, shot, component.VelocityComponent.Kind(), &component.Velocity{X: p.VX, Y: p.VY}); err != nil {
		return fail("velocity", err)
	}
	if err := ecs.Add(w, shot, component.ColliderComponent.Kind(), &component.Collider{
		Radius: spec.Radius,
		Sensor: true,
		Layer:  component.LayerProjectile,
	}); err != nil {
		return fail("collider", err)
	}
	if err := ecs.Add(w, shot, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{}); err != nil {
		return fail("physics body", err)
	}
	if err := ecs.Add(w, shot, component.TTLComponent.Kind(), &component.TTL{Seconds: ttl}); err != nil {
		return fail("ttl", err)
	}
	shape := shapeFromSpec(spec.Shape)
	if err := ecs.Add(w, shot, component.ShapeComponent.Kind(), &shape); err != nil {
		return fail("shape", err)
	}
	return shot, nil
}
