package entity

import (
	"fmt"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/prefabs"
)

// NewEnemyAt builds a scripted enemy from an enemy prefab.
func NewEnemyAt(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadSpec[prefabs.EnemySpec](prefab)
	if err != nil {
		return 0, fmt.Errorf("enemy: load spec: %w", err)
	}
	return buildEnemy(w, spec, x, y)
}

func buildEnemy(w *ecs.World, spec prefabs.EnemySpec, x, y float64) (ecs.Entity, error) {
	enemy := ecs.CreateEntity(w)
	fail := func(what string, err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, enemy)
		return 0, fmt.Errorf("enemy %s: add %s: %w", spec.Name, what, err)
	}

	if spec.Script == "" {
		ecs.DestroyEntity(w, enemy)
		return 0, fmt.Errorf("enemy %s: prefab has no script", spec.Name)
	}

	if err := ecs.Add(w, enemy, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return fail("enemy tag", err)
	}
	if err := ecs.Add(w, enemy, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
		return fail("name", err)
	}
	if err := ecs.Add(w, enemy, component.AIComponent.Kind(), &component.AI{
		Script:          spec.Script,
		MoveSpeed:       spec.MoveSpeed,
		FollowRange:     spec.FollowRange,
		AttackRange:     spec.AttackRange,
		PreferredRange:  spec.PreferredRange,
		AttackCooldown:  spec.AttackCooldown,
		AttackDamage:    spec.AttackDamage,
		AttackSize:      spec.AttackSize,
		ProjectileSpeed: spec.ProjectileSpeed,
		ProjectileTTL:   spec.ProjectileTTL,
		Knockback:       spec.Knockback,
	}); err != nil {
		return fail("ai", err)
	}
	if err := ecs.Add(w, enemy, component.AIStateComponent.Kind(), &component.AIState{}); err != nil {
		return fail("ai state", err)
	}
	if err := ecs.Add(w, enemy, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return fail("transform", err)
	}
	if err := ecs.Add(w, enemy, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return fail("velocity", err)
	}
	if err := ecs.Add(w, enemy, component.ColliderComponent.Kind(), &component.Collider{
		Width:  spec.Collider.Width,
		Height: spec.Collider.Height,
		Radius: spec.Collider.Radius,
		Layer:  component.LayerActor,
	}); err != nil {
		return fail("collider", err)
	}
	if err := ecs.Add(w, enemy, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{}); err != nil {
		return fail("physics body", err)
	}
	if err := ecs.Add(w, enemy, component.HealthComponent.Kind(), &component.Health{
		Current:       spec.Health,
		Max:           spec.Health,
		InvulnSeconds: spec.InvulnSeconds,
	}); err != nil {
		return fail("health", err)
	}
	if err := ecs.Add(w, enemy, component.TeamComponent.Kind(), &component.Team{ID: component.TeamEnemy}); err != nil {
		return fail("team", err)
	}
	if spec.DropCoins > 0 {
		if err := ecs.Add(w, enemy, component.LootComponent.Kind(), &component.Loot{Coins: spec.DropCoins}); err != nil {
			return fail("loot", err)
		}
	}
	shape := shapeFromSpec(spec.Shape)
	if err := ecs.Add(w, enemy, component.ShapeComponent.Kind(), &shape); err != nil {
		return fail("shape", err)
	}

	return enemy, nil
}
