package entity

import (
	"fmt"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/prefabs"
)

const (
	PlayerPrefab = "player.yaml"
	// PlayerPersistentID keeps the player alive across scene loads and reloads.
	PlayerPersistentID = "player"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return NewPlayerAt(w, 0, 0)
}

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadSpec[prefabs.PlayerSpec](PlayerPrefab)
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}

	player := ecs.CreateEntity(w)
	fail := func(what string, err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, player)
		return 0, fmt.Errorf("player: add %s: %w", what, err)
	}

	if err := ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return fail("player tag", err)
	}
	if err := ecs.Add(w, player, component.TagComponent.Kind(), &component.Tag{Name: spec.Tag}); err != nil {
		return fail("tag", err)
	}
	if err := ecs.Add(w, player, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
		return fail("name", err)
	}
	if err := ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:      spec.MoveSpeed,
		AttackDamage:   spec.Attack.Damage,
		AttackRange:    spec.Attack.Range,
		AttackSize:     spec.Attack.Size,
		AttackSeconds:  spec.Attack.Seconds,
		AttackCooldown: spec.Attack.Cooldown,
		Knockback:      spec.Attack.Knockback,
	}); err != nil {
		return fail("player", err)
	}
	if err := ecs.Add(w, player, component.PlayerControllerComponent.Kind(), &component.PlayerController{FacingY: 1}); err != nil {
		return fail("player controller", err)
	}
	if err := ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return fail("input", err)
	}
	if err := ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return fail("transform", err)
	}
	if err := ecs.Add(w, player, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return fail("velocity", err)
	}
	if err := ecs.Add(w, player, component.ColliderComponent.Kind(), &component.Collider{
		Width:  spec.Collider.Width,
		Height: spec.Collider.Height,
		Radius: spec.Collider.Radius,
		Layer:  component.LayerActor,
	}); err != nil {
		return fail("collider", err)
	}
	if err := ecs.Add(w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{}); err != nil {
		return fail("physics body", err)
	}
	if err := ecs.Add(w, player, component.HealthComponent.Kind(), &component.Health{
		Current:       spec.Health,
		Max:           spec.Health,
		InvulnSeconds: spec.InvulnSeconds,
	}); err != nil {
		return fail("health", err)
	}
	if err := ecs.Add(w, player, component.TeamComponent.Kind(), &component.Team{ID: component.TeamPlayer}); err != nil {
		return fail("team", err)
	}
	if err := ecs.Add(w, player, component.WalletComponent.Kind(), &component.Wallet{}); err != nil {
		return fail("wallet", err)
	}
	shape := shapeFromSpec(spec.Shape)
	if err := ecs.Add(w, player, component.ShapeComponent.Kind(), &shape); err != nil {
		return fail("shape", err)
	}
	if err := ecs.Add(w, player, component.PersistentComponent.Kind(), &component.Persistent{
		ID:                PlayerPersistentID,
		KeepOnSceneChange: true,
		KeepOnReload:      true,
	}); err != nil {
		return fail("persistent", err)
	}

	return player, nil
}
