package entity

import (
	"fmt"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/prefabs"
)

const CoinPrefab = "coin.yaml"

// NewCoin drops a coin pickup worth coins.
func NewCoin(w *ecs.World, x, y float64, coins int) (ecs.Entity, error) {
	spec, err := prefabs.LoadSpec[prefabs.PickupSpec](CoinPrefab)
	if err != nil {
		return 0, fmt.Errorf("coin: load spec: %w", err)
	}

	coin := ecs.CreateEntity(w)
	if err := ecs.Add(w, coin, component.PickupComponent.Kind(), &component.Pickup{Coins: coins}); err != nil {
		return 0, fmt.Errorf("coin: add pickup: %w", err)
	}
	if err := ecs.Add(w, coin, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("coin: add transform: %w", err)
	}
	if err := ecs.Add(w, coin, component.ColliderComponent.Kind(), &component.Collider{
		Radius: spec.Radius,
		Static: true,
		Sensor: true,
		Layer:  component.LayerTrigger,
	}); err != nil {
		return 0, fmt.Errorf("coin: add collider: %w", err)
	}
	if err := ecs.Add(w, coin, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{}); err != nil {
		return 0, fmt.Errorf("coin: add physics body: %w", err)
	}
	if spec.TTL > 0 {
		if err := ecs.Add(w, coin, component.TTLComponent.Kind(), &component.TTL{Seconds: spec.TTL}); err != nil {
			return 0, fmt.Errorf("coin: add ttl: %w", err)
		}
	}
	shape := shapeFromSpec(spec.Shape)
	if err := ecs.Add(w, coin, component.ShapeComponent.Kind(), &shape); err != nil {
		return 0, fmt.Errorf("coin: add shape: %w", err)
	}
	return coin, nil
}
