package entity

import (
	"fmt"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/levels"
	"github.com/milk9111/wayfarer/prefabs"
)

const ChestPrefab = "chest.yaml"

// NewChest builds a chest. Props: id, heal, coins.
func NewChest(w *ecs.World, placed levels.Entity) (ecs.Entity, error) {
	spec, err := prefabs.LoadSpec[prefabs.ChestSpec](ChestPrefab)
	if err != nil {
		return 0, fmt.Errorf("chest: load spec: %w", err)
	}

	id := placed.Prop("id")
	if id == "" {
		id = placed.Name
	}

	chest := ecs.CreateEntity(w)
	if err := ecs.Add(w, chest, component.ChestComponent.Kind(), &component.Chest{
		ID:          id,
		Heal:        placed.PropInt("heal", 0),
		Coins:       placed.PropInt("coins", 0),
		Range:       spec.Range,
		OpenedColor: rgba(spec.OpenedColor),
	}); err != nil {
		return 0, fmt.Errorf("chest %s: add chest: %w", id, err)
	}
	if placed.Name != "" {
		if err := ecs.Add(w, chest, component.NameComponent.Kind(), &component.Name{Value: placed.Name}); err != nil {
			return 0, fmt.Errorf("chest %s: add name: %w", id, err)
		}
	}
	if err := ecs.Add(w, chest, component.TransformComponent.Kind(), &component.Transform{X: placed.X, Y: placed.Y}); err != nil {
		return 0, fmt.Errorf("chest %s: add transform: %w", id, err)
	}
	shape := shapeFromSpec(spec.Shape)
	if err := ecs.Add(w, chest, component.ShapeComponent.Kind(), &shape); err != nil {
		return 0, fmt.Errorf("chest %s: add shape: %w", id, err)
	}
	return chest, nil
}
