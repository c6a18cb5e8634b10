package entity

import (
	"fmt"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/levels"
	"github.com/milk9111/wayfarer/prefabs"
)

const PropPrefab = "prop.yaml"

// NewProp builds decorative scenery. Props: w, h, color, solid.
func NewProp(w *ecs.World, placed levels.Entity) (ecs.Entity, error) {
	spec, err := prefabs.LoadSpec[prefabs.WallSpec](PropPrefab)
	if err != nil {
		return 0, fmt.Errorf("prop: load spec: %w", err)
	}

	width := placed.PropFloat("w", 32)
	height := placed.PropFloat("h", 32)

	prop := ecs.CreateEntity(w)
	if placed.Name != "" {
		if err := ecs.Add(w, prop, component.NameComponent.Kind(), &component.Name{Value: placed.Name}); err != nil {
			return 0, fmt.Errorf("prop %s: add name: %w", placed.Name, err)
		}
	}
	if err := ecs.Add(w, prop, component.TransformComponent.Kind(), &component.Transform{X: placed.X, Y: placed.Y, Rotation: placed.Rotation}); err != nil {
		return 0, fmt.Errorf("prop %s: add transform: %w", placed.Name, err)
	}
	if placed.Prop("solid") == "true" {
		if err := ecs.Add(w, prop, component.ColliderComponent.Kind(), &component.Collider{
			Width:  width,
			Height: height,
			Static: true,
			Layer:  component.LayerWall,
		}); err != nil {
			return 0, fmt.Errorf("prop %s: add collider: %w", placed.Name, err)
		}
		if err := ecs.Add(w, prop, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{}); err != nil {
			return 0, fmt.Errorf("prop %s: add physics body: %w", placed.Name, err)
		}
	}
	shape := shapeFromSpec(spec.Shape)
	shape.Kind = component.ShapeRect
	shape.Width, shape.Height = width, height
	shape.Color = colorProp(placed.Prop("color"), shape.Color)
	if err := ecs.Add(w, prop, component.ShapeComponent.Kind(), &shape); err != nil {
		return 0, fmt.Errorf("prop %s: add shape: %w", placed.Name, err)
	}
	return prop, nil
}
