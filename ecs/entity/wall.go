package entity

import (
	"fmt"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/levels"
	"github.com/milk9111/wayfarer/prefabs"
)

const WallPrefab = "wall.yaml"

// NewWall builds a static wall from a solid rect (top-left anchored).
func NewWall(w *ecs.World, rect levels.Rect) (ecs.Entity, error) {
	if rect.W <= 0 || rect.H <= 0 {
		return 0, fmt.Errorf("wall: empty rect %+v", rect)
	}
	spec, err := prefabs.LoadSpec[prefabs.WallSpec](WallPrefab)
	if err != nil {
		return 0, fmt.Errorf("wall: load spec: %w", err)
	}

	wall := ecs.CreateEntity(w)
	if err := ecs.Add(w, wall, component.TransformComponent.Kind(), &component.Transform{
		X: rect.X + rect.W/2,
		Y: rect.Y + rect.H/2,
	}); err != nil {
		return 0, fmt.Errorf("wall: add transform: %w", err)
	}
	if err := ecs.Add(w, wall, component.ColliderComponent.Kind(), &component.Collider{
		Width:  rect.W,
		Height: rect.H,
		Static: true,
		Layer:  component.LayerWall,
	}); err != nil {
		return 0, fmt.Errorf("wall: add collider: %w", err)
	}
	if err := ecs.Add(w, wall, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{}); err != nil {
		return 0, fmt.Errorf("wall: add physics body: %w", err)
	}
	shape := shapeFromSpec(spec.Shape)
	shape.Kind = component.ShapeRect
	shape.Width, shape.Height = rect.W, rect.H
	if err := ecs.Add(w, wall, component.ShapeComponent.Kind(), &shape); err != nil {
		return 0, fmt.Errorf("wall: add shape: %w", err)
	}
	return wall, nil
}
