package entity

import (
	"fmt"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// NewDestination places an arrival marker. id falls back to name.
func NewDestination(w *ecs.World, id, name string, x, y, rotation float64) (ecs.Entity, error) {
	if id == "" {
		id = name
	}
	if id == "" {
		return 0, fmt.Errorf("destination: missing id at (%.0f, %.0f)", x, y)
	}

	dest := ecs.CreateEntity(w)
	if err := ecs.Add(w, dest, component.DestinationComponent.Kind(), &component.Destination{ID: id}); err != nil {
		return 0, fmt.Errorf("destination %s: add destination: %w", id, err)
	}
	if name != "" {
		if err := ecs.Add(w, dest, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
			return 0, fmt.Errorf("destination %s: add name: %w", id, err)
		}
	}
	if err := ecs.Add(w, dest, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, Rotation: rotation}); err != nil {
		return 0, fmt.Errorf("destination %s: add transform: %w", id, err)
	}
	return dest, nil
}
