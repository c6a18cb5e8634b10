package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// SetEntityTransform moves e, teleporting its physics body with it so the
// next physics step does not pull the transform back.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		transform = &component.Transform{}
	}
	transform.X = x
	transform.Y = y
	transform.Rotation = rotation
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), transform); err != nil {
		return fmt.Errorf("entity: set transform: %w", err)
	}

	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetPosition(cp.Vector{X: x, Y: y})
		body.Body.SetVelocityVector(cp.Vector{})
	}
	if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		vel.X, vel.Y = 0, 0
	}
	return nil
}
