package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/levels"
	"github.com/milk9111/wayfarer/prefabs"
)

const PortalPrefab = "portal.yaml"

// NewPortal builds a portal trigger volume from a placed scene entity.
// Props: target, destination, w, h, mode, tag, retrigger.
func NewPortal(w *ecs.World, placed levels.Entity) (ecs.Entity, error) {
	spec, err := prefabs.LoadSpec[prefabs.PortalSpec](PortalPrefab)
	if err != nil {
		return 0, fmt.Errorf("portal: load spec: %w", err)
	}

	target := placed.Prop("target")
	if target == "" {
		return 0, fmt.Errorf("portal %s: missing target scene", placed.Name)
	}

	mode := component.LoadMode(strings.ToLower(placed.Prop("mode")))
	if mode == "" {
		mode = component.LoadMode(strings.ToLower(spec.Mode))
	}
	if mode != component.LoadProgressive {
		mode = component.LoadSync
	}

	tag := spec.TagFilter
	if v, ok := placed.Props["tag"]; ok {
		// An explicit empty tag lets anything with a body through.
		tag = fmt.Sprint(v)
	}

	width := placed.PropFloat("w", spec.Width)
	height := placed.PropFloat("h", spec.Height)

	portal := ecs.CreateEntity(w)
	fail := func(what string, err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, portal)
		return 0, fmt.Errorf("portal %s: add %s: %w", placed.Name, what, err)
	}

	if err := ecs.Add(w, portal, component.NameComponent.Kind(), &component.Name{Value: placed.Name}); err != nil {
		return fail("name", err)
	}
	if err := ecs.Add(w, portal, component.PortalComponent.Kind(), &component.Portal{
		TargetScene:      target,
		DestinationID:    placed.Prop("destination"),
		TagFilter:        tag,
		RetriggerSeconds: placed.PropFloat("retrigger", spec.RetriggerSeconds),
		Mode:             mode,
	}); err != nil {
		return fail("portal", err)
	}
	if err := ecs.Add(w, portal, component.PortalCooldownComponent.Kind(), &component.PortalCooldown{}); err != nil {
		return fail("portal cooldown", err)
	}
	if err := ecs.Add(w, portal, component.TransformComponent.Kind(), &component.Transform{X: placed.X, Y: placed.Y, Rotation: placed.Rotation}); err != nil {
		return fail("transform", err)
	}
	if err := ecs.Add(w, portal, component.ColliderComponent.Kind(), &component.Collider{
		Width:  width,
		Height: height,
		Static: true,
		Sensor: true,
		Layer:  component.LayerTrigger,
	}); err != nil {
		return fail("collider", err)
	}
	if err := ecs.Add(w, portal, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{}); err != nil {
		return fail("physics body", err)
	}
	shape := shapeFromSpec(spec.Shape)
	shape.Width, shape.Height = width, height
	if err := ecs.Add(w, portal, component.ShapeComponent.Kind(), &shape); err != nil {
		return fail("shape", err)
	}

	return portal, nil
}
