package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/levels"
)

// BuildStep instantiates one part of a scene. Prefab names the prefab the
// step reads, if any, so a loader can warm it before building.
type BuildStep struct {
	Label  string
	Prefab string
	Build  func(w *ecs.World) error
}

// PlanLevel splits a level into build steps: scene info, one per solid and
// one per placed entity. Progressive loads run a few steps per frame.
func PlanLevel(lvl *levels.Level) []BuildStep {
	if lvl == nil {
		return nil
	}
	steps := make([]BuildStep, 0, 1+len(lvl.Solids)+len(lvl.Entities))

	steps = append(steps, BuildStep{Label: "scene " + lvl.Name, Build: func(w *ecs.World) error {
		_, err := NewSceneInfo(w, lvl)
		return err
	}})

	for i, solid := range lvl.Solids {
		steps = append(steps, BuildStep{Label: fmt.Sprintf("solid %d", i), Prefab: WallPrefab, Build: func(w *ecs.World) error {
			_, err := NewWall(w, solid)
			return err
		}})
	}

	for _, placed := range lvl.Entities {
		steps = append(steps, BuildStep{Label: placed.Type + " " + placed.Name, Prefab: ScenePrefab(placed), Build: func(w *ecs.World) error {
			_, err := BuildSceneEntity(w, placed)
			return err
		}})
	}
	return steps
}

// LoadLevelToWorld runs every build step of lvl at once.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) error {
	for _, step := range PlanLevel(lvl) {
		if err := step.Build(w); err != nil {
			return fmt.Errorf("load level %s: %s: %w", lvl.Name, step.Label, err)
		}
	}
	return nil
}

// BuildSceneEntity instantiates a placed scene entity by type.
func BuildSceneEntity(w *ecs.World, placed levels.Entity) (ecs.Entity, error) {
	switch strings.ToLower(placed.Type) {
	case "destination":
		return NewDestination(w, placed.Prop("id"), placed.Name, placed.X, placed.Y, placed.Rotation)
	case "portal":
		return NewPortal(w, placed)
	case "chest":
		return NewChest(w, placed)
	case "prop":
		return NewProp(w, placed)
	case "enemy":
		e, err := NewEnemyAt(w, prefabProp(placed, "melee_enemy.yaml"), placed.X, placed.Y)
		return renamed(w, e, placed.Name, err)
	case "boss":
		e, err := NewBossAt(w, prefabProp(placed, "boss.yaml"), placed.X, placed.Y)
		return renamed(w, e, placed.Name, err)
	default:
		return 0, fmt.Errorf("unknown scene entity type %q (%s)", placed.Type, placed.Name)
	}
}

// NewSceneInfo records the active scene's name, bounds and background.
func NewSceneInfo(w *ecs.World, lvl *levels.Level) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.SceneInfoComponent.Kind(), &component.SceneInfo{
		Name:       lvl.Name,
		Width:      lvl.Width,
		Height:     lvl.Height,
		Background: colorProp(lvl.Background, component.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}),
	}); err != nil {
		return 0, fmt.Errorf("scene info: %w", err)
	}
	return e, nil
}

// ScenePrefab returns the prefab a placed entity is built from, or "" for
// types that need none.
func ScenePrefab(placed levels.Entity) string {
	switch strings.ToLower(placed.Type) {
	case "portal":
		return PortalPrefab
	case "chest":
		return ChestPrefab
	case "prop":
		return PropPrefab
	case "enemy":
		return prefabProp(placed, "melee_enemy.yaml")
	case "boss":
		return prefabProp(placed, "boss.yaml")
	default:
		return ""
	}
}

func prefabProp(placed levels.Entity, fallback string) string {
	if p := placed.Prop("prefab"); p != "" {
		return p
	}
	return fallback
}

// renamed gives a prefab-built entity its scene name so name lookups find it.
func renamed(w *ecs.World, e ecs.Entity, name string, err error) (ecs.Entity, error) {
	if err != nil || name == "" {
		return e, err
	}
	if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok {
		n.Value = name
	}
	return e, nil
}
