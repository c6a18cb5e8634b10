package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/prefabs"
)

// NewBossAt builds a boss: a scripted enemy plus HP-gated phases.
func NewBossAt(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadSpec[prefabs.BossSpec](prefab)
	if err != nil {
		return 0, fmt.Errorf("boss: load spec: %w", err)
	}
	if len(spec.Phases) == 0 {
		return 0, fmt.Errorf("boss %s: prefab defines no phases", spec.Name)
	}

	boss, err := buildEnemy(w, spec.EnemySpec, x, y)
	if err != nil {
		return 0, err
	}

	phases := make([]component.BossPhase, 0, len(spec.Phases))
	for _, p := range spec.Phases {
		phases = append(phases, component.BossPhase{
			Name:           p.Name,
			HPTrigger:      p.HPTrigger,
			MoveSpeed:      p.MoveSpeed,
			AttackCooldown: p.AttackCooldown,
			Pattern:        p.Pattern,
			Shake:          p.Shake,
		})
	}
	// Highest trigger first so the phase index only ever grows as HP drops.
	sort.SliceStable(phases, func(i, j int) bool { return phases[i].HPTrigger > phases[j].HPTrigger })

	name := spec.DisplayName
	if name == "" {
		name = spec.Name
	}
	if err := ecs.Add(w, boss, component.BossComponent.Kind(), &component.Boss{DisplayName: name, Phases: phases}); err != nil {
		ecs.DestroyEntity(w, boss)
		return 0, fmt.Errorf("boss %s: add boss: %w", spec.Name, err)
	}
	if err := ecs.Add(w, boss, component.BossRuntimeComponent.Kind(), &component.BossRuntime{}); err != nil {
		ecs.DestroyEntity(w, boss)
		return 0, fmt.Errorf("boss %s: add boss runtime: %w", spec.Name, err)
	}
	return boss, nil
}
