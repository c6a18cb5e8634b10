package system

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

const bossShakeSeconds = 0.4

// BossSystem moves bosses through HP-gated phases. Each phase rewrites the
// boss AI tuning the script reads.
type BossSystem struct {
	log *log.Logger
}

func NewBossSystem(logger *log.Logger) *BossSystem {
	return &BossSystem{log: logger}
}

func (s *BossSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w,
		component.BossComponent.Kind(),
		component.BossRuntimeComponent.Kind(),
		component.HealthComponent.Kind(),
		func(e ecs.Entity, boss *component.Boss, runtime *component.BossRuntime, hp *component.Health) {
			if len(boss.Phases) == 0 || hp.Dead {
				return
			}

			if !runtime.Initialized {
				runtime.Initialized = true
				sortPhases(boss.Phases)
				runtime.CurrentPhase = phaseFor(boss.Phases, hp.Current)
				s.enter(w, e, boss, runtime.CurrentPhase, false)
				return
			}

			// Phases only advance; a healed boss keeps its current phase.
			next := phaseFor(boss.Phases, hp.Current)
			if next <= runtime.CurrentPhase {
				return
			}
			runtime.CurrentPhase = next
			s.enter(w, e, boss, next, true)
		})
}

// sortPhases orders phases by descending HPTrigger, the order phaseFor and
// the advance-only check rely on.
func sortPhases(phases []component.BossPhase) {
	sort.SliceStable(phases, func(i, j int) bool { return phases[i].HPTrigger > phases[j].HPTrigger })
}

// phaseFor returns the last phase whose trigger hp has been reached. Phases
// must be sorted with sortPhases.
func phaseFor(phases []component.BossPhase, hp int) int {
	idx := 0
	for i, p := range phases {
		if hp <= p.HPTrigger {
			idx = i
		}
	}
	return idx
}

func (s *BossSystem) enter(w *ecs.World, e ecs.Entity, boss *component.Boss, idx int, announce bool) {
	phase := boss.Phases[idx]
	if ai, ok := ecs.Get(w, e, component.AIComponent.Kind()); ok {
		if phase.MoveSpeed > 0 {
			ai.MoveSpeed = phase.MoveSpeed
		}
		if phase.AttackCooldown > 0 {
			ai.AttackCooldown = phase.AttackCooldown
		}
		ai.Pattern = phase.Pattern
	}
	if !announce {
		return
	}
	if phase.Shake > 0 {
		w.Events().Push(ecs.Event{Type: ecs.EventCameraShake, Data: ecs.ShakeEvent{Magnitude: phase.Shake, Seconds: bossShakeSeconds}})
	}
	s.log.Info("boss phase", "boss", boss.DisplayName, "phase", phase.Name, "pattern", phase.Pattern)
}
