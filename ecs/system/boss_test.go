package system

import (
	"testing"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

var wardenPhases = []component.BossPhase{
	{Name: "stalk", HPTrigger: 40, MoveSpeed: 70, AttackCooldown: 1.6, Pattern: "melee"},
	{Name: "volley", HPTrigger: 26, MoveSpeed: 60, AttackCooldown: 1.1, Pattern: "volley", Shake: 6},
	{Name: "frenzy", HPTrigger: 12, MoveSpeed: 140, AttackCooldown: 0.7, Pattern: "mixed", Shake: 10},
}

func TestPhaseFor(t *testing.T) {
	tests := []struct {
		hp   int
		want int
	}{
		{40, 0},
		{30, 0},
		{26, 1},
		{13, 1},
		{12, 2},
		{1, 2},
	}
	for _, tt := range tests {
		if got := phaseFor(wardenPhases, tt.hp); got != tt.want {
			t.Errorf("phaseFor(hp=%d) = %d, want %d", tt.hp, got, tt.want)
		}
	}
}

func TestBossPhaseChangeRetunesAI(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewBossSystem(quietLogger())

	boss := newFighter(t, w, component.TeamEnemy, 0, 0, 40)
	_ = ecs.Add(w, boss, component.AIComponent.Kind(), &component.AI{MoveSpeed: 1, AttackCooldown: 5})
	_ = ecs.Add(w, boss, component.BossComponent.Kind(), &component.Boss{DisplayName: "The Warden", Phases: wardenPhases})
	_ = ecs.Add(w, boss, component.BossRuntimeComponent.Kind(), &component.BossRuntime{})

	w.BeginFrame()
	sys.Update(w)
	ai, _ := ecs.Get(w, boss, component.AIComponent.Kind())
	if ai.Pattern != "melee" || ai.MoveSpeed != 70 {
		t.Fatalf("initial phase not applied: %+v", ai)
	}

	h, _ := ecs.Get(w, boss, component.HealthComponent.Kind())
	h.Current = 20
	w.BeginFrame()
	sys.Update(w)
	if ai.Pattern != "volley" || ai.AttackCooldown != 1.1 {
		t.Fatalf("volley phase not applied: %+v", ai)
	}
	rt, _ := ecs.Get(w, boss, component.BossRuntimeComponent.Kind())
	if rt.CurrentPhase != 1 {
		t.Fatalf("current phase = %d, want 1", rt.CurrentPhase)
	}

	w.BeginFrame()
	shakes := ecs.ReadTyped[ecs.ShakeEvent](w, ecs.EventCameraShake)
	if len(shakes) != 1 || shakes[0].Magnitude != 6 {
		t.Fatalf("shake events = %+v, want one of magnitude 6", shakes)
	}

	// Healing never rolls a phase back.
	h.Current = 40
	sys.Update(w)
	if rt.CurrentPhase != 1 {
		t.Fatalf("phase rolled back to %d", rt.CurrentPhase)
	}
}

func TestBossSortsUnorderedPhases(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewBossSystem(quietLogger())

	phases := []component.BossPhase{
		{Name: "frenzy", HPTrigger: 12, Pattern: "mixed"},
		{Name: "stalk", HPTrigger: 40, Pattern: "melee"},
		{Name: "volley", HPTrigger: 26, Pattern: "volley"},
	}
	boss := newFighter(t, w, component.TeamEnemy, 0, 0, 40)
	_ = ecs.Add(w, boss, component.AIComponent.Kind(), &component.AI{})
	_ = ecs.Add(w, boss, component.BossComponent.Kind(), &component.Boss{DisplayName: "The Warden", Phases: phases})
	_ = ecs.Add(w, boss, component.BossRuntimeComponent.Kind(), &component.BossRuntime{})

	w.BeginFrame()
	sys.Update(w)
	ai, _ := ecs.Get(w, boss, component.AIComponent.Kind())
	if ai.Pattern != "melee" {
		t.Fatalf("full-health pattern = %q, want melee", ai.Pattern)
	}

	for _, step := range []struct {
		hp   int
		want string
	}{{20, "volley"}, {5, "mixed"}} {
		h, _ := ecs.Get(w, boss, component.HealthComponent.Kind())
		h.Current = step.hp
		w.BeginFrame()
		sys.Update(w)
		if ai.Pattern != step.want {
			t.Fatalf("hp %d pattern = %q, want %q", step.hp, ai.Pattern, step.want)
		}
	}
}
