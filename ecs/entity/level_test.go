package entity

import (
	"testing"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/levels"
)

func TestPlanLevel(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("hub")
	if err != nil {
		t.Fatalf("load hub: %v", err)
	}
	steps := PlanLevel(lvl)
	if want := 1 + len(lvl.Solids) + len(lvl.Entities); len(steps) != want {
		t.Fatalf("steps = %d, want %d", len(steps), want)
	}
	if steps[0].Prefab != "" {
		t.Fatalf("scene info step needs prefab %q", steps[0].Prefab)
	}
	for _, s := range steps[1 : 1+len(lvl.Solids)] {
		if s.Prefab != WallPrefab {
			t.Fatalf("solid step prefab = %q", s.Prefab)
		}
	}
	if PlanLevel(nil) != nil {
		t.Fatal("PlanLevel(nil) should be empty")
	}
}

func TestLoadLevelToWorld(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("hub")
	if err != nil {
		t.Fatalf("load hub: %v", err)
	}
	w := ecs.NewWorld()
	if err := LoadLevelToWorld(w, lvl); err != nil {
		t.Fatalf("LoadLevelToWorld: %v", err)
	}

	if n := ecs.Count(w, component.PortalComponent.Kind()); n != 3 {
		t.Fatalf("portals = %d, want 3", n)
	}
	if n := ecs.Count(w, component.DestinationComponent.Kind()); n != 4 {
		t.Fatalf("destinations = %d, want 4", n)
	}

	modes := map[string]component.LoadMode{}
	ecs.ForEach(w, component.PortalComponent.Kind(), func(e ecs.Entity, p *component.Portal) {
		name, _ := ecs.Get(w, e, component.NameComponent.Kind())
		modes[name.Value] = p.Mode
		col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
		if !ok || !col.Sensor || col.Layer != component.LayerTrigger {
			t.Errorf("portal %s collider = %+v", name.Value, col)
		}
	})
	if modes["ToCaves"] != component.LoadProgressive || modes["ToForest"] != component.LoadSync {
		t.Fatalf("portal modes = %v", modes)
	}
}

func TestBuildSceneEntityErrors(t *testing.T) {
	tests := []struct {
		name   string
		placed levels.Entity
	}{
		{name: "unknown type", placed: levels.Entity{Type: "spaceship", Name: "X"}},
		{name: "portal without target", placed: levels.Entity{Type: "portal", Name: "Nowhere"}},
		{name: "destination without id", placed: levels.Entity{Type: "destination"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			if _, err := BuildSceneEntity(w, tt.placed); err == nil {
				t.Fatal("expected error")
			}
			if n := ecs.Count(w, component.PortalComponent.Kind()); n != 0 {
				t.Fatalf("failed build left %d portals", n)
			}
		})
	}
}
