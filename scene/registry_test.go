package scene

import (
	"testing"
)

func TestRegistryResolve(t *testing.T) {
	f := newFixture(t)
	reg, err := f.loader.LoadSync(f.world, "hub")
	if err != nil {
		t.Fatalf("load hub: %v", err)
	}

	tests := []struct {
		id        string
		wantX     float64
		wantY     float64
		wantMatch MatchKind
	}{
		{"HubWorldEnter", 100, 120, MatchExact},
		{"hubworldenter", 100, 120, MatchExact},
		{"HUBWORLDENTER", 100, 120, MatchExact},
		{"Hub_World_Enter", 100, 120, MatchNormalized},
		{"hub_from_forest", 600, 240, MatchExact},
		{"HubFromForest", 600, 240, MatchNormalized},
		{"hubfountain", 320, 200, MatchName},
		{"hub_fountain", 320, 200, MatchNameNormalized},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p, ok := reg.Resolve(tt.id)
			if !ok {
				t.Fatalf("Resolve(%q) missed", tt.id)
			}
			if p.X != tt.wantX || p.Y != tt.wantY {
				t.Fatalf("Resolve(%q) at (%v, %v), want (%v, %v)", tt.id, p.X, p.Y, tt.wantX, tt.wantY)
			}
			if p.Match != tt.wantMatch {
				t.Fatalf("Resolve(%q) match = %s, want %s", tt.id, p.Match, tt.wantMatch)
			}
		})
	}

	t.Run("miss", func(t *testing.T) {
		if _, ok := reg.Resolve("Nowhere"); ok {
			t.Fatal("Resolve(Nowhere) should miss")
		}
		if _, ok := reg.Resolve(""); ok {
			t.Fatal("Resolve(\"\") should miss")
		}
	})
}

func TestRegistryFirstDestinationWins(t *testing.T) {
	f := newFixture(t)
	reg, err := f.loader.LoadSync(f.world, "hub")
	if err != nil {
		t.Fatalf("load hub: %v", err)
	}

	ids := reg.KnownIDs()
	if len(ids) != 2 {
		t.Fatalf("known ids = %v, want the duplicate dropped", ids)
	}
	p, _ := reg.Resolve("HubWorldEnter")
	if p.X != 100 || p.Y != 120 {
		t.Fatalf("duplicate id replaced the first registration: (%v, %v)", p.X, p.Y)
	}
}

func TestRegistryExcludesPlayerAndCamera(t *testing.T) {
	f := newFixture(t)
	if _, err := f.loader.LoadSync(f.world, "hub"); err != nil {
		t.Fatalf("load hub: %v", err)
	}
	if _, err := f.spawner.EnsurePlayer(f.world); err != nil {
		t.Fatalf("spawn player: %v", err)
	}
	reg := BuildRegistry(f.world, quietLogger())
	for _, name := range reg.KnownNames() {
		if name == "Player" || name == "MainCamera" {
			t.Fatalf("registry indexed %q", name)
		}
	}
}
