package scene

import (
	"testing"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

func TestSpawnerPlacesPlayerAtDestination(t *testing.T) {
	tests := []struct {
		id    string
		wantX float64
		wantY float64
		wantR float64
	}{
		{"HubWorldEnter", 100, 120, 90},
		{"Hub_World_Enter", 100, 120, 90},
		{"HUBWORLDENTER", 100, 120, 90},
		{"Hub_From_Forest", 600, 240, 180},
		{"HubFountain", 320, 200, 0},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			f := newFixture(t)
			reg, err := f.loader.LoadSync(f.world, "hub")
			if err != nil {
				t.Fatalf("load hub: %v", err)
			}

			var notified ecs.Entity
			f.spawner.OnPlaced(func(_ *ecs.World, p ecs.Entity) { notified = p })

			f.spawner.SetPendingDestination(tt.id)
			if !f.spawner.HandleSceneLoaded(f.world, reg) {
				t.Fatalf("player not placed at %q", tt.id)
			}

			tf := playerTransform(t, f.world)
			if tf.X != tt.wantX || tf.Y != tt.wantY || tf.Rotation != tt.wantR {
				t.Fatalf("player at (%v, %v, %v), want (%v, %v, %v)", tf.X, tf.Y, tf.Rotation, tt.wantX, tt.wantY, tt.wantR)
			}
			if _, pending := f.spawner.PendingDestination(); pending {
				t.Fatal("pending destination not cleared after placement")
			}
			if !f.cooldown.Active() {
				t.Fatal("global portal cooldown not armed after placement")
			}
			if player, _ := FindPlayer(f.world); notified != player {
				t.Fatalf("placed listener got %v, want %v", notified, player)
			}
			if f.spawner.LastDestination() != tt.id {
				t.Fatalf("last destination = %q, want %q", f.spawner.LastDestination(), tt.id)
			}
		})
	}
}

func TestSpawnerUnknownDestinationLeavesPlayer(t *testing.T) {
	f := newFixture(t)
	reg, err := f.loader.LoadSync(f.world, "hub")
	if err != nil {
		t.Fatalf("load hub: %v", err)
	}
	player, err := f.spawner.EnsurePlayer(f.world)
	if err != nil {
		t.Fatalf("spawn player: %v", err)
	}
	tf, _ := ecs.Get(f.world, player, component.TransformComponent.Kind())
	tf.X, tf.Y = 42, 24

	f.spawner.SetPendingDestination("NoSuchPlace")
	if f.spawner.HandleSceneLoaded(f.world, reg) {
		t.Fatal("placement reported success for an unknown id")
	}

	got := playerTransform(t, f.world)
	if got.X != 42 || got.Y != 24 {
		t.Fatalf("player moved to (%v, %v)", got.X, got.Y)
	}
	if _, pending := f.spawner.PendingDestination(); pending {
		t.Fatal("pending destination should be cleared after a miss")
	}
	if f.cooldown.Active() {
		t.Fatal("cooldown armed after a failed placement")
	}
}

func TestSpawnerWithoutPendingIsNoop(t *testing.T) {
	f := newFixture(t)
	reg, err := f.loader.LoadSync(f.world, "hub")
	if err != nil {
		t.Fatalf("load hub: %v", err)
	}
	if f.spawner.HandleSceneLoaded(f.world, reg) {
		t.Fatal("placed without a pending destination")
	}
	if _, ok := FindPlayer(f.world); ok {
		t.Fatal("player spawned without a pending destination")
	}
}

func TestSpawnerPendingReplace(t *testing.T) {
	f := newFixture(t)
	f.spawner.SetPendingDestination("First")
	f.spawner.SetPendingDestination("Second")

	got, ok := f.spawner.PendingDestination()
	if !ok || got != "Second" {
		t.Fatalf("pending = %q, %v; want Second", got, ok)
	}
	// Peeking does not consume.
	if again, ok := f.spawner.PendingDestination(); !ok || again != "Second" {
		t.Fatalf("pending after peek = %q, %v", again, ok)
	}
}

func TestSpawnerListenerPanicIsRecovered(t *testing.T) {
	f := newFixture(t)
	reg, err := f.loader.LoadSync(f.world, "hub")
	if err != nil {
		t.Fatalf("load hub: %v", err)
	}

	called := false
	f.spawner.OnPlaced(func(*ecs.World, ecs.Entity) { panic("boom") })
	f.spawner.OnPlaced(func(*ecs.World, ecs.Entity) { called = true })

	f.spawner.SetPendingDestination("HubWorldEnter")
	if !f.spawner.HandleSceneLoaded(f.world, reg) {
		t.Fatal("placement failed")
	}
	if !called {
		t.Fatal("listener after the panicking one was skipped")
	}
}

func TestSpawnerReusesPersistentPlayer(t *testing.T) {
	f := newFixture(t)
	reg, err := f.loader.LoadSync(f.world, "hub")
	if err != nil {
		t.Fatalf("load hub: %v", err)
	}
	f.spawner.SetPendingDestination("HubWorldEnter")
	f.spawner.HandleSceneLoaded(f.world, reg)
	first, _ := FindPlayer(f.world)

	reg, err = f.loader.LoadSync(f.world, "forest")
	if err != nil {
		t.Fatalf("load forest: %v", err)
	}
	f.spawner.SetPendingDestination("ForestFromHub")
	f.spawner.HandleSceneLoaded(f.world, reg)

	second, _ := FindPlayer(f.world)
	if first != second {
		t.Fatalf("player replaced across scenes: %v -> %v", first, second)
	}
	if n := ecs.Count(f.world, component.PlayerTagComponent.Kind()); n != 1 {
		t.Fatalf("players = %d, want 1", n)
	}
	tf := playerTransform(t, f.world)
	if tf.X != 40 || tf.Y != 240 {
		t.Fatalf("player at (%v, %v), want (40, 240)", tf.X, tf.Y)
	}
}

func TestSpawnerArriveAtDefault(t *testing.T) {
	f := newFixture(t)
	reg, err := f.loader.LoadSync(f.world, "hub")
	if err != nil {
		t.Fatalf("load hub: %v", err)
	}
	if !f.spawner.ArriveAtDefault(f.world, reg) {
		t.Fatal("default arrival failed")
	}
	tf := playerTransform(t, f.world)
	if tf.X != 100 || tf.Y != 120 {
		t.Fatalf("player at (%v, %v), want (100, 120)", tf.X, tf.Y)
	}
	if f.spawner.LastDestination() != "HubWorldEnter" {
		t.Fatalf("last destination = %q", f.spawner.LastDestination())
	}
}
