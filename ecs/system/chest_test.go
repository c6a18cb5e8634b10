package system

import (
	"testing"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

type memoryLedger struct {
	opened map[string]bool
}

func (m *memoryLedger) IsOpened(scene, id string) bool { return m.opened[scene+"/"+id] }

func (m *memoryLedger) MarkOpened(scene, id string) error {
	if m.opened == nil {
		m.opened = map[string]bool{}
	}
	m.opened[scene+"/"+id] = true
	return nil
}

func chestWorld(t *testing.T) (*ecs.World, ecs.Entity, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()

	info := ecs.CreateEntity(w)
	_ = ecs.Add(w, info, component.SceneInfoComponent.Kind(), &component.SceneInfo{Name: "forest"})

	player := newFighter(t, w, component.TeamPlayer, 0, 0, 10)
	_ = ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{})
	_ = ecs.Add(w, player, component.WalletComponent.Kind(), &component.Wallet{})
	h, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	h.Current = 4

	chest := ecs.CreateEntity(w)
	_ = ecs.Add(w, chest, component.ChestComponent.Kind(), &component.Chest{
		ID:          "glade",
		Heal:        10,
		Coins:       7,
		Range:       40,
		OpenedColor: component.RGBA{R: 1, G: 2, B: 3, A: 255},
	})
	_ = ecs.Add(w, chest, component.TransformComponent.Kind(), &component.Transform{X: 30})
	_ = ecs.Add(w, chest, component.ShapeComponent.Kind(), &component.Shape{Kind: component.ShapeRect})
	return w, player, chest
}

func TestChestOpensOnceInRange(t *testing.T) {
	w, player, chest := chestWorld(t)
	ledger := &memoryLedger{}
	sys := NewChestSystem(quietLogger(), ledger)

	in, _ := ecs.Get(w, player, component.InputComponent.Kind())
	in.Interact = true
	sys.Update(w)
	sys.Update(w)

	h, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	if h.Current != h.Max {
		t.Fatalf("hp = %d, want capped at %d", h.Current, h.Max)
	}
	wallet, _ := ecs.Get(w, player, component.WalletComponent.Kind())
	if wallet.Coins != 7 {
		t.Fatalf("coins = %d, want 7 (chest must open once)", wallet.Coins)
	}
	shape, _ := ecs.Get(w, chest, component.ShapeComponent.Kind())
	if shape.Color != (component.RGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Fatalf("shape color = %+v, want opened color", shape.Color)
	}
	if !ledger.IsOpened("forest", "glade") {
		t.Fatal("ledger not updated")
	}
}

func TestChestOutOfRangeStaysShut(t *testing.T) {
	w, player, chest := chestWorld(t)
	sys := NewChestSystem(quietLogger(), nil)

	ptf, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	ptf.X = -100
	in, _ := ecs.Get(w, player, component.InputComponent.Kind())
	in.Interact = true
	sys.Update(w)

	c, _ := ecs.Get(w, chest, component.ChestComponent.Kind())
	if c.Opened {
		t.Fatal("chest opened from out of range")
	}
}

func TestChestLedgerRestoresOpenedState(t *testing.T) {
	w, player, chest := chestWorld(t)
	ledger := &memoryLedger{}
	_ = ledger.MarkOpened("forest", "glade")
	sys := NewChestSystem(quietLogger(), ledger)

	sys.HandleSceneLoaded(w)

	in, _ := ecs.Get(w, player, component.InputComponent.Kind())
	in.Interact = true
	sys.Update(w)

	c, _ := ecs.Get(w, chest, component.ChestComponent.Kind())
	if !c.Opened {
		t.Fatal("chest not restored as opened")
	}
	wallet, _ := ecs.Get(w, player, component.WalletComponent.Kind())
	if wallet.Coins != 0 {
		t.Fatalf("restored chest paid out %d coins", wallet.Coins)
	}
}

func TestDeathDropsLootAndPickupPays(t *testing.T) {
	w := ecs.NewWorld()
	death := NewDeathSystem(quietLogger())
	pickups := NewPickupCollectSystem()

	enemy := newFighter(t, w, component.TeamEnemy, 50, 60, 1)
	_ = ecs.Add(w, enemy, component.LootComponent.Kind(), &component.Loot{Coins: 4})
	player := newTaggedPlayer(t, w)
	_ = ecs.Add(w, player, component.WalletComponent.Kind(), &component.Wallet{})

	w.Events().Push(ecs.Event{Type: ecs.EventDeath, Data: ecs.DeathEvent{Entity: enemy}})
	w.BeginFrame()
	death.Update(w)

	if ecs.IsAlive(w, enemy) {
		t.Fatal("dead enemy not removed")
	}
	coin, ok := ecs.First(w, component.PickupComponent.Kind())
	if !ok {
		t.Fatal("no coin dropped")
	}
	tf, _ := ecs.Get(w, coin, component.TransformComponent.Kind())
	if tf.X != 50 || tf.Y != 60 {
		t.Fatalf("coin at (%v, %v), want (50, 60)", tf.X, tf.Y)
	}

	touch(w, coin, player)
	w.BeginFrame()
	pickups.Update(w)

	wallet, _ := ecs.Get(w, player, component.WalletComponent.Kind())
	if wallet.Coins != 4 {
		t.Fatalf("coins = %d, want 4", wallet.Coins)
	}
	if ecs.IsAlive(w, coin) {
		t.Fatal("collected coin still alive")
	}
}
