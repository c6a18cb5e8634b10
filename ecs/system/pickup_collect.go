package system

import (
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// PickupCollectSystem hands pickups to the player that touched them.
type PickupCollectSystem struct{}

func NewPickupCollectSystem() *PickupCollectSystem { return &PickupCollectSystem{} }

func (s *PickupCollectSystem) Update(w *ecs.World) {
	for _, t := range ecs.ReadTyped[ecs.TriggerEvent](w, ecs.EventTriggerEnter) {
		pickup, ok := ecs.Get(w, t.Trigger, component.PickupComponent.Kind())
		if !ok || !ecs.Has(w, t.Other, component.PlayerTagComponent.Kind()) {
			continue
		}
		if wallet, ok := ecs.Get(w, t.Other, component.WalletComponent.Kind()); ok {
			wallet.Coins += pickup.Coins
		}
		if pickup.Heal > 0 {
			heal(w, t.Other, pickup.Heal)
		}
		ecs.DestroyEntity(w, t.Trigger)
	}
}

func heal(w *ecs.World, e ecs.Entity, amount int) {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || h.Dead {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}
