package ui

import (
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/scene"
)

// ReadHUD collects the HUD values from the world.
func ReadHUD(w *ecs.World) HUDData {
	var d HUDData
	if player, ok := scene.FindPlayer(w); ok {
		if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok {
			d.Health, d.MaxHealth = h.Current, h.Max
		}
		if wallet, ok := ecs.Get(w, player, component.WalletComponent.Kind()); ok {
			d.Coins = wallet.Coins
		}
	}
	if e, ok := ecs.First(w, component.SceneInfoComponent.Kind()); ok {
		info, _ := ecs.Get(w, e, component.SceneInfoComponent.Kind())
		d.Scene = info.Name
	}
	ecs.ForEach2(w, component.BossComponent.Kind(), component.HealthComponent.Kind(), func(_ ecs.Entity, boss *component.Boss, h *component.Health) {
		if h.Dead || d.Boss != "" {
			return
		}
		d.Boss, d.BossHealth, d.BossMax = boss.DisplayName, h.Current, h.Max
	})
	return d
}
