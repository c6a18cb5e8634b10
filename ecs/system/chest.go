package system

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// ChestLedger remembers opened chests per scene across loads.
type ChestLedger interface {
	IsOpened(scene, id string) bool
	MarkOpened(scene, id string) error
}

// ChestSystem opens chests the player interacts with while in range.
type ChestSystem struct {
	log    *log.Logger
	ledger ChestLedger
}

func NewChestSystem(logger *log.Logger, ledger ChestLedger) *ChestSystem {
	return &ChestSystem{log: logger, ledger: ledger}
}

func (s *ChestSystem) Update(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	in, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok || !in.Interact {
		return
	}
	ptf, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok && h.Dead {
		return
	}

	sceneName := currentSceneName(w)
	ecs.ForEach2(w, component.ChestComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, chest *component.Chest, tf *component.Transform) {
		if chest.Opened || math.Hypot(tf.X-ptf.X, tf.Y-ptf.Y) > chest.Range {
			return
		}
		s.open(w, e, chest)
		if chest.Heal > 0 {
			heal(w, player, chest.Heal)
		}
		if wallet, ok := ecs.Get(w, player, component.WalletComponent.Kind()); ok {
			wallet.Coins += chest.Coins
		}
		w.Events().Push(ecs.Event{Type: ecs.EventChestOpened, Data: ecs.ChestEvent{
			Chest:   e,
			ChestID: chest.ID,
			Heal:    chest.Heal,
			Coins:   chest.Coins,
		}})
		if s.ledger != nil {
			if err := s.ledger.MarkOpened(sceneName, chest.ID); err != nil {
				s.log.Warn("record opened chest", "scene", sceneName, "chest", chest.ID, "err", err)
			}
		}
		s.log.Debug("chest opened", "scene", sceneName, "chest", chest.ID, "heal", chest.Heal, "coins", chest.Coins)
	})
}

func (s *ChestSystem) open(w *ecs.World, e ecs.Entity, chest *component.Chest) {
	chest.Opened = true
	if shape, ok := ecs.Get(w, e, component.ShapeComponent.Kind()); ok {
		shape.Color = chest.OpenedColor
	}
}

// HandleSceneLoaded marks chests the ledger already knows as opened.
func (s *ChestSystem) HandleSceneLoaded(w *ecs.World) {
	if s.ledger == nil {
		return
	}
	sceneName := currentSceneName(w)
	ecs.ForEach(w, component.ChestComponent.Kind(), func(e ecs.Entity, chest *component.Chest) {
		if !chest.Opened && s.ledger.IsOpened(sceneName, chest.ID) {
			s.open(w, e, chest)
		}
	})
}

func currentSceneName(w *ecs.World) string {
	e, ok := ecs.First(w, component.SceneInfoComponent.Kind())
	if !ok {
		return ""
	}
	info, _ := ecs.Get(w, e, component.SceneInfoComponent.Kind())
	return info.Name
}
