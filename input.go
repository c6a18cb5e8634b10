package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// keys is one frame of keyboard state.
type keys struct {
	left, right, up, down bool
	attack                bool
	interact              bool
	pause                 bool
	restart               bool
}

func readKeys() keys {
	pressed := func(ks ...ebiten.Key) bool {
		for _, k := range ks {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	return keys{
		left:     pressed(ebiten.KeyA, ebiten.KeyArrowLeft),
		right:    pressed(ebiten.KeyD, ebiten.KeyArrowRight),
		up:       pressed(ebiten.KeyW, ebiten.KeyArrowUp),
		down:     pressed(ebiten.KeyS, ebiten.KeyArrowDown),
		attack:   inpututil.IsKeyJustPressed(ebiten.KeyJ) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		interact: inpututil.IsKeyJustPressed(ebiten.KeyE),
		pause:    inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP),
		restart:  inpututil.IsKeyJustPressed(ebiten.KeyR),
	}
}

// applyInput writes k into every Input component. With enabled false the
// inputs are cleared so a paused or dead player stops.
func applyInput(w *ecs.World, k keys, enabled bool) {
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		*in = component.Input{}
		if !enabled {
			return
		}
		if k.left {
			in.MoveX--
		}
		if k.right {
			in.MoveX++
		}
		if k.up {
			in.MoveY--
		}
		if k.down {
			in.MoveY++
		}
		in.Attack = k.attack
		in.Interact = k.interact
	})
}
