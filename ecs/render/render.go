// Package render draws the world with flat shapes. It is the only ecs
// package that touches Ebitengine.
package render

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// Renderer draws shapes relative to the camera.
type Renderer struct {
	// Debug outlines colliders.
	Debug bool
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

type drawItem struct {
	e     ecs.Entity
	tf    *component.Transform
	shape *component.Shape
}

// View returns the camera's top-left world position and zoom.
func View(w *ecs.World, screenW, screenH float64) (x, y, zoom float64) {
	zoom = 1
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return 0, 0, zoom
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	if cam.Zoom > 0 {
		zoom = cam.Zoom
	}
	tf, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, zoom
	}
	x = tf.X + cam.OffsetX - screenW/zoom/2
	y = tf.Y + cam.OffsetY - screenH/zoom/2
	return x, y, zoom
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	bounds := screen.Bounds()
	sw, sh := float64(bounds.Dx()), float64(bounds.Dy())
	camX, camY, zoom := View(w, sw, sh)

	if infoEntity, ok := ecs.First(w, component.SceneInfoComponent.Kind()); ok {
		info, _ := ecs.Get(w, infoEntity, component.SceneInfoComponent.Kind())
		screen.Fill(color.NRGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xff})
		vector.DrawFilledRect(screen,
			float32(-camX*zoom), float32(-camY*zoom),
			float32(info.Width*zoom), float32(info.Height*zoom),
			toColor(info.Background), false)
	}

	var items []drawItem
	ecs.ForEach2(w, component.ShapeComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, shape *component.Shape, tf *component.Transform) {
		if shape.Hidden {
			return
		}
		items = append(items, drawItem{e: e, tf: tf, shape: shape})
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].shape.Layer != items[j].shape.Layer {
			return items[i].shape.Layer < items[j].shape.Layer
		}
		return uint64(items[i].e) < uint64(items[j].e)
	})

	for _, it := range items {
		x := float32((it.tf.X - camX) * zoom)
		y := float32((it.tf.Y - camY) * zoom)
		clr := toColor(it.shape.Color)
		if h, ok := ecs.Get(w, it.e, component.HealthComponent.Kind()); ok && h.Invulnerable > 0 {
			clr.A /= 2
		}
		switch it.shape.Kind {
		case component.ShapeCircle:
			vector.DrawFilledCircle(screen, x, y, float32(it.shape.Radius*zoom), clr, true)
		default:
			sw, sh := float32(it.shape.Width*zoom), float32(it.shape.Height*zoom)
			vector.DrawFilledRect(screen, x-sw/2, y-sh/2, sw, sh, clr, false)
		}
	}

	if r.Debug {
		r.drawColliders(w, screen, camX, camY, zoom)
	}
}

func (r *Renderer) drawColliders(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	outline := color.NRGBA{R: 0x40, G: 0xff, B: 0x40, A: 0xc0}
	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, col *component.Collider, tf *component.Transform) {
		x := float32((tf.X - camX) * zoom)
		y := float32((tf.Y - camY) * zoom)
		if col.Radius > 0 {
			vector.StrokeCircle(screen, x, y, float32(col.Radius*zoom), 1, outline, true)
			return
		}
		cw, ch := float32(col.Width*zoom), float32(col.Height*zoom)
		vector.StrokeRect(screen, x-cw/2, y-ch/2, cw, ch, 1, outline, false)
	})
}

// DrawFade covers the screen with black at the given opacity.
func DrawFade(screen *ebiten.Image, alpha float64) {
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), color.NRGBA{A: uint8(alpha * 255)}, false)
}

func toColor(c component.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
