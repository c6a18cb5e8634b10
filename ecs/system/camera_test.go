package system

import (
	"testing"

	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

func newCameraEntity(t *testing.T, w *ecs.World, smoothness float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{Zoom: 1, Smoothness: smoothness}); err != nil {
		t.Fatalf("add camera: %v", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	return e
}

func TestCameraRetriesUntilPlayerAppears(t *testing.T) {
	w := ecs.NewWorld()
	c := clock.New()
	cs := NewCameraFollowSystem(quietLogger(), c, CameraConfig{RetryInterval: 0.1, MaxAttempts: 30})
	newCameraEntity(t, w, 0)

	cs.HandleSceneLoaded(w, "hub")
	if _, bound := cs.Target(); bound {
		t.Fatal("bound with no player in the world")
	}
	if !cs.Searching() {
		t.Fatal("not searching after scene load")
	}

	for i := 0; i < 10; i++ {
		c.Tick(clock.TickSeconds)
		cs.Update(w)
	}

	player := newTaggedPlayer(t, w)
	tf, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	tf.X, tf.Y = 300, 200

	for i := 0; i < 10; i++ {
		c.Tick(clock.TickSeconds)
		cs.Update(w)
	}
	got, bound := cs.Target()
	if !bound || got != player {
		t.Fatalf("target = %v (bound %v), want %v", got, bound, player)
	}
}

func TestCameraGivesUpAfterMaxAttempts(t *testing.T) {
	w := ecs.NewWorld()
	c := clock.New()
	cs := NewCameraFollowSystem(quietLogger(), c, CameraConfig{RetryInterval: 0.1, MaxAttempts: 3})
	newCameraEntity(t, w, 0)

	cs.HandleSceneLoaded(w, "hub")
	for i := 0; i < 60; i++ {
		c.Tick(clock.TickSeconds)
		cs.Update(w)
	}
	if cs.Searching() {
		t.Fatal("still searching after max attempts")
	}

	newTaggedPlayer(t, w)
	for i := 0; i < 10; i++ {
		c.Tick(clock.TickSeconds)
		cs.Update(w)
	}
	if _, bound := cs.Target(); bound {
		t.Fatal("bound after the search gave up")
	}
}

func TestCameraSearchRunsWhilePaused(t *testing.T) {
	w := ecs.NewWorld()
	c := clock.New()
	c.SetTimeScale(0)
	cs := NewCameraFollowSystem(quietLogger(), c, CameraConfig{RetryInterval: 0.1, MaxAttempts: 30})
	newCameraEntity(t, w, 0)

	cs.HandleSceneLoaded(w, "hub")
	player := newTaggedPlayer(t, w)
	for i := 0; i < 10; i++ {
		c.Tick(clock.TickSeconds)
		cs.Update(w)
	}
	if got, bound := cs.Target(); !bound || got != player {
		t.Fatalf("target = %v (bound %v) with the game paused", got, bound)
	}
}

func TestCameraBindSnapsAndClamps(t *testing.T) {
	w := ecs.NewWorld()
	c := clock.New()
	cs := NewCameraFollowSystem(quietLogger(), c, CameraConfig{})
	cs.SetViewport(200, 100)
	cam := newCameraEntity(t, w, 0.5)

	info := ecs.CreateEntity(w)
	_ = ecs.Add(w, info, component.SceneInfoComponent.Kind(), &component.SceneInfo{Name: "hub", Width: 1000, Height: 80})

	player := newTaggedPlayer(t, w)
	ptf, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	ptf.X, ptf.Y = 20, 60

	cs.Bind(w, player)

	tf, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	// x clamps to half the view; a scene shorter than the view centers.
	if tf.X != 100 || tf.Y != 40 {
		t.Fatalf("camera at (%v, %v), want (100, 40)", tf.X, tf.Y)
	}
	camComp, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
	if camComp.Target != uint64(player) {
		t.Fatalf("camera target = %v, want %v", camComp.Target, player)
	}

	ptf.X = 500
	c.Tick(clock.TickSeconds)
	cs.Update(w)
	if tf.X <= 100 || tf.X >= 500 {
		t.Fatalf("camera x = %v, want eased between 100 and 500", tf.X)
	}
}

func TestCameraRepairRebindsToNewPlayer(t *testing.T) {
	w := ecs.NewWorld()
	c := clock.New()
	cs := NewCameraFollowSystem(quietLogger(), c, CameraConfig{RepairInterval: 0.5})
	newCameraEntity(t, w, 0)

	first := newTaggedPlayer(t, w)
	cs.Bind(w, first)
	ecs.DestroyEntity(w, first)
	second := newTaggedPlayer(t, w)

	for i := 0; i < 40; i++ {
		c.Tick(clock.TickSeconds)
		cs.Update(w)
	}
	if got, bound := cs.Target(); !bound || got != second {
		t.Fatalf("target = %v (bound %v), want %v", got, bound, second)
	}
}
