package system

import (
	"testing"

	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

func spawnBody(t *testing.T, w *ecs.World, x, y float64, col component.Collider) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &col); err != nil {
		t.Fatalf("add collider: %v", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{}); err != nil {
		t.Fatalf("add body: %v", err)
	}
	if !col.Static {
		if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
			t.Fatalf("add velocity: %v", err)
		}
	}
	return e
}

func TestPhysicsSensorOverlapEmitsTriggerEnter(t *testing.T) {
	w := ecs.NewWorld()
	c := clock.New()
	ps := NewPhysicsSystem(c)

	sensor := spawnBody(t, w, 0, 0, component.Collider{Width: 40, Height: 40, Static: true, Sensor: true, Layer: component.LayerTrigger})
	actor := spawnBody(t, w, 5, 5, component.Collider{Radius: 10, Layer: component.LayerActor})

	c.Tick(clock.TickSeconds)
	ps.Update(w)
	w.BeginFrame()

	events := ecs.ReadTyped[ecs.TriggerEvent](w, ecs.EventTriggerEnter)
	if len(events) != 1 {
		t.Fatalf("trigger enter events = %d, want 1", len(events))
	}
	if events[0].Trigger != sensor || events[0].Other != actor {
		t.Fatalf("event = %+v, want trigger %v other %v", events[0], sensor, actor)
	}
}

func TestPhysicsMovesBodiesOnGameTime(t *testing.T) {
	w := ecs.NewWorld()
	c := clock.New()
	ps := NewPhysicsSystem(c)

	e := spawnBody(t, w, 0, 0, component.Collider{Radius: 5, Layer: component.LayerActor})
	vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	vel.X = 60

	c.SetTimeScale(0)
	c.Tick(clock.TickSeconds)
	ps.Update(w)
	tf, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tf.X != 0 {
		t.Fatalf("paused body moved to x=%v", tf.X)
	}

	c.SetTimeScale(1)
	for i := 0; i < 60; i++ {
		c.Tick(clock.TickSeconds)
		ps.Update(w)
	}
	if tf.X < 55 || tf.X > 65 {
		t.Fatalf("body at x=%v after one second at 60/s", tf.X)
	}
}

func TestPhysicsResetDetachesBodies(t *testing.T) {
	w := ecs.NewWorld()
	c := clock.New()
	ps := NewPhysicsSystem(c)

	e := spawnBody(t, w, 10, 20, component.Collider{Radius: 5, Layer: component.LayerActor})
	c.Tick(clock.TickSeconds)
	ps.Update(w)

	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	old := body.Body
	if old == nil {
		t.Fatal("no body after first update")
	}

	ps.Reset(w)
	if body.Body != nil || body.Shape != nil {
		t.Fatal("reset left the body attached")
	}

	c.Tick(clock.TickSeconds)
	ps.Update(w)
	if body.Body == nil || body.Body == old {
		t.Fatal("body not rebuilt in the new space")
	}
	if p := body.Body.Position(); p.X != 10 || p.Y != 20 {
		t.Fatalf("rebuilt body at %v, want (10, 20)", p)
	}
}
