package system

import (
	"testing"

	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

func TestTTLDestroysExpiredEntities(t *testing.T) {
	w := ecs.NewWorld()
	c := clock.New()
	sys := NewTTLSystem(c)

	short := ecs.CreateEntity(w)
	_ = ecs.Add(w, short, component.TTLComponent.Kind(), &component.TTL{Seconds: 0.05})
	long := ecs.CreateEntity(w)
	_ = ecs.Add(w, long, component.TTLComponent.Kind(), &component.TTL{Seconds: 1})

	for i := 0; i < 6; i++ {
		c.Tick(clock.TickSeconds)
		sys.Update(w)
	}
	if ecs.IsAlive(w, short) {
		t.Fatal("expired entity still alive")
	}
	if !ecs.IsAlive(w, long) {
		t.Fatal("entity destroyed before its ttl")
	}
}

func TestKnockbackOverridesThenExpires(t *testing.T) {
	w := ecs.NewWorld()
	c := clock.New()
	sys := NewKnockbackSystem(c)

	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: 5})
	_ = ecs.Add(w, e, component.KnockbackComponent.Kind(), &component.Knockback{VX: -200, Seconds: 0.03})

	c.Tick(clock.TickSeconds)
	sys.Update(w)
	vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	if vel.X != -200 {
		t.Fatalf("velocity x = %v, want -200 while knocked back", vel.X)
	}

	for i := 0; i < 3; i++ {
		c.Tick(clock.TickSeconds)
		sys.Update(w)
	}
	if ecs.Has(w, e, component.KnockbackComponent.Kind()) {
		t.Fatal("knockback not removed after expiry")
	}
}

func TestHealthInvulnerabilityCountsDown(t *testing.T) {
	w := ecs.NewWorld()
	c := clock.New()
	sys := NewHealthSystem(c)

	e := newFighter(t, w, component.TeamPlayer, 0, 0, 3)
	h, _ := ecs.Get(w, e, component.HealthComponent.Kind())
	h.Invulnerable = 0.05

	for i := 0; i < 4; i++ {
		c.Tick(clock.TickSeconds)
		sys.Update(w)
	}
	if h.Invulnerable != 0 {
		t.Fatalf("invulnerable = %v, want 0", h.Invulnerable)
	}
}
