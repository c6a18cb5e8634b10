package system

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/scene"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

type fakeRequester struct {
	requests []scene.SceneID
	err      error
}

func (f *fakeRequester) RequestLoad(id scene.SceneID, _ func(), _ component.LoadMode) error {
	if f.err != nil {
		return f.err
	}
	f.requests = append(f.requests, id)
	return nil
}

type fakeDestinations struct {
	pending []string
}

func (f *fakeDestinations) SetPendingDestination(id string) {
	f.pending = append(f.pending, id)
}

func newPortalEntity(t *testing.T, w *ecs.World, portal component.Portal) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PortalComponent.Kind(), &portal); err != nil {
		t.Fatalf("add portal: %v", err)
	}
	if err := ecs.Add(w, e, component.PortalCooldownComponent.Kind(), &component.PortalCooldown{}); err != nil {
		t.Fatalf("add portal cooldown: %v", err)
	}
	return e
}

func newTaggedPlayer(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		t.Fatalf("add player tag: %v", err)
	}
	if err := ecs.Add(w, e, component.TagComponent.Kind(), &component.Tag{Name: "Player"}); err != nil {
		t.Fatalf("add tag: %v", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	return e
}

func touch(w *ecs.World, trigger, other ecs.Entity) {
	w.Events().Push(ecs.Event{Type: ecs.EventTriggerEnter, Data: ecs.TriggerEvent{Trigger: trigger, Other: other}})
}

func TestPortalTwoTriggersWithinCooldownRequestOnce(t *testing.T) {
	w := ecs.NewWorld()
	c := clock.New()
	cd := clock.NewCooldown(c)
	req := &fakeRequester{}
	dest := &fakeDestinations{}
	sys := NewPortalSystem(quietLogger(), c, cd, 3, req, dest)

	a := newPortalEntity(t, w, component.Portal{TargetScene: "Forest", DestinationID: "ForestFromHub", TagFilter: "player"})
	b := newPortalEntity(t, w, component.Portal{TargetScene: "cave", DestinationID: "CaveMouth", TagFilter: "player"})
	player := newTaggedPlayer(t, w)

	touch(w, a, player)
	w.BeginFrame()
	sys.Update(w)

	c.Tick(0.5)
	touch(w, b, player)
	touch(w, a, player)
	w.BeginFrame()
	sys.Update(w)

	if len(req.requests) != 1 || req.requests[0] != "forest" {
		t.Fatalf("requests = %v, want [forest]", req.requests)
	}
	if len(dest.pending) != 1 || dest.pending[0] != "ForestFromHub" {
		t.Fatalf("pending destinations = %v", dest.pending)
	}
	if !cd.Active() {
		t.Fatal("global cooldown not armed")
	}

	c.Tick(3)
	touch(w, b, player)
	w.BeginFrame()
	sys.Update(w)
	if len(req.requests) != 2 || req.requests[1] != "cave" {
		t.Fatalf("requests after cooldown = %v", req.requests)
	}
}

func TestPortalFilters(t *testing.T) {
	tests := []struct {
		name      string
		tagFilter string
		otherTag  string
		cooldown  bool
		until     float64
		reqErr    error
		wantReq   int
	}{
		{name: "matching tag", tagFilter: "Player", otherTag: "player", wantReq: 1},
		{name: "wrong tag", tagFilter: "Player", otherTag: "crate", wantReq: 0},
		{name: "empty filter accepts anything", tagFilter: "", otherTag: "crate", wantReq: 1},
		{name: "global cooldown", tagFilter: "Player", otherTag: "player", cooldown: true, wantReq: 0},
		{name: "instance cooldown", tagFilter: "Player", otherTag: "player", until: 10, wantReq: 0},
		{name: "rejected request", tagFilter: "Player", otherTag: "player", reqErr: scene.ErrTransitionInProgress, wantReq: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			c := clock.New()
			cd := clock.NewCooldown(c)
			if tt.cooldown {
				cd.Arm(5)
			}
			req := &fakeRequester{err: tt.reqErr}
			dest := &fakeDestinations{}
			sys := NewPortalSystem(quietLogger(), c, cd, 3, req, dest)

			p := newPortalEntity(t, w, component.Portal{TargetScene: "hub", DestinationID: "HubWorldEnter", TagFilter: tt.tagFilter, RetriggerSeconds: 1})
			pc, _ := ecs.Get(w, p, component.PortalCooldownComponent.Kind())
			pc.Until = tt.until

			other := ecs.CreateEntity(w)
			_ = ecs.Add(w, other, component.TagComponent.Kind(), &component.Tag{Name: tt.otherTag})

			touch(w, p, other)
			w.BeginFrame()
			sys.Update(w)

			if len(req.requests) != tt.wantReq {
				t.Fatalf("requests = %d, want %d", len(req.requests), tt.wantReq)
			}
			if tt.wantReq == 0 {
				if len(dest.pending) != 0 {
					t.Fatalf("pending destination set on a suppressed trigger: %v", dest.pending)
				}
				if cd.Active() != tt.cooldown {
					t.Fatal("suppressed trigger armed the global cooldown")
				}
				return
			}
			if pc.Until != c.Now()+1 {
				t.Fatalf("instance cooldown until %v, want %v", pc.Until, c.Now()+1)
			}
		})
	}
}

func TestPortalWithoutDestinationLeavesPendingAlone(t *testing.T) {
	w := ecs.NewWorld()
	c := clock.New()
	cd := clock.NewCooldown(c)
	req := &fakeRequester{}
	dest := &fakeDestinations{}
	sys := NewPortalSystem(quietLogger(), c, cd, 3, req, dest)

	p := newPortalEntity(t, w, component.Portal{TargetScene: "forest", RetriggerSeconds: 1})
	player := newTaggedPlayer(t, w)

	touch(w, p, player)
	w.BeginFrame()
	sys.Update(w)

	if len(req.requests) != 1 || req.requests[0] != "forest" {
		t.Fatalf("requests = %v, want [forest]", req.requests)
	}
	if len(dest.pending) != 0 {
		t.Fatalf("pending destinations = %q, want none", dest.pending)
	}
	if !cd.Active() {
		t.Fatal("global cooldown not armed")
	}
}
