package state

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/scene"
)

type fakeReloader struct {
	requests []scene.SceneID
	err      error
}

func (f *fakeReloader) RequestLoad(id scene.SceneID, _ func(), _ component.LoadMode) error {
	if f.err != nil {
		return f.err
	}
	f.requests = append(f.requests, id)
	return nil
}

type fakeArrivals struct {
	last    string
	pending string
}

func (f *fakeArrivals) SetPendingDestination(id string) { f.pending = id }
func (f *fakeArrivals) LastDestination() string         { return f.last }

type fixedScene scene.SceneID

func (s fixedScene) Current() scene.SceneID { return scene.SceneID(s) }

func newManager(t *testing.T) (*Manager, *clock.Clock, *fakeReloader, *fakeArrivals) {
	t.Helper()
	c := clock.New()
	r := &fakeReloader{}
	a := &fakeArrivals{last: "ForestFromHub"}
	return NewManager(log.New(io.Discard), c, r, a, fixedScene("forest")), c, r, a
}

func newPlayer(t *testing.T, w *ecs.World, hp int) *component.Health {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		t.Fatal(err)
	}
	h := &component.Health{Current: hp, Max: 10}
	if err := ecs.Add(w, e, component.HealthComponent.Kind(), h); err != nil {
		t.Fatal(err)
	}
	return h
}

func TestPlayerDeathThenRestart(t *testing.T) {
	m, c, reloader, arrivals := newManager(t)
	ui := NewUIManager(m)
	w := ecs.NewWorld()
	h := newPlayer(t, w, 0)
	h.Dead = true

	var changes []string
	m.OnStateChange(func(prev, next State) { changes = append(changes, prev.String()+">"+next.String()) })

	w.Events().Push(ecs.Event{Type: ecs.EventPlayerDied, Data: ecs.DeathEvent{Player: true}})
	w.BeginFrame()
	m.Update(w)

	if m.State() != GameOver || c.TimeScale() != 0 {
		t.Fatalf("state = %s, scale = %v; want game_over, 0", m.State(), c.TimeScale())
	}
	if !ui.Visible(PanelGameOver) || ui.Visible(PanelHUD) {
		t.Fatal("game over panel not shown")
	}

	m.TogglePause()
	if m.State() != GameOver {
		t.Fatalf("pause escaped game over: %s", m.State())
	}

	if err := m.Restart(w); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if m.State() != Playing || c.TimeScale() != 1 {
		t.Fatalf("state = %s, scale = %v; want playing, 1", m.State(), c.TimeScale())
	}
	if h.Current != h.Max || h.Dead {
		t.Fatalf("health = %+v, want full", h)
	}
	if len(reloader.requests) != 1 || reloader.requests[0] != "forest" {
		t.Fatalf("reload requests = %v", reloader.requests)
	}
	if arrivals.pending != "ForestFromHub" {
		t.Fatalf("pending destination = %q", arrivals.pending)
	}
	if !ui.Visible(PanelHUD) || ui.Visible(PanelGameOver) {
		t.Fatal("HUD not restored")
	}

	want := []string{"playing>game_over", "game_over>playing"}
	if len(changes) != len(want) || changes[0] != want[0] || changes[1] != want[1] {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
}

func TestTogglePause(t *testing.T) {
	m, c, _, _ := newManager(t)
	ui := NewUIManager(m)

	tests := []struct {
		want      State
		wantScale float64
		pause     bool
	}{
		{Paused, 0, true},
		{Playing, 1, false},
		{Paused, 0, true},
	}
	for _, tt := range tests {
		m.TogglePause()
		if m.State() != tt.want || c.TimeScale() != tt.wantScale {
			t.Fatalf("state = %s scale = %v, want %s %v", m.State(), c.TimeScale(), tt.want, tt.wantScale)
		}
		if ui.Visible(PanelPause) != tt.pause || !ui.Visible(PanelHUD) {
			t.Fatalf("pause panel visible = %v in %s", ui.Visible(PanelPause), m.State())
		}
	}
}

func TestRestartOutsideGameOver(t *testing.T) {
	m, _, reloader, _ := newManager(t)
	if err := m.Restart(ecs.NewWorld()); !errors.Is(err, ErrNotGameOver) {
		t.Fatalf("Restart err = %v, want ErrNotGameOver", err)
	}
	if len(reloader.requests) != 0 {
		t.Fatal("restart outside game over reloaded the scene")
	}
}

func TestRestartReloadRejected(t *testing.T) {
	m, _, reloader, _ := newManager(t)
	reloader.err = scene.ErrTransitionInProgress
	m.HandlePlayerDeath()

	err := m.Restart(ecs.NewWorld())
	if !errors.Is(err, scene.ErrTransitionInProgress) {
		t.Fatalf("Restart err = %v", err)
	}
	if m.State() != Playing {
		t.Fatalf("state = %s after a rejected reload", m.State())
	}
}
