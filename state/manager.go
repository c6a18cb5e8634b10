// Package state owns the top-level game state machine and the UI panel
// visibility mirrored from it.
package state

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/scene"
)

// ErrNotGameOver is returned by Restart outside GameOver.
var ErrNotGameOver = errors.New("state: restart outside game over")

type State int

const (
	Playing State = iota
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Listener is told about every state change.
type Listener func(prev, next State)

// SceneReloader starts a scene load behind the transition fade.
type SceneReloader interface {
	RequestLoad(id scene.SceneID, onComplete func(), mode component.LoadMode) error
}

// ArrivalTracker knows where the player last arrived and accepts the next
// arrival point.
type ArrivalTracker interface {
	SetPendingDestination(id string)
	LastDestination() string
}

// CurrentScene reports the active scene.
type CurrentScene interface {
	Current() scene.SceneID
}

// Manager is the game state machine. Playing runs the clock at full speed;
// Paused and GameOver freeze it. GameOver is left only through Restart.
type Manager struct {
	log       *log.Logger
	clock     *clock.Clock
	reloader  SceneReloader
	arrivals  ArrivalTracker
	current   CurrentScene
	state     State
	listeners []Listener
}

func NewManager(logger *log.Logger, c *clock.Clock, reloader SceneReloader, arrivals ArrivalTracker, current CurrentScene) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Manager{
		log:      logger,
		clock:    c,
		reloader: reloader,
		arrivals: arrivals,
		current:  current,
		state:    Playing,
	}
	c.SetTimeScale(1)
	return m
}

func (m *Manager) State() State { return m.state }

// OnStateChange registers fn. Listeners run in registration order.
func (m *Manager) OnStateChange(fn Listener) {
	if fn != nil {
		m.listeners = append(m.listeners, fn)
	}
}

func (m *Manager) set(next State) {
	prev := m.state
	if prev == next {
		return
	}
	m.state = next
	if next == Playing {
		m.clock.SetTimeScale(1)
	} else {
		m.clock.SetTimeScale(0)
	}
	m.log.Info("game state", "from", prev, "to", next)
	for _, fn := range m.listeners {
		fn(prev, next)
	}
}

// TogglePause flips between Playing and Paused. Ignored in GameOver.
func (m *Manager) TogglePause() {
	switch m.state {
	case Playing:
		m.set(Paused)
	case Paused:
		m.set(Playing)
	}
}

// HandlePlayerDeath enters GameOver.
func (m *Manager) HandlePlayerDeath() {
	m.set(GameOver)
}

// Update enters GameOver when the player died during the last frame.
func (m *Manager) Update(w *ecs.World) {
	if len(w.Events().Read(ecs.EventPlayerDied)) > 0 {
		m.HandlePlayerDeath()
	}
}

// Restart leaves GameOver: the player is healed to full and the current
// scene is reloaded with the player returned to their last arrival point.
func (m *Manager) Restart(w *ecs.World) error {
	if m.state != GameOver {
		return ErrNotGameOver
	}

	if player, ok := scene.FindPlayer(w); ok {
		if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok {
			h.Reset()
		}
		ecs.Remove(w, player, component.KnockbackComponent.Kind())
		if v, ok := ecs.Get(w, player, component.VelocityComponent.Kind()); ok {
			v.X, v.Y = 0, 0
		}
	}
	m.set(Playing)

	if m.current == nil || m.reloader == nil {
		m.log.Warn("restart without a scene reloader")
		return nil
	}
	id := m.current.Current()
	if id == "" {
		m.log.Warn("restart with no active scene")
		return nil
	}
	if m.arrivals != nil {
		if last := m.arrivals.LastDestination(); last != "" {
			m.arrivals.SetPendingDestination(last)
		}
	}
	if err := m.reloader.RequestLoad(id, nil, component.LoadSync); err != nil {
		return fmt.Errorf("state: reload %s: %w", id, err)
	}
	return nil
}
