package scene

import (
	"fmt"
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/ecs/entity"
)

const (
	DefaultPlacementThreshold = 0.5
	DefaultSpawnCooldown      = 1.0
)

// SpawnerConfig tunes arrival.
type SpawnerConfig struct {
	// PlacementThreshold is the largest distance between the player and the
	// resolved point that still counts as placed.
	PlacementThreshold float64
	// CooldownSeconds arms the global portal cooldown after a placement.
	CooldownSeconds float64
}

// PlacedFunc is notified after the player is placed at a destination.
type PlacedFunc func(w *ecs.World, player ecs.Entity)

// Spawner owns the pending destination and places the player when a scene
// has loaded.
type Spawner struct {
	log      *log.Logger
	cooldown *clock.Cooldown
	cfg      SpawnerConfig

	// pending holds at most one destination id. mu makes replace atomic.
	mu      sync.Mutex
	pending chan string

	onPlaced []PlacedFunc
	last     string

	spawnPlayer func(w *ecs.World) (ecs.Entity, error)
}

func NewSpawner(logger *log.Logger, cooldown *clock.Cooldown, cfg SpawnerConfig) *Spawner {
	if cfg.PlacementThreshold <= 0 {
		cfg.PlacementThreshold = DefaultPlacementThreshold
	}
	if cfg.CooldownSeconds <= 0 {
		cfg.CooldownSeconds = DefaultSpawnCooldown
	}
	return &Spawner{
		log:         orDiscard(logger),
		cooldown:    cooldown,
		cfg:         cfg,
		pending:     make(chan string, 1),
		spawnPlayer: entity.NewPlayer,
	}
}

// SetPendingDestination records where the player should arrive after the next
// load. A newer id replaces an unconsumed older one.
func (s *Spawner) SetPendingDestination(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case old := <-s.pending:
		if old != id {
			s.log.Debug("pending destination replaced", "old", old, "new", id)
		}
	default:
	}
	s.pending <- id
}

// PendingDestination peeks at the pending id without consuming it.
func (s *Spawner) PendingDestination() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case id := <-s.pending:
		s.pending <- id
		return id, true
	default:
		return "", false
	}
}

func (s *Spawner) takePending() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case id := <-s.pending:
		return id, true
	default:
		return "", false
	}
}

// OnPlaced registers fn to run after each successful placement.
func (s *Spawner) OnPlaced(fn PlacedFunc) {
	if fn != nil {
		s.onPlaced = append(s.onPlaced, fn)
	}
}

// LastDestination is the id of the most recent successful arrival.
func (s *Spawner) LastDestination() string { return s.last }

// EnsurePlayer locates the player, instantiating the player prefab if there
// is none.
func (s *Spawner) EnsurePlayer(w *ecs.World) (ecs.Entity, error) {
	if p, ok := FindPlayer(w); ok {
		return p, nil
	}
	p, err := s.spawnPlayer(w)
	if err != nil {
		return 0, fmt.Errorf("scene: spawn player: %w", err)
	}
	s.log.Info("player instantiated", "entity", p)
	return p, nil
}

// HandleSceneLoaded is the arrival stage run by the sequencer after a scene
// activates. With no pending destination it does nothing. Otherwise the
// pending id is consumed, resolved and the player placed there. It reports
// whether the player was placed.
func (s *Spawner) HandleSceneLoaded(w *ecs.World, reg *Registry) bool {
	id, ok := s.takePending()
	if !ok {
		return false
	}
	return s.arrive(w, reg, id)
}

// ArriveAtDefault places the player at the alphabetically first destination
// id. Used when a scene is entered without a destination.
func (s *Spawner) ArriveAtDefault(w *ecs.World, reg *Registry) bool {
	ids := reg.KnownIDs()
	if len(ids) == 0 {
		s.log.Warn("scene has no destinations", "names", reg.KnownNames())
		return false
	}
	return s.arrive(w, reg, ids[0])
}

func (s *Spawner) arrive(w *ecs.World, reg *Registry, id string) bool {
	player, err := s.EnsurePlayer(w)
	if err != nil {
		s.log.Error("arrival skipped", "destination", id, "err", err)
		return false
	}

	placement, ok := reg.Resolve(id)
	if !ok {
		s.log.Warn("destination not found",
			"destination", id,
			"known_ids", reg.KnownIDs(),
			"known_names", reg.KnownNames())
		return false
	}

	if !s.place(w, player, placement) {
		return false
	}

	// Verify the player ended up on the point; if not, retry once through
	// the name index of the same key.
	if d := s.distance(w, player, placement); d > s.cfg.PlacementThreshold {
		s.log.Warn("placement drifted, retrying", "destination", id, "distance", d)
		if alt, ok := reg.ResolveByName(id); ok {
			placement = alt
		}
		if !s.place(w, player, placement) {
			return false
		}
	}

	if placement.Match != MatchExact {
		s.log.Debug("destination matched loosely", "destination", id, "match", placement.Match)
	}

	s.last = id
	s.cooldown.Arm(s.cfg.CooldownSeconds)
	s.log.Info("player placed", "destination", id, "x", placement.X, "y", placement.Y)

	for _, fn := range s.onPlaced {
		s.notify(fn, w, player)
	}
	return true
}

func (s *Spawner) place(w *ecs.World, player ecs.Entity, p Placement) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("placement panicked", "destination", p.Key, "panic", r)
			ok = false
		}
	}()
	if err := entity.SetEntityTransform(w, player, p.X, p.Y, p.Rotation); err != nil {
		s.log.Error("placement failed", "destination", p.Key, "err", err)
		return false
	}
	return true
}

func (s *Spawner) notify(fn PlacedFunc, w *ecs.World, player ecs.Entity) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("placement listener panicked", "panic", r)
		}
	}()
	fn(w, player)
}

func (s *Spawner) distance(w *ecs.World, player ecs.Entity, p Placement) float64 {
	tf, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return math.Inf(1)
	}
	return math.Hypot(tf.X-p.X, tf.Y-p.Y)
}
