package system

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/scene"
)

const (
	DefaultCameraRetryInterval  = 0.1
	DefaultCameraMaxAttempts    = 30
	DefaultCameraRepairInterval = 0.5
)

type CameraConfig struct {
	RetryInterval  float64
	MaxAttempts    int
	RepairInterval float64
}

func (c CameraConfig) withDefaults() CameraConfig {
	if c.RetryInterval <= 0 {
		c.RetryInterval = DefaultCameraRetryInterval
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultCameraMaxAttempts
	}
	if c.RepairInterval <= 0 {
		c.RepairInterval = DefaultCameraRepairInterval
	}
	return c
}

// CameraFollowSystem keeps the camera on the player. After every scene load
// it searches for the player a bounded number of times; once bound it checks
// periodically that the target is still the live player. Its timers run on
// real time so a paused game still settles the camera.
type CameraFollowSystem struct {
	log   *log.Logger
	clock *clock.Clock
	cfg   CameraConfig

	target     ecs.Entity
	bound      bool
	searching  bool
	attempts   int
	nextRetry  float64
	nextRepair float64

	viewW, viewH float64
	rng          *rand.Rand
}

func NewCameraFollowSystem(logger *log.Logger, c *clock.Clock, cfg CameraConfig) *CameraFollowSystem {
	return &CameraFollowSystem{
		log:   logger,
		clock: c,
		cfg:   cfg.withDefaults(),
		viewW: 640,
		viewH: 360,
		rng:   rand.New(rand.NewSource(1)),
	}
}

// SetViewport sets the visible area in screen pixels.
func (cs *CameraFollowSystem) SetViewport(width, height float64) {
	if width > 0 && height > 0 {
		cs.viewW, cs.viewH = width, height
	}
}

// Target returns the followed entity, if any.
func (cs *CameraFollowSystem) Target() (ecs.Entity, bool) {
	return cs.target, cs.bound
}

// Searching reports whether a post-load search is running.
func (cs *CameraFollowSystem) Searching() bool { return cs.searching }

// HandleSceneLoaded drops the old target and starts a fresh search.
func (cs *CameraFollowSystem) HandleSceneLoaded(w *ecs.World, id scene.SceneID) {
	cs.unbind(w)
	cs.searching = true
	cs.attempts = 0
	cs.nextRetry = 0
	cs.log.Debug("camera searching for player", "scene", id)
	cs.search(w)
}

// Bind follows e immediately and snaps the camera onto it.
func (cs *CameraFollowSystem) Bind(w *ecs.World, e ecs.Entity) {
	if !ecs.IsAlive(w, e) || !ecs.Has(w, e, component.TransformComponent.Kind()) {
		cs.log.Warn("camera bind ignored", "entity", e)
		return
	}
	cs.target = e
	cs.bound = true
	cs.searching = false
	cs.nextRepair = cs.clock.RealNow() + cs.cfg.RepairInterval
	cs.snap(w)
}

func (cs *CameraFollowSystem) unbind(w *ecs.World) {
	cs.target = 0
	cs.bound = false
	if cam, ok := cs.camera(w); ok {
		cam.Target = 0
	}
}

func (cs *CameraFollowSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := cs.clock.RealNow()

	if cs.searching && now >= cs.nextRetry {
		cs.search(w)
	}
	if cs.bound && now >= cs.nextRepair {
		cs.repair(w)
	}

	cs.follow(w)
	cs.shake(w)
}

func (cs *CameraFollowSystem) search(w *ecs.World) {
	if player, ok := scene.FindPlayer(w); ok {
		cs.Bind(w, player)
		return
	}
	cs.attempts++
	if cs.attempts >= cs.cfg.MaxAttempts {
		cs.searching = false
		cs.log.Warn("camera gave up looking for player", "attempts", cs.attempts)
		return
	}
	cs.nextRetry = cs.clock.RealNow() + cs.cfg.RetryInterval
}

func (cs *CameraFollowSystem) repair(w *ecs.World) {
	cs.nextRepair = cs.clock.RealNow() + cs.cfg.RepairInterval
	player, ok := scene.FindPlayer(w)
	if ok && player == cs.target && ecs.IsAlive(w, cs.target) {
		return
	}
	if ok {
		cs.log.Debug("camera re-binding", "old", cs.target, "new", player)
		cs.Bind(w, player)
		return
	}
	cs.unbind(w)
	cs.searching = true
	cs.attempts = 0
	cs.nextRetry = 0
}

func (cs *CameraFollowSystem) camera(w *ecs.World) (*component.Camera, bool) {
	e, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.CameraComponent.Kind())
}

func (cs *CameraFollowSystem) cameraTransform(w *ecs.World) (*component.Camera, *component.Transform, bool) {
	e, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return nil, nil, false
	}
	cam, ok := ecs.Get(w, e, component.CameraComponent.Kind())
	if !ok {
		return nil, nil, false
	}
	tf, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil, nil, false
	}
	return cam, tf, true
}

func (cs *CameraFollowSystem) snap(w *ecs.World) {
	cam, tf, ok := cs.cameraTransform(w)
	if !ok {
		return
	}
	target, ok := ecs.Get(w, cs.target, component.TransformComponent.Kind())
	if !ok {
		return
	}
	cam.Target = uint64(cs.target)
	tf.X, tf.Y = cs.clamp(w, cam, target.X, target.Y)
}

func (cs *CameraFollowSystem) follow(w *ecs.World) {
	if !cs.bound {
		return
	}
	cam, tf, ok := cs.cameraTransform(w)
	if !ok {
		return
	}
	target, ok := ecs.Get(w, cs.target, component.TransformComponent.Kind())
	if !ok {
		return
	}
	cam.Target = uint64(cs.target)
	gx, gy := cs.clamp(w, cam, target.X, target.Y)

	smooth := cam.Smoothness
	if smooth <= 0 || smooth >= 1 {
		tf.X, tf.Y = gx, gy
		return
	}
	// Frame-rate independent easing normalized to 60 ticks per second.
	k := 1 - math.Pow(1-smooth, cs.clock.RealDelta()*60)
	tf.X += (gx - tf.X) * k
	tf.Y += (gy - tf.Y) * k
}

// clamp keeps the view inside the scene bounds. A scene smaller than the view
// is centered.
func (cs *CameraFollowSystem) clamp(w *ecs.World, cam *component.Camera, x, y float64) (float64, float64) {
	e, ok := ecs.First(w, component.SceneInfoComponent.Kind())
	if !ok {
		return x, y
	}
	info, _ := ecs.Get(w, e, component.SceneInfoComponent.Kind())
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return clampAxis(x, cs.viewW/zoom, info.Width), clampAxis(y, cs.viewH/zoom, info.Height)
}

func clampAxis(v, view, size float64) float64 {
	if size <= 0 {
		return v
	}
	if size <= view {
		return size / 2
	}
	return math.Max(view/2, math.Min(size-view/2, v))
}

func (cs *CameraFollowSystem) shake(w *ecs.World) {
	cam, ok := cs.camera(w)
	if !ok {
		return
	}
	for _, s := range ecs.ReadTyped[ecs.ShakeEvent](w, ecs.EventCameraShake) {
		if s.Magnitude > cam.ShakeMagnitude {
			cam.ShakeMagnitude = s.Magnitude
		}
		if s.Seconds > cam.ShakeRemaining {
			cam.ShakeRemaining = s.Seconds
		}
	}
	if cam.ShakeRemaining <= 0 {
		cam.ShakeMagnitude = 0
		cam.OffsetX, cam.OffsetY = 0, 0
		return
	}
	cam.ShakeRemaining -= cs.clock.Delta()
	cam.OffsetX = (cs.rng.Float64()*2 - 1) * cam.ShakeMagnitude
	cam.OffsetY = (cs.rng.Float64()*2 - 1) * cam.ShakeMagnitude
}
