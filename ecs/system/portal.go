package system

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/scene"
)

const DefaultGlobalPortalCooldown = 3.0

// SceneRequester starts a scene transition.
type SceneRequester interface {
	RequestLoad(id scene.SceneID, onComplete func(), mode component.LoadMode) error
}

// DestinationSetter receives the arrival point for the next load.
type DestinationSetter interface {
	SetPendingDestination(id string)
}

// PortalSystem turns portal trigger contacts into scene load requests.
type PortalSystem struct {
	log            *log.Logger
	clock          *clock.Clock
	cooldown       *clock.Cooldown
	cooldownLength float64
	requester      SceneRequester
	destinations   DestinationSetter
}

func NewPortalSystem(logger *log.Logger, c *clock.Clock, cooldown *clock.Cooldown, cooldownSeconds float64, requester SceneRequester, destinations DestinationSetter) *PortalSystem {
	if cooldownSeconds <= 0 {
		cooldownSeconds = DefaultGlobalPortalCooldown
	}
	return &PortalSystem{
		log:            logger,
		clock:          c,
		cooldown:       cooldown,
		cooldownLength: cooldownSeconds,
		requester:      requester,
		destinations:   destinations,
	}
}

func (s *PortalSystem) Update(w *ecs.World) {
	for _, t := range ecs.ReadTyped[ecs.TriggerEvent](w, ecs.EventTriggerEnter) {
		portal, ok := ecs.Get(w, t.Trigger, component.PortalComponent.Kind())
		if !ok || !ecs.IsAlive(w, t.Other) {
			continue
		}
		s.trigger(w, t.Trigger, portal, t.Other)
	}
}

func (s *PortalSystem) trigger(w *ecs.World, e ecs.Entity, portal *component.Portal, other ecs.Entity) {
	if !s.accepts(w, portal, other) {
		return
	}
	if s.cooldown != nil && s.cooldown.Active() {
		s.log.Debug("portal suppressed by global cooldown", "portal", e, "remaining", s.cooldown.Remaining())
		return
	}
	pc, hasCooldown := ecs.Get(w, e, component.PortalCooldownComponent.Kind())
	if hasCooldown && s.clock.Now() < pc.Until {
		return
	}
	if s.requester == nil {
		s.log.Warn("portal has no scene requester", "portal", e)
		return
	}

	target := scene.NewSceneID(portal.TargetScene)
	if err := s.requester.RequestLoad(target, nil, portal.Mode); err != nil {
		s.log.Warn("portal request rejected", "portal", e, "scene", target, "err", err)
		return
	}
	// A portal without a destination keeps the player where the new scene
	// put it.
	if s.destinations != nil && portal.DestinationID != "" {
		s.destinations.SetPendingDestination(portal.DestinationID)
	}
	if s.cooldown != nil {
		s.cooldown.Arm(s.cooldownLength)
	}
	if hasCooldown {
		pc.Until = s.clock.Now() + portal.RetriggerSeconds
	}
	s.log.Info("portal triggered", "scene", target, "destination", portal.DestinationID)
}

// accepts reports whether other passes the portal's tag filter. An empty
// filter accepts anything.
func (s *PortalSystem) accepts(w *ecs.World, portal *component.Portal, other ecs.Entity) bool {
	if portal.TagFilter == "" {
		return true
	}
	tag, ok := ecs.Get(w, other, component.TagComponent.Kind())
	return ok && strings.EqualFold(tag.Name, portal.TagFilter)
}
