package ecs

// EventType names an event kind.
type EventType string

const (
	// EventTriggerEnter fires when a body first overlaps a sensor shape.
	EventTriggerEnter EventType = "trigger_enter"
	// EventTriggerExit fires when that overlap ends.
	EventTriggerExit EventType = "trigger_exit"
	// EventDamage fires when a hit lands on a hurtable entity.
	EventDamage EventType = "damage"
	// EventDeath fires once when an entity's health reaches zero.
	EventDeath EventType = "death"
	// EventPlayerDied fires when the player's health reaches zero.
	EventPlayerDied EventType = "player_died"
	// EventCameraShake asks the camera to shake.
	EventCameraShake EventType = "camera_shake"
	// EventChestOpened fires when a chest is opened.
	EventChestOpened EventType = "chest_opened"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// TriggerEvent is emitted by physics for sensor overlaps.
type TriggerEvent struct {
	Trigger Entity
	Other   Entity
}

// DamageEvent records a hit.
type DamageEvent struct {
	Target Entity
	Source Entity
	Amount int
}

// DeathEvent records an entity dying.
type DeathEvent struct {
	Entity Entity
	Player bool
}

// ShakeEvent asks for a camera shake of Magnitude pixels over Seconds.
type ShakeEvent struct {
	Magnitude float64
	Seconds   float64
}

// ChestEvent records a chest being opened.
type ChestEvent struct {
	Chest   Entity
	ChestID string
	Heal    int
	Coins   int
}

// EventQueue is double buffered: events pushed during a frame become
// readable on the next frame and are dropped after it.
type EventQueue struct {
	pending []Event
	current []Event
}

// Push adds an event for the next frame.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.pending = append(q.pending, evt)
}

// Read returns the current frame's events of type t.
func (q *EventQueue) Read(t EventType) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.current {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

// All returns every event readable this frame.
func (q *EventQueue) All() []Event {
	if q == nil {
		return nil
	}
	return q.current
}

// Clear drops readable and pending events. Used when a scene is swapped so
// events naming destroyed entities never surface.
func (q *EventQueue) Clear() {
	if q == nil {
		return
	}
	q.pending = nil
	q.current = nil
}

func (q *EventQueue) swap() {
	q.current = q.pending
	q.pending = nil
}

// ReadTyped returns the payloads of type t that decode as P.
func ReadTyped[P any](w *World, t EventType) []P {
	var out []P
	for _, evt := range w.Events().Read(t) {
		if p, ok := evt.Data.(P); ok {
			out = append(out, p)
		}
	}
	return out
}
