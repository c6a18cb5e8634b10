package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

const (
	collisionTypeActor cp.CollisionType = iota + 1
	collisionTypeWall
	collisionTypeSensor
)

// PhysicsSystem mirrors colliders into a zero-gravity Chipmunk space, pushes
// velocities into bodies, steps the space on game time and turns sensor
// contacts into trigger events.
type PhysicsSystem struct {
	clock         *clock.Clock
	space         *cp.Space
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	contacts []contact
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
	sensor bool
}

type contact struct {
	a, b  *cp.Shape
	enter bool
}

func NewPhysicsSystem(c *clock.Clock) *PhysicsSystem {
	ps := &PhysicsSystem{clock: c}
	ps.newSpace()
	return ps
}

func (ps *PhysicsSystem) newSpace() {
	ps.space = cp.NewSpace()
	ps.space.Iterations = 10
	ps.space.SetGravity(cp.Vector{})
	ps.handlersReady = false
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.shapes = make(map[*cp.Shape]ecs.Entity)
	ps.contacts = nil
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Reset drops the space and detaches every body from w. Called when a scene
// is swapped; surviving entities get fresh bodies on the next Update.
func (ps *PhysicsSystem) Reset(w *ecs.World) {
	if ps == nil {
		return
	}
	ps.newSpace()
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, body *component.PhysicsBody) {
		body.Body = nil
		body.Shape = nil
	})
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.pushVelocities(w)

	if dt := ps.clock.Delta(); dt > 0 {
		ps.space.Step(dt)
	}

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	record := func(enter bool) func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		return func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
			sys, ok := userData.(*PhysicsSystem)
			if !ok || sys == nil {
				return
			}
			a, b := arb.Shapes()
			sys.contacts = append(sys.contacts, contact{a: a, b: b, enter: enter})
		}
	}
	begin := record(true)
	separate := record(false)

	for _, other := range []cp.CollisionType{collisionTypeActor, collisionTypeWall} {
		h := ps.space.NewCollisionHandler(collisionTypeSensor, other)
		h.UserData = ps
		h.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			begin(arb, space, userData)
			return true
		}
		h.SeparateFunc = separate
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach3(w, component.PhysicsBodyComponent.Kind(), component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, col *component.Collider, tf *component.Transform) {
		if info, ok := ps.entities[e]; ok {
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
			return
		}
		info := ps.createBodyInfo(tf, col)
		ps.entities[e] = info
		ps.shapes[info.shape] = e
		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
	})
}

func (ps *PhysicsSystem) createBodyInfo(tf *component.Transform, col *component.Collider) *bodyInfo {
	width, height, radius := col.Width, col.Height, col.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		width, height = 32, 32
	}

	info := &bodyInfo{static: col.Static, sensor: col.Sensor}

	var shape *cp.Shape
	if col.Static {
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: tf.X, Y: tf.Y})
		} else {
			bb := cp.BB{L: tf.X - width/2, B: tf.Y - height/2, R: tf.X + width/2, T: tf.Y + height/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		info.body = ps.space.StaticBody
	} else {
		// Infinite moment: top-down actors never spin.
		body := cp.NewBody(1, cp.INFINITY)
		body.SetPosition(cp.Vector{X: tf.X, Y: tf.Y})
		ps.space.AddBody(body)
		if radius > 0 {
			shape = cp.NewCircle(body, radius, cp.Vector{})
		} else {
			shape = cp.NewBox(body, width, height, 0)
		}
		info.body = body
	}

	shape.SetFriction(0)
	shape.SetElasticity(0)
	switch {
	case col.Sensor:
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypeSensor)
	case col.Layer == component.LayerWall:
		shape.SetCollisionType(collisionTypeWall)
	default:
		shape.SetCollisionType(collisionTypeActor)
	}
	ps.space.AddShape(shape)
	info.shape = shape
	return info
}

func (ps *PhysicsSystem) pushVelocities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, v *component.Velocity) {
		info, ok := ps.entities[e]
		if !ok || info.static {
			return
		}
		info.body.SetVelocityVector(cp.Vector{X: v.X, Y: v.Y})
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PhysicsBody, tf *component.Transform) {
		info, ok := ps.entities[e]
		if !ok || info.static {
			return
		}
		pos := info.body.Position()
		tf.X = pos.X
		tf.Y = pos.Y
	})
}

// flushContacts turns contacts recorded during the step into trigger events.
// The sensor side is always reported as the trigger.
func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	contacts := ps.contacts
	ps.contacts = nil
	for _, c := range contacts {
		ea, okA := ps.shapes[c.a]
		eb, okB := ps.shapes[c.b]
		if !okA || !okB || !ecs.IsAlive(w, ea) || !ecs.IsAlive(w, eb) {
			continue
		}
		trigger, other := ea, eb
		if info := ps.entities[ea]; info == nil || !info.sensor {
			trigger, other = eb, ea
		}
		evt := ecs.EventTriggerEnter
		if !c.enter {
			evt = ecs.EventTriggerExit
		}
		w.Events().Push(ecs.Event{Type: evt, Data: ecs.TriggerEvent{Trigger: trigger, Other: other}})
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.shapes, info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
