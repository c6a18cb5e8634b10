package system

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/ecs/entity"
)

// AISystem drives every AI entity through its tengo behavior script. Scripts
// are compiled once per path and cloned per entity.
type AISystem struct {
	log   *log.Logger
	clock *clock.Clock

	scripts  map[string]*aiScript
	runtimes map[ecs.Entity]*aiScriptRuntime
	failed   map[string]bool
}

func NewAISystem(logger *log.Logger, c *clock.Clock) *AISystem {
	return &AISystem{
		log:      logger,
		clock:    c,
		scripts:  map[string]*aiScript{},
		runtimes: map[ecs.Entity]*aiScriptRuntime{},
		failed:   map[string]bool{},
	}
}

// InvalidateScripts drops compiled scripts and running instances so edited
// scripts take effect on the next tick.
func (s *AISystem) InvalidateScripts() {
	s.scripts = map[string]*aiScript{}
	s.runtimes = map[ecs.Entity]*aiScriptRuntime{}
	s.failed = map[string]bool{}
}

// aiContext is what one entity's engine functions operate on for a tick.
type aiContext struct {
	w      *ecs.World
	e      ecs.Entity
	ai     *component.AI
	state  *component.AIState
	tf     *component.Transform
	vel    *component.Velocity
	player ecs.Entity
	hasPly bool
	px, py float64
	dt     float64
}

func (s *AISystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := s.clock.Delta()

	for e := range s.runtimes {
		if !ecs.IsAlive(w, e) {
			delete(s.runtimes, e)
		}
	}
	if dt <= 0 {
		return
	}

	ctx := aiContext{w: w, dt: dt}
	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); !ok || !h.Dead {
			if ptf, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
				ctx.player, ctx.hasPly = player, true
				ctx.px, ctx.py = ptf.X, ptf.Y
			}
		}
	}

	ecs.ForEach3(w, component.AIComponent.Kind(), component.AIStateComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ai *component.AI, state *component.AIState, tf *component.Transform) {
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			return
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Dead {
			vel.X, vel.Y = 0, 0
			return
		}

		rt := s.runtime(e, ai.Script)
		if rt == nil {
			return
		}

		state.Timer += dt
		if state.Cooldown > 0 {
			state.Cooldown -= dt
		}

		c := ctx
		c.e, c.ai, c.state, c.tf, c.vel = e, ai, state, tf, vel
		next, err := rt.step(state.Current, s.engine(&c, rt))
		if err != nil {
			s.log.Warn("ai script error", "entity", e, "script", ai.Script, "err", err)
		}
		if next != state.Current {
			if state.Current != "" {
				s.log.Debug("ai transition", "entity", e, "from", state.Current, "to", next)
			}
			state.Current = next
			state.Timer = 0
		}
	})
}

func (s *AISystem) runtime(e ecs.Entity, path string) *aiScriptRuntime {
	if rt, ok := s.runtimes[e]; ok && rt.scriptPath == path {
		return rt
	}
	if s.failed[path] {
		return nil
	}
	script, ok := s.scripts[path]
	if !ok {
		var err error
		script, err = compileAIScript(path)
		if err != nil {
			s.failed[path] = true
			s.log.Error("ai script unavailable", "script", path, "err", err)
			return nil
		}
		s.scripts[path] = script
	}
	rt := script.instance(path)
	s.runtimes[e] = rt
	return rt
}

func (s *AISystem) engine(c *aiContext, rt *aiScriptRuntime) *tengo.ImmutableMap {
	fn := func(name string, f func(args ...tengo.Object) tengo.Object) *tengo.UserFunction {
		return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			return f(args...), nil
		}}
	}
	point := func(x, y float64) tengo.Object {
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}
	}

	values := map[string]tengo.Object{
		"transition": fn("transition", func(args ...tengo.Object) tengo.Object {
			if len(args) < 1 {
				return tengo.FalseValue
			}
			name := objectAsString(args[0])
			if name == "" {
				return tengo.FalseValue
			}
			rt.pending = name
			return tengo.TrueValue
		}),
		"get_position": fn("get_position", func(...tengo.Object) tengo.Object {
			return point(c.tf.X, c.tf.Y)
		}),
		"get_player_position": fn("get_player_position", func(...tengo.Object) tengo.Object {
			return point(c.px, c.py)
		}),
		"has_player": fn("has_player", func(...tengo.Object) tengo.Object {
			return boolObject(c.hasPly)
		}),
		"distance_to_player": fn("distance_to_player", func(...tengo.Object) tengo.Object {
			if !c.hasPly {
				return &tengo.Float{Value: math.Inf(1)}
			}
			return &tengo.Float{Value: math.Hypot(c.px-c.tf.X, c.py-c.tf.Y)}
		}),
		"move_toward_player": fn("move_toward_player", func(args ...tengo.Object) tengo.Object {
			c.move(1, scaleArg(args))
			return tengo.UndefinedValue
		}),
		"move_away_from_player": fn("move_away_from_player", func(args ...tengo.Object) tengo.Object {
			c.move(-1, scaleArg(args))
			return tengo.UndefinedValue
		}),
		"stop": fn("stop", func(...tengo.Object) tengo.Object {
			c.vel.X, c.vel.Y = 0, 0
			return tengo.UndefinedValue
		}),
		"attack": fn("attack", func(...tengo.Object) tengo.Object {
			return boolObject(s.attack(c))
		}),
		"shoot": fn("shoot", func(args ...tengo.Object) tengo.Object {
			count, spread := 1, 0.0
			if len(args) > 0 {
				count = objectAsInt(args[0], 1)
			}
			if len(args) > 1 {
				spread = objectAsFloat(args[1], 0)
			}
			return boolObject(s.shoot(c, count, spread))
		}),
		"cooldown_ready": fn("cooldown_ready", func(...tengo.Object) tengo.Object {
			return boolObject(c.state.Cooldown <= 0)
		}),
		"start_cooldown": fn("start_cooldown", func(...tengo.Object) tengo.Object {
			c.state.Cooldown = c.ai.AttackCooldown
			return tengo.UndefinedValue
		}),
		"config": fn("config", func(args ...tengo.Object) tengo.Object {
			if len(args) < 1 {
				return tengo.UndefinedValue
			}
			v, ok := c.config(objectAsString(args[0]))
			if !ok {
				return tengo.UndefinedValue
			}
			return &tengo.Float{Value: v}
		}),
		"pattern": fn("pattern", func(...tengo.Object) tengo.Object {
			return &tengo.String{Value: c.ai.Pattern}
		}),
		"timer": fn("timer", func(...tengo.Object) tengo.Object {
			return &tengo.Float{Value: c.state.Timer}
		}),
		"dt": fn("dt", func(...tengo.Object) tengo.Object {
			return &tengo.Float{Value: c.dt}
		}),
	}
	return &tengo.ImmutableMap{Value: values}
}

func scaleArg(args []tengo.Object) float64 {
	if len(args) == 0 {
		return 1
	}
	return objectAsFloat(args[0], 1)
}

// move sets velocity toward (sign 1) or away from (sign -1) the player.
func (c *aiContext) move(sign, scale float64) {
	if !c.hasPly {
		return
	}
	dx, dy := c.px-c.tf.X, c.py-c.tf.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		c.vel.X, c.vel.Y = 0, 0
		return
	}
	speed := c.ai.MoveSpeed * scale * sign
	c.vel.X = dx / l * speed
	c.vel.Y = dy / l * speed
}

func (c *aiContext) config(key string) (float64, bool) {
	switch key {
	case "move_speed":
		return c.ai.MoveSpeed, true
	case "follow_range":
		return c.ai.FollowRange, true
	case "attack_range":
		return c.ai.AttackRange, true
	case "preferred_range":
		return c.ai.PreferredRange, true
	case "attack_cooldown":
		return c.ai.AttackCooldown, true
	case "projectile_speed":
		return c.ai.ProjectileSpeed, true
	case "knockback":
		return c.ai.Knockback, true
	}
	return 0, false
}

func (c *aiContext) aim() (float64, float64, bool) {
	if !c.hasPly {
		return 0, 0, false
	}
	dx, dy := c.px-c.tf.X, c.py-c.tf.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 0, 0, false
	}
	return dx / l, dy / l, true
}

func (s *AISystem) attack(c *aiContext) bool {
	dx, dy, ok := c.aim()
	if !ok {
		return false
	}
	reach := c.ai.AttackRange/2 + c.ai.AttackSize/2
	if _, err := entity.NewHitbox(c.w, entity.HitboxParams{
		Owner:     c.e,
		Team:      component.TeamEnemy,
		X:         c.tf.X + dx*reach,
		Y:         c.tf.Y + dy*reach,
		Size:      c.ai.AttackSize,
		Damage:    c.ai.AttackDamage,
		Knockback: c.ai.Knockback,
	}); err != nil {
		s.log.Warn("ai attack", "entity", c.e, "err", err)
		return false
	}
	return true
}

// shoot fires count projectiles fanned spreadDeg degrees apart around the
// direction to the player.
func (s *AISystem) shoot(c *aiContext, count int, spreadDeg float64) bool {
	dx, dy, ok := c.aim()
	if !ok || count <= 0 {
		return false
	}
	base := math.Atan2(dy, dx)
	step := spreadDeg * math.Pi / 180
	first := base - step*float64(count-1)/2
	for i := 0; i < count; i++ {
		a := first + step*float64(i)
		vx, vy := math.Cos(a)*c.ai.ProjectileSpeed, math.Sin(a)*c.ai.ProjectileSpeed
		if _, err := entity.NewProjectile(c.w, entity.ProjectileParams{
			Owner:  c.e,
			Team:   component.TeamEnemy,
			X:      c.tf.X,
			Y:      c.tf.Y,
			VX:     vx,
			VY:     vy,
			Damage: c.ai.AttackDamage,
			TTL:    c.ai.ProjectileTTL,
		}); err != nil {
			s.log.Warn("ai shoot", "entity", c.e, "err", err)
			return false
		}
	}
	return true
}
