package clock

// Cooldown is a game-time deadline shared by every portal. While Active,
// portal triggers are ignored regardless of per-portal state.
type Cooldown struct {
	clock *Clock
	until float64
}

func NewCooldown(c *Clock) *Cooldown {
	return &Cooldown{clock: c}
}

// Arm extends the deadline to at least seconds from now. It never shortens an
// already armed cooldown.
func (g *Cooldown) Arm(seconds float64) {
	if g == nil || seconds <= 0 {
		return
	}
	if until := g.clock.Now() + seconds; until > g.until {
		g.until = until
	}
}

func (g *Cooldown) Active() bool {
	if g == nil {
		return false
	}
	return g.clock.Now() < g.until
}

// Remaining returns seconds left, or zero when inactive.
func (g *Cooldown) Remaining() float64 {
	if !g.Active() {
		return 0
	}
	return g.until - g.clock.Now()
}

func (g *Cooldown) Until() float64 {
	if g == nil {
		return 0
	}
	return g.until
}

func (g *Cooldown) Reset() {
	if g == nil {
		return
	}
	g.until = 0
}
