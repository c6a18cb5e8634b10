package component

type Health struct {
	Current int
	Max     int
	// InvulnSeconds is granted after each hit; Invulnerable counts it down.
	InvulnSeconds float64
	Invulnerable  float64
	Dead          bool
}

var HealthComponent = NewComponent[Health]()

// Reset restores full health.
func (h *Health) Reset() {
	h.Current = h.Max
	h.Invulnerable = 0
	h.Dead = false
}
