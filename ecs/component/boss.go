package component

// Boss holds HP-gated phases. A phase applies once current health drops to
// or below HPTrigger.
type Boss struct {
	DisplayName string
	Phases      []BossPhase
}

type BossPhase struct {
	Name           string
	HPTrigger      int
	MoveSpeed      float64
	AttackCooldown float64
	Pattern        string
	Shake          float64
}

var BossComponent = NewComponent[Boss]()

type BossRuntime struct {
	Initialized  bool
	CurrentPhase int
}

var BossRuntimeComponent = NewComponent[BossRuntime]()
