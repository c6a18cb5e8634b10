package scene

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/wayfarer/clock"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// Phase is the transition state machine's position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFadingOut
	PhaseDelaying
	PhaseLoading
	PhaseFadingIn
)

func (p Phase) String() string {
	switch p {
	case PhaseFadingOut:
		return "fading-out"
	case PhaseDelaying:
		return "delaying"
	case PhaseLoading:
		return "loading"
	case PhaseFadingIn:
		return "fading-in"
	default:
		return "idle"
	}
}

const (
	DefaultFadeSeconds      = 0.35
	DefaultDelaySeconds     = 0.1
	DefaultProgressiveBatch = 2
)

type SequencerConfig struct {
	FadeSeconds  float64
	DelaySeconds float64
	// ProgressiveBatch is how many build steps a progressive load prepares
	// per frame.
	ProgressiveBatch int
}

// SceneListener is notified with the transition's target scene.
type SceneListener func(id SceneID)

// LoadedListener runs after the scene activated and the player was placed.
type LoadedListener func(w *ecs.World, id SceneID)

// Sequencer serializes scene loads behind a fade. One transition runs at a
// time; it is ticked once per frame on real (unscaled) time so a paused game
// still finishes its fade.
type Sequencer struct {
	log     *log.Logger
	clock   *clock.Clock
	loader  *Loader
	spawner *Spawner
	cfg     SequencerConfig

	phase      Phase
	timer      float64
	alpha      float64
	target     SceneID
	mode       component.LoadMode
	onComplete func()
	op         *LoadOperation
	aborted    bool

	onStart  []SceneListener
	onLoaded []LoadedListener
	onDone   []SceneListener
}

func NewSequencer(logger *log.Logger, c *clock.Clock, loader *Loader, spawner *Spawner, cfg SequencerConfig) *Sequencer {
	if cfg.FadeSeconds < 0 {
		cfg.FadeSeconds = 0
	}
	if cfg.DelaySeconds < 0 {
		cfg.DelaySeconds = 0
	}
	if cfg.ProgressiveBatch <= 0 {
		cfg.ProgressiveBatch = DefaultProgressiveBatch
	}
	return &Sequencer{
		log:     orDiscard(logger),
		clock:   c,
		loader:  loader,
		spawner: spawner,
		cfg:     cfg,
	}
}

func (s *Sequencer) OnTransitionStart(fn SceneListener) {
	if fn != nil {
		s.onStart = append(s.onStart, fn)
	}
}

func (s *Sequencer) OnSceneLoaded(fn LoadedListener) {
	if fn != nil {
		s.onLoaded = append(s.onLoaded, fn)
	}
}

func (s *Sequencer) OnTransitionComplete(fn SceneListener) {
	if fn != nil {
		s.onDone = append(s.onDone, fn)
	}
}

// RequestLoad starts a transition to id. While another transition runs the
// request is rejected with ErrTransitionInProgress and nothing changes.
// onComplete runs after the fade-in of a successful load; an aborted load
// never calls it.
func (s *Sequencer) RequestLoad(id SceneID, onComplete func(), mode component.LoadMode) error {
	if s.phase != PhaseIdle {
		s.log.Warn("load request rejected", "scene", id, "current", s.target, "phase", s.phase)
		return ErrTransitionInProgress
	}
	if mode != component.LoadProgressive {
		mode = component.LoadSync
	}

	s.phase = PhaseFadingOut
	s.timer = 0
	s.target = id
	s.mode = mode
	s.onComplete = onComplete
	s.op = nil
	s.aborted = false

	s.log.Info("transition started", "scene", id, "mode", mode)
	for _, fn := range s.onStart {
		s.call("transition start listener", func() { fn(id) })
	}
	return nil
}

func (s *Sequencer) Update(w *ecs.World) {
	dt := s.clock.RealDelta()

	switch s.phase {
	case PhaseFadingOut:
		s.timer += dt
		s.alpha = ratio(s.timer, s.cfg.FadeSeconds)
		if s.timer >= s.cfg.FadeSeconds {
			s.alpha = 1
			s.phase = PhaseDelaying
			s.timer = 0
		}
	case PhaseDelaying:
		s.timer += dt
		if s.timer >= s.cfg.DelaySeconds {
			s.beginLoad(w)
		}
	case PhaseLoading:
		s.stepLoad(w)
	case PhaseFadingIn:
		s.timer += dt
		s.alpha = 1 - ratio(s.timer, s.cfg.FadeSeconds)
		if s.timer >= s.cfg.FadeSeconds {
			s.finish()
		}
	}
}

func (s *Sequencer) beginLoad(w *ecs.World) {
	op, err := s.loader.Begin(s.target)
	if err != nil {
		s.abort(err)
		return
	}
	s.op = op
	s.phase = PhaseLoading
	if s.mode == component.LoadSync {
		s.stepLoad(w)
	}
}

func (s *Sequencer) stepLoad(w *ecs.World) {
	budget := s.cfg.ProgressiveBatch
	if s.mode == component.LoadSync {
		budget = 0
	}
	if err := s.op.Step(budget); err != nil {
		s.abort(err)
		return
	}
	if !s.op.Ready() {
		return
	}

	s.op.AllowActivation()
	reg, err := s.loader.Activate(w, s.op)
	if err != nil {
		s.abort(err)
		return
	}

	// Arrival runs before any scene-loaded listener so listeners see the
	// player at its destination.
	s.call("arrival", func() { s.spawner.HandleSceneLoaded(w, reg) })

	id := s.target
	for _, fn := range s.onLoaded {
		s.call("scene loaded listener", func() { fn(w, id) })
	}

	s.phase = PhaseFadingIn
	s.timer = 0
}

// abort restores the fade from wherever it is and releases the transition
// without calling onComplete.
func (s *Sequencer) abort(err error) {
	s.log.Error("transition aborted", "scene", s.target, "err", err)
	if dropped, ok := s.spawner.takePending(); ok {
		s.log.Debug("pending destination dropped", "destination", dropped)
	}
	s.aborted = true
	s.op = nil
	s.phase = PhaseFadingIn
	s.timer = (1 - s.alpha) * s.cfg.FadeSeconds
}

func (s *Sequencer) finish() {
	s.alpha = 0
	id := s.target
	cb := s.onComplete
	aborted := s.aborted

	if !aborted {
		if cb != nil {
			s.call("transition onComplete", cb)
		}
		for _, fn := range s.onDone {
			s.call("transition complete listener", func() { fn(id) })
		}
		s.log.Info("transition complete", "scene", id)
	}

	s.phase = PhaseIdle
	s.timer = 0
	s.onComplete = nil
	s.op = nil
	s.aborted = false
}

func (s *Sequencer) call(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error(what+" panicked", "scene", s.target, "panic", r)
		}
	}()
	fn()
}

// InProgress reports whether a transition holds the sequencer.
func (s *Sequencer) InProgress() bool { return s.phase != PhaseIdle }

func (s *Sequencer) Phase() Phase { return s.phase }

// Alpha is the fade overlay opacity in [0, 1].
func (s *Sequencer) Alpha() float64 { return s.alpha }

// Target is the scene of the running (or last) transition.
func (s *Sequencer) Target() SceneID { return s.target }

// Progress is the load progress of the running transition.
func (s *Sequencer) Progress() float64 {
	switch s.phase {
	case PhaseLoading:
		return s.op.Progress()
	case PhaseFadingIn:
		if s.aborted {
			return 0
		}
		return 1
	default:
		return 0
	}
}

func ratio(t, total float64) float64 {
	if total <= 0 {
		return 1
	}
	r := t / total
	if r > 1 {
		return 1
	}
	if r < 0 {
		return 0
	}
	return r
}
