package scene

import (
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
	"github.com/milk9111/wayfarer/ecs/entity"
	"github.com/milk9111/wayfarer/levels"
	"github.com/milk9111/wayfarer/prefabs"
)

// progressCap is the progress reported while a progressive load waits for
// activation to be allowed.
const progressCap = 0.9

// PersistenceMode selects which Persistent flag survives a load.
type PersistenceMode int

const (
	PersistOnSceneChange PersistenceMode = iota
	PersistOnReload
)

// Loader swaps the world's scene. Entities marked Persistent for the load's
// mode survive; everything else is destroyed before the new scene is built.
type Loader struct {
	log          *log.Logger
	fsys         fs.FS
	catalog      *Catalog
	physicsReset func(w *ecs.World)
	current      SceneID
	registry     *Registry
}

func NewLoader(logger *log.Logger, fsys fs.FS, catalog *Catalog, physicsReset func(w *ecs.World)) *Loader {
	return &Loader{
		log:          orDiscard(logger),
		fsys:         fsys,
		catalog:      catalog,
		physicsReset: physicsReset,
	}
}

// Current returns the active scene, empty before the first load.
func (l *Loader) Current() SceneID { return l.current }

// Registry returns the destination registry of the active scene.
func (l *Loader) Registry() *Registry { return l.registry }

func (l *Loader) Catalog() *Catalog { return l.catalog }

// LoadOperation is an in-flight load. Preparation reads every prefab the
// scene needs and builds each step into a scratch world; activation replaces
// the live world contents in one step.
type LoadOperation struct {
	Scene SceneID
	Mode  PersistenceMode

	level *levels.Level
	steps []entity.BuildStep
	// scratch receives a trial build of every step so a scene that cannot
	// be built is rejected before the live world is pruned.
	scratch   *ecs.World
	prepared  int
	allowed   bool
	activated bool
}

// Progress is prepared/total scaled to the cap, and 1 once activated.
func (op *LoadOperation) Progress() float64 {
	if op == nil {
		return 0
	}
	if op.activated {
		return 1
	}
	if len(op.steps) == 0 {
		return progressCap
	}
	return progressCap * float64(op.prepared) / float64(len(op.steps))
}

// Ready reports whether preparation reached the cap.
func (op *LoadOperation) Ready() bool {
	return op != nil && op.prepared >= len(op.steps)
}

// AllowActivation lets Activate proceed once the operation is ready.
func (op *LoadOperation) AllowActivation() {
	if op != nil {
		op.allowed = true
	}
}

// Step prepares up to budget build steps. budget <= 0 prepares everything.
func (op *LoadOperation) Step(budget int) error {
	if op == nil {
		return nil
	}
	if budget <= 0 {
		budget = len(op.steps)
	}
	for n := 0; n < budget && op.prepared < len(op.steps); n++ {
		step := op.steps[op.prepared]
		if step.Prefab != "" {
			if _, err := prefabs.Load(step.Prefab); err != nil {
				return fmt.Errorf("scene: prepare %s: %s: prefab %s: %w", op.Scene, step.Label, step.Prefab, err)
			}
		}
		if err := step.Build(op.scratch); err != nil {
			return fmt.Errorf("scene: prepare %s: %s: %w", op.Scene, step.Label, err)
		}
		op.prepared++
	}
	if op.prepared >= len(op.steps) {
		op.scratch = nil
	}
	return nil
}

// Begin starts loading id. It fails when id is not in the catalog or its
// scene file is missing or malformed.
func (l *Loader) Begin(id SceneID) (*LoadOperation, error) {
	if !l.catalog.Contains(id) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	lvl, err := levels.LoadLevel(l.fsys, string(id))
	if err != nil {
		return nil, fmt.Errorf("scene: begin %s: %w", id, err)
	}
	mode := PersistOnSceneChange
	if id == l.current {
		mode = PersistOnReload
	}
	return &LoadOperation{
		Scene:   id,
		Mode:    mode,
		level:   lvl,
		steps:   entity.PlanLevel(lvl),
		scratch: ecs.NewWorld(),
	}, nil
}

// LoadSync prepares and activates id in one call.
func (l *Loader) LoadSync(w *ecs.World, id SceneID) (*Registry, error) {
	op, err := l.Begin(id)
	if err != nil {
		return nil, err
	}
	if err := op.Step(0); err != nil {
		return nil, err
	}
	op.AllowActivation()
	return l.Activate(w, op)
}

// Activate replaces the world's scene with op's and rebuilds the registry.
func (l *Loader) Activate(w *ecs.World, op *LoadOperation) (*Registry, error) {
	if op == nil || !op.Ready() {
		return nil, fmt.Errorf("scene: activate: operation not prepared")
	}
	if !op.allowed {
		return nil, fmt.Errorf("scene: activate %s: activation not allowed", op.Scene)
	}

	preferred := snapshotPersistentSingletons(w, op.Mode)
	pruneForLoad(w, op.Mode)
	if l.physicsReset != nil {
		l.physicsReset(w)
	}
	w.Events().Clear()

	for _, step := range op.steps {
		if err := step.Build(w); err != nil {
			return nil, fmt.Errorf("scene: activate %s: %s: %w", op.Scene, step.Label, err)
		}
	}

	resolvePersistentSingletons(w, preferred)

	if _, ok := ecs.First(w, component.CameraTagComponent.Kind()); !ok {
		if _, err := entity.NewCamera(w); err != nil {
			return nil, fmt.Errorf("scene: activate %s: %w", op.Scene, err)
		}
	}

	op.activated = true
	l.current = op.Scene
	l.registry = BuildRegistry(w, l.log)
	l.log.Info("scene activated", "scene", op.Scene, "entities", w.Count(), "destinations", len(l.registry.KnownIDs()))
	return l.registry, nil
}

func shouldKeep(p *component.Persistent, mode PersistenceMode) bool {
	if p == nil {
		return false
	}
	if mode == PersistOnReload {
		return p.KeepOnReload
	}
	return p.KeepOnSceneChange
}

func snapshotPersistentSingletons(w *ecs.World, mode PersistenceMode) map[string]ecs.Entity {
	preferred := map[string]ecs.Entity{}
	ecs.ForEach(w, component.PersistentComponent.Kind(), func(e ecs.Entity, p *component.Persistent) {
		if p.ID == "" || !shouldKeep(p, mode) {
			return
		}
		if _, exists := preferred[p.ID]; !exists {
			preferred[p.ID] = e
		}
	})
	return preferred
}

func pruneForLoad(w *ecs.World, mode PersistenceMode) {
	var doomed []ecs.Entity
	for _, e := range ecs.Entities(w) {
		p, ok := ecs.Get(w, e, component.PersistentComponent.Kind())
		if !ok || !shouldKeep(p, mode) {
			doomed = append(doomed, e)
		}
	}
	for _, e := range doomed {
		ecs.DestroyEntity(w, e)
	}
}

// resolvePersistentSingletons keeps one entity per persistent id, preferring
// the survivor of the previous scene over a copy the new scene placed.
func resolvePersistentSingletons(w *ecs.World, preferred map[string]ecs.Entity) {
	seen := map[string]ecs.Entity{}
	var doomed []ecs.Entity
	ecs.ForEach(w, component.PersistentComponent.Kind(), func(e ecs.Entity, p *component.Persistent) {
		if p.ID == "" {
			return
		}
		if keep, ok := preferred[p.ID]; ok && ecs.IsAlive(w, keep) {
			seen[p.ID] = keep
			if e != keep {
				doomed = append(doomed, e)
			}
			return
		}
		if existing, ok := seen[p.ID]; ok && existing != e {
			doomed = append(doomed, e)
			return
		}
		seen[p.ID] = e
	})
	for _, e := range doomed {
		ecs.DestroyEntity(w, e)
	}
}
