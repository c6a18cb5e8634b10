package scene

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// MatchKind records which lookup stage resolved an arrival id.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchExact
	MatchNormalized
	MatchName
	MatchNameNormalized
)

func (m MatchKind) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchNormalized:
		return "normalized"
	case MatchName:
		return "name"
	case MatchNameNormalized:
		return "name-normalized"
	default:
		return "none"
	}
}

// Placement is a resolved arrival point.
type Placement struct {
	Entity   ecs.Entity
	Key      string
	Match    MatchKind
	X        float64
	Y        float64
	Rotation float64
}

// Registry indexes the active scene's destinations and named objects.
// It is rebuilt whenever a scene activates; positions are read live from the
// indexed entities so later moves are honoured.
type Registry struct {
	world *ecs.World

	ids        map[string]ecs.Entity
	normIDs    map[string]ecs.Entity
	names      map[string]ecs.Entity
	normNames  map[string]ecs.Entity
	knownIDs   []string
	knownNames []string
}

// BuildRegistry scans w. The first destination registered under an id wins;
// later duplicates are logged and ignored.
func BuildRegistry(w *ecs.World, logger *log.Logger) *Registry {
	r := &Registry{
		world:     w,
		ids:       map[string]ecs.Entity{},
		normIDs:   map[string]ecs.Entity{},
		names:     map[string]ecs.Entity{},
		normNames: map[string]ecs.Entity{},
	}
	if w == nil {
		return r
	}

	ecs.ForEach2(w, component.DestinationComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, d *component.Destination, _ *component.Transform) {
		if d.ID == "" {
			return
		}
		key := strings.ToLower(d.ID)
		if prev, dup := r.ids[key]; dup {
			if logger != nil {
				logger.Warn("duplicate destination id", "id", d.ID, "kept", prev, "ignored", e)
			}
			return
		}
		r.ids[key] = e
		if norm := NormalizeID(d.ID); norm != "" {
			if _, taken := r.normIDs[norm]; !taken {
				r.normIDs[norm] = e
			}
		}
		r.knownIDs = append(r.knownIDs, d.ID)
	})

	ecs.ForEach2(w, component.NameComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, n *component.Name, _ *component.Transform) {
		if n.Value == "" || ecs.Has(w, e, component.PlayerTagComponent.Kind()) || ecs.Has(w, e, component.CameraTagComponent.Kind()) {
			return
		}
		key := strings.ToLower(n.Value)
		if _, dup := r.names[key]; dup {
			return
		}
		r.names[key] = e
		if norm := NormalizeID(n.Value); norm != "" {
			if _, taken := r.normNames[norm]; !taken {
				r.normNames[norm] = e
			}
		}
		r.knownNames = append(r.knownNames, n.Value)
	})

	sort.Strings(r.knownIDs)
	sort.Strings(r.knownNames)
	return r
}

// Resolve finds id by exact case-insensitive destination id, then by
// separator-stripped id, then by object name under the same two comparisons.
func (r *Registry) Resolve(id string) (Placement, bool) {
	if r == nil || id == "" {
		return Placement{}, false
	}
	key := strings.ToLower(id)
	norm := NormalizeID(id)

	stages := []struct {
		index map[string]ecs.Entity
		key   string
		match MatchKind
	}{
		{r.ids, key, MatchExact},
		{r.normIDs, norm, MatchNormalized},
		{r.names, key, MatchName},
		{r.normNames, norm, MatchNameNormalized},
	}
	for _, stage := range stages {
		e, ok := stage.index[stage.key]
		if !ok {
			continue
		}
		if p, ok := r.placement(e, id, stage.match); ok {
			return p, true
		}
	}
	return Placement{}, false
}

// ResolveByName skips destination ids. Used when re-verifying an arrival.
func (r *Registry) ResolveByName(name string) (Placement, bool) {
	if r == nil || name == "" {
		return Placement{}, false
	}
	if e, ok := r.names[strings.ToLower(name)]; ok {
		if p, ok := r.placement(e, name, MatchName); ok {
			return p, true
		}
	}
	if e, ok := r.normNames[NormalizeID(name)]; ok {
		if p, ok := r.placement(e, name, MatchNameNormalized); ok {
			return p, true
		}
	}
	return Placement{}, false
}

func (r *Registry) placement(e ecs.Entity, key string, match MatchKind) (Placement, bool) {
	tf, ok := ecs.Get(r.world, e, component.TransformComponent.Kind())
	if !ok {
		return Placement{}, false
	}
	return Placement{Entity: e, Key: key, Match: match, X: tf.X, Y: tf.Y, Rotation: tf.Rotation}, true
}

// KnownIDs returns the registered destination ids, sorted.
func (r *Registry) KnownIDs() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.knownIDs...)
}

// KnownNames returns the indexed object names, sorted.
func (r *Registry) KnownNames() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.knownNames...)
}
