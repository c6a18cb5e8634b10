package scene

import (
	"fmt"
	"io/fs"

	"github.com/milk9111/wayfarer/ecs"
	"github.com/milk9111/wayfarer/ecs/component"
)

// Problem is one broken link found by Check.
type Problem struct {
	Scene  SceneID
	Object string
	Detail string
}

func (p Problem) String() string {
	if p.Object == "" {
		return fmt.Sprintf("%s: %s", p.Scene, p.Detail)
	}
	return fmt.Sprintf("%s/%s: %s", p.Scene, p.Object, p.Detail)
}

// Check loads every catalog scene into a scratch world and verifies that the
// start destination and each portal's target scene and destination resolve.
func Check(fsys fs.FS, catalog *Catalog) []Problem {
	var problems []Problem
	registries := map[SceneID]*Registry{}
	type link struct {
		from        SceneID
		portal      string
		target      string
		destination string
	}
	var links []link

	for _, id := range catalog.Scenes() {
		w := ecs.NewWorld()
		reg, err := NewLoader(nil, fsys, catalog, nil).LoadSync(w, id)
		if err != nil {
			problems = append(problems, Problem{Scene: id, Detail: err.Error()})
			continue
		}
		registries[id] = reg
		ecs.ForEach(w, component.PortalComponent.Kind(), func(e ecs.Entity, p *component.Portal) {
			name := e.String()
			if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value != "" {
				name = n.Value
			}
			links = append(links, link{from: id, portal: name, target: p.TargetScene, destination: p.DestinationID})
		})
	}

	resolve := func(from SceneID, object, target, destination string) {
		tid, err := catalog.Parse(target)
		if err != nil {
			problems = append(problems, Problem{Scene: from, Object: object, Detail: err.Error()})
			return
		}
		reg, ok := registries[tid]
		if !ok || destination == "" {
			return
		}
		if _, ok := reg.Resolve(destination); !ok {
			problems = append(problems, Problem{Scene: from, Object: object, Detail: fmt.Sprintf("destination %q not found in %s", destination, tid)})
		}
	}

	if start := catalog.Start(); start != "" {
		resolve(start, "start", string(start), catalog.StartDestination())
	}
	for _, l := range links {
		resolve(l.from, l.portal, l.target, l.destination)
	}
	return problems
}
