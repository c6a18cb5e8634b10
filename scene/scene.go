// Package scene owns scene loading and arrival: the catalog of loadable
// scenes, the destination registry built when a scene activates, the spawner
// that places the player on arrival and the transition sequencer that
// serializes loads behind a fade.
package scene

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/milk9111/wayfarer/levels"
)

var (
	ErrTransitionInProgress = errors.New("scene: transition already in progress")
	ErrUnknownScene         = errors.New("scene: unknown scene")
)

// SceneID names a scene in the catalog.
type SceneID string

func (id SceneID) String() string { return string(id) }

// Catalog is the set of scenes that may be loaded.
type Catalog struct {
	start            SceneID
	startDestination string
	order            []SceneID
	known            map[SceneID]struct{}
}

func NewCatalog(src *levels.Catalog) *Catalog {
	c := &Catalog{known: map[SceneID]struct{}{}}
	if src == nil {
		return c
	}
	for _, name := range src.Scenes {
		id := NewSceneID(name)
		if id == "" {
			continue
		}
		if _, dup := c.known[id]; dup {
			continue
		}
		c.known[id] = struct{}{}
		c.order = append(c.order, id)
	}
	c.start = NewSceneID(src.Start)
	c.startDestination = src.StartDestination
	return c
}

// LoadCatalog reads catalog.yaml from fsys.
func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	src, err := levels.LoadCatalog(fsys)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	c := NewCatalog(src)
	if c.start != "" && !c.Contains(c.start) {
		return nil, fmt.Errorf("scene: start scene %q: %w", c.start, ErrUnknownScene)
	}
	return c, nil
}

// Parse resolves a user supplied scene name ("Forest", "forest.json").
func (c *Catalog) Parse(name string) (SceneID, error) {
	id := NewSceneID(name)
	if !c.Contains(id) {
		return "", fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return id, nil
}

func (c *Catalog) Contains(id SceneID) bool {
	if c == nil {
		return false
	}
	_, ok := c.known[id]
	return ok
}

func (c *Catalog) Start() SceneID {
	if c == nil {
		return ""
	}
	return c.start
}

func (c *Catalog) StartDestination() string {
	if c == nil {
		return ""
	}
	return c.startDestination
}

// Scenes returns the catalog in authored order.
func (c *Catalog) Scenes() []SceneID {
	if c == nil {
		return nil
	}
	return append([]SceneID(nil), c.order...)
}

// NewSceneID canonicalizes a scene name without checking the catalog.
func NewSceneID(name string) SceneID {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.TrimSuffix(s, path.Ext(s))
	return SceneID(s)
}

// NormalizeID lowercases id and strips '_', '-', '.' and whitespace, so
// "Hub_World_Enter" and "hubworldenter" compare equal.
func NormalizeID(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		switch {
		case r == '_', r == '-', r == '.', unicode.IsSpace(r):
			continue
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}
