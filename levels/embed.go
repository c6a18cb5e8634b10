// Package levels holds the embedded scene files and the scene catalog.
package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.json catalog.yaml
var LevelsFS embed.FS

// Level is one scene file.
type Level struct {
	Name       string   `json:"name"`
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	Background string   `json:"background,omitempty"`
	Solids     []Rect   `json:"solids,omitempty"`
	Entities   []Entity `json:"entities,omitempty"`
}

// Rect is an axis-aligned wall, X/Y is its top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Entity is a placed scene object. Props are type specific.
type Entity struct {
	Type     string         `json:"type"`
	Name     string         `json:"name,omitempty"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Rotation float64        `json:"rotation,omitempty"`
	Props    map[string]any `json:"props,omitempty"`
}

// Catalog lists the loadable scenes, the equivalent of a build configuration.
type Catalog struct {
	Start            string   `yaml:"start"`
	StartDestination string   `yaml:"start_destination"`
	Scenes           []string `yaml:"scenes"`
}

// LoadLevel reads a level from fsys. The .json extension is optional.
func LoadLevel(fsys fs.FS, name string) (*Level, error) {
	if path.Ext(name) == "" {
		name += ".json"
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(name, ".json")
	}
	return &lvl, nil
}

func LoadLevelFromFS(name string) (*Level, error) {
	return LoadLevel(LevelsFS, name)
}

// LoadCatalog reads catalog.yaml from fsys.
func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, "catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return &cat, nil
}

// Prop helpers tolerate JSON number/string drift in authored props.

func (e Entity) Prop(key string) string {
	v, ok := e.Props[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func (e Entity) PropFloat(key string, fallback float64) float64 {
	v, ok := e.Props[key]
	if !ok {
		return fallback
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	default:
		return fallback
	}
}

func (e Entity) PropInt(key string, fallback int) int {
	return int(e.PropFloat(key, float64(fallback)))
}
