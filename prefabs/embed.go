package prefabs

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// DiskDir is checked before the embedded copy so edited prefabs win.
var DiskDir = "prefabs"

var cache = struct {
	sync.Mutex
	data map[string][]byte
}{data: map[string][]byte{}}

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, ok := cached(clean); ok {
		return data, nil
	}
	data, err := os.ReadFile(diskPath(clean))
	if err != nil {
		data, err = ScriptsFS.ReadFile(clean)
		if err != nil {
			return nil, err
		}
	}
	store(clean, data)
	return data, nil
}

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, ok := cached(clean); ok {
		return data, nil
	}
	data, err := os.ReadFile(diskPath(clean))
	if err != nil {
		data, err = PrefabsFS.ReadFile(clean)
		if err != nil {
			return nil, err
		}
	}
	store(clean, data)
	return data, nil
}

// Invalidate drops the cached copy of a prefab or script so the next Load
// rereads it. path may be a disk path reported by the watcher.
func Invalidate(path string) {
	key := cacheKey(path)
	cache.Lock()
	defer cache.Unlock()
	delete(cache.data, key)
}

// cacheKey maps a disk path under DiskDir, or a prefabs-relative name, to
// the key Load and LoadScript cache under.
func cacheKey(path string) string {
	if rel, err := filepath.Rel(DiskDir, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	s := filepath.ToSlash(path)
	if i := strings.LastIndex(s, "prefabs/"); i >= 0 {
		s = s[i+len("prefabs/"):]
	}
	return s
}

func cached(clean string) ([]byte, bool) {
	cache.Lock()
	defer cache.Unlock()
	data, ok := cache.data[clean]
	return data, ok
}

func store(clean string, data []byte) {
	cache.Lock()
	defer cache.Unlock()
	cache.data[clean] = data
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPath(clean string) string {
	return filepath.Join(DiskDir, filepath.FromSlash(clean))
}
