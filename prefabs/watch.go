package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind says what sort of file changed.
type ChangeKind int

const (
	ChangeSpec ChangeKind = iota + 1
	ChangeScript
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeSpec:
		return "spec"
	case ChangeScript:
		return "script"
	default:
		return "unknown"
	}
}

// Change is one edited prefab or script on disk.
type Change struct {
	Path string
	Kind ChangeKind
}

const debounce = 100 * time.Millisecond

// Watcher reports edited prefab and script files. The fsnotify loop runs on
// its own goroutine; changes reach the game loop through Drain.
type Watcher struct {
	fs      *fsnotify.Watcher
	changes chan Change
	errs    chan error
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := newWatcher(fw)
	go w.run()
	return w, nil
}

func newWatcher(fw *fsnotify.Watcher) *Watcher {
	return &Watcher{
		fs:      fw,
		changes: make(chan Change, 16),
		errs:    make(chan error, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		if w.fs != nil {
			err = w.fs.Close()
			<-w.done
		}
	})
	return err
}

// Errors reports at most one pending watcher error.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Drain invalidates the cached copy of every file changed since the last
// call and returns the changes in arrival order.
func (w *Watcher) Drain() []Change {
	var out []Change
	for {
		select {
		case c := <-w.changes:
			Invalidate(c.Path)
			out = append(out, c)
		default:
			return out
		}
	}
}

// publish queues c unless the watcher is stopping.
func (w *Watcher) publish(c Change) bool {
	select {
	case w.changes <- c:
		return true
	case <-w.stop:
		return false
	}
}

func (w *Watcher) run() {
	defer close(w.done)
	seen := map[string]time.Time{}
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			kind, ok := classify(ev.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if at, dup := seen[ev.Name]; dup && now.Sub(at) < debounce {
				continue
			}
			seen[ev.Name] = now
			if !w.publish(Change{Path: ev.Name, Kind: kind}) {
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case <-w.stop:
			return
		}
	}
}

func classify(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ChangeSpec, true
	case ".tengo":
		return ChangeScript, true
	default:
		return 0, false
	}
}
