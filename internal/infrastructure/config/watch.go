package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports changed config files under a set of directories.
// Events carries the path of every changed .json/.yaml/.yml file, once per
// burst of writes, after the burst has been quiet for the debounce window.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once

	debounce time.Duration
}

// pendingFile is a path waiting for its burst of writes to settle
type pendingFile struct {
	timer *time.Timer
	gen   int
}

type settled struct {
	name string
	gen  int
}

// NewWatcher starts watching dirs
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),

		debounce: watchDebounce,
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Events and Errors are closed once it returns.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	pending := make(map[string]pendingFile)
	fire := make(chan settled)
	defer func() {
		for _, p := range pending {
			p.timer.Stop()
		}
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !IsConfigFile(event.Name) {
				continue
			}
			// Every event restarts the window for its path
			p := pending[event.Name]
			if p.timer != nil {
				p.timer.Stop()
			}
			s := settled{name: event.Name, gen: p.gen + 1}
			pending[event.Name] = pendingFile{
				gen: s.gen,
				timer: time.AfterFunc(w.debounce, func() {
					select {
					case fire <- s:
					case <-w.closeCh:
					}
				}),
			}
		case s := <-fire:
			if p, ok := pending[s.name]; !ok || p.gen != s.gen {
				continue
			}
			delete(pending, s.name)
			select {
			case w.Events <- s.name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// IsConfigFile reports whether path has a config file extension
func IsConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// IsPhysicsFile reports whether path names a physics config file
func IsPhysicsFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	return IsConfigFile(base) && strings.TrimSuffix(base, filepath.Ext(base)) == "physics"
}
