package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow collapses the burst of writes editors fire per save
const debounceWindow = 100 * time.Millisecond

// Watcher reports changes to profile and script files so hosts can
// hot-reload behavior without restarting. Events and Errors stay open
// for the watcher's lifetime; after Close they simply go quiet and any
// undelivered events are discarded
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
	once sync.Once

	Events chan string
	Errors chan error
}

// NewWatcher watches the given directories for profile/script changes
func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fsw:    fsw,
		done:   make(chan struct{}),
		Events: make(chan string, 16),
		Errors: make(chan error, 1),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Safe to call with undrained events pending;
// the forwarding goroutine bails out instead of completing the send
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) run() {
	seen := make(map[string]time.Time)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(ev, seen) {
				continue
			}
			select {
			case w.Events <- ev.Name:
			case <-w.done:
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.done:
				return
			}
		case <-w.done:
			return
		}
	}
}

// relevant filters to profile/script mutations and debounces per path
func relevant(ev fsnotify.Event, seen map[string]time.Time) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	switch strings.ToLower(filepath.Ext(ev.Name)) {
	case ".yaml", ".yml", ".tengo":
	default:
		return false
	}
	now := time.Now()
	if t, ok := seen[ev.Name]; ok && now.Sub(t) < debounceWindow {
		return false
	}
	seen[ev.Name] = now
	return true
}
