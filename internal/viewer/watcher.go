package viewer

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of events an editor save produces
// into a single reload.
const debounceDelay = 200 * time.Millisecond

// watcher watches one model file and signals debounced changes on a
// channel. Editors replace files on save, so the watch sits on the
// directory and filters by name.
type watcher struct {
	fw      *fsnotify.Watcher
	path    string
	reloads chan struct{}
	done    chan struct{}
}

func newWatcher(path string) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &watcher{
		fw:      fw,
		path:    filepath.Clean(path),
		reloads: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run()

	slog.Info("watching model for changes", "path", w.path)
	return w, nil
}

func (w *watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				fire = timer.C
			} else {
				timer.Reset(debounceDelay)
			}

		case <-fire:
			timer = nil
			fire = nil
			select {
			case w.reloads <- struct{}{}:
			default:
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slog.Warn("model watcher error", "error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Reloads returns the channel that receives one signal per debounced
// change burst.
func (w *watcher) Reloads() <-chan struct{} {
	return w.reloads
}

func (w *watcher) Close() {
	close(w.done)
	w.fw.Close()
}
