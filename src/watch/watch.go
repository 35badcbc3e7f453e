// Package watch reruns a callback when watched files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce coalesces the burst of events a single save produces.
const DefaultDebounce = 150 * time.Millisecond

// Watcher invokes a callback after any of a fixed set of files changes.
type Watcher struct {
	fw       *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
}

// New watches files. Their parent directories are watched instead of the
// files themselves so atomic saves (write temp, rename over) are seen.
func New(files []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{fw: fw, files: map[string]bool{}, debounce: DefaultDebounce}
	dirs := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", d, err)
		}
	}
	return w, nil
}

// SetDebounce changes the quiet period before the callback runs.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run blocks until ctx is done, calling fn once per settled burst of
// changes. Errors from fn are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	defer w.fw.Close()
	log := zerolog.Ctx(ctx)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("change detected")
			timer.Reset(w.debounce)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")

		case <-timer.C:
			if err := fn(ctx); err != nil {
				log.Error().Err(err).Msg("regeneration failed")
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}
