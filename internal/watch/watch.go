// Package watch reruns a callback when watched Go sources change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alexhholmes/vertex/internal/logging"
)

// Handler is called with the path of a changed file
type Handler func(path string)

// Watcher watches the directories of a set of files and reports writes to
// those files only. Editors often replace a file instead of writing it, so
// the directory is watched rather than the file itself.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
}

func New(files []string) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("no files to watch")
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsnotify: fsWatch,
		files:    make(map[string]bool, len(files)),
		debounce: 50 * time.Millisecond,
	}

	dirs := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsWatch.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsWatch.Add(dir); err != nil {
			fsWatch.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return w, nil
}

// Run delivers change events to fn until ctx is done. Bursts of events for
// the same file within the debounce window are reported once.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	defer w.fsnotify.Close()

	pending := map[string]bool{}
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(e.Name)
			if err != nil || !w.files[abs] {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			logging.Debug("change", "file", e.Name, "op", e.Op.String())
			pending[abs] = true
			timer.Reset(w.debounce)

		case <-timer.C:
			for path := range pending {
				fn(path)
			}
			clear(pending)

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return nil
			}
			logging.Error("watch", "err", err)

		case <-ctx.Done():
			return nil
		}
	}
}
