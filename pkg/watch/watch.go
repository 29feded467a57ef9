// Package watch reports changes to a single file.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/macropower/adastra/pkg/log"
)

// DefaultSettle is how long a [File] waits for writes to stop before it
// reports a change.
const DefaultSettle = 50 * time.Millisecond

// File watches one file. Editors often replace a file instead of writing
// it, so the parent directory is watched and events are filtered by name.
type File struct {
	watcher *fsnotify.Watcher
	path    string
	settle  time.Duration
}

// Opt configures a [File].
type Opt func(*File)

// WithSettle overrides [DefaultSettle].
func WithSettle(d time.Duration) Opt {
	return func(f *File) {
		f.settle = d
	}
}

// NewFile starts watching path.
func NewFile(path string, opts ...Opt) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	err = w.Add(filepath.Dir(abs))
	if err != nil {
		return nil, errors.Join(fmt.Errorf("add path to watcher: %w", err), w.Close())
	}

	f := &File{watcher: w, path: abs, settle: DefaultSettle}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Run calls onChange after every settled burst of changes to the file,
// until ctx is done or the watcher fails. Errors returned by onChange are
// logged and do not stop the watch.
func (f *File) Run(ctx context.Context, onChange func(context.Context) error) error {
	logger := log.FromContext(ctx)

	defer func() {
		err := f.watcher.Close()
		if err != nil {
			logger.DebugContext(ctx, "close watcher", slog.Any("err", err))
		}
	}()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			return ctx.Err()

		case evt, ok := <-f.watcher.Events:
			if !ok {
				return nil
			}

			if evt.Name != f.path || evt.Has(fsnotify.Chmod) {
				continue
			}

			logger.DebugContext(ctx, "file event", slog.String("event", evt.String()))

			if timer == nil {
				timer = time.NewTimer(f.settle)
			} else {
				timer.Reset(f.settle)
			}

			fire = timer.C

		case <-fire:
			fire = nil

			err := onChange(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "handle file change",
					slog.String("path", f.path),
					slog.Any("err", err),
				)
			}

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return nil
			}

			return fmt.Errorf("watch %q: %w", f.path, err)
		}
	}
}

// Path returns the absolute path being watched.
func (f *File) Path() string {
	return f.path
}
