// Package watch runs a filesystem watch loop that triggers rebuilds.
package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	apperrors "git.home.luguber.info/inful/mdpress/internal/errors"
	"git.home.luguber.info/inful/mdpress/internal/logfields"
)

// defaultDebounce coalesces rapid event bursts (editors often write a file
// several times in quick succession) into one rebuild.
const defaultDebounce = 300 * time.Millisecond

// Watcher observes a set of directories and invokes a rebuild callback on
// change. Rebuilds are strictly serial: detect, build, wait for completion,
// resume detection. Events arriving while a build runs queue in the event
// channel and collapse into at most one trailing rebuild.
type Watcher struct {
	fsw      *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option { return func(w *Watcher) { w.logger = l } }

// WithDebounce overrides the event coalescing window.
func WithDebounce(d time.Duration) Option { return func(w *Watcher) { w.debounce = d } }

// New creates a watcher over the given directories. On platforms without
// filesystem notification support the constructor fails with an environment
// error; missing directories are skipped with a warning so that a site
// without pages, say, can still be watched.
func New(paths []string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryEnvironment, apperrors.SeverityFatal,
			"filesystem watching is not supported on this platform")
	}

	w := &Watcher{
		fsw:      fsw,
		logger:   slog.Default(),
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	watched := 0
	for _, p := range paths {
		if err := fsw.Add(p); err != nil {
			w.logger.Warn("Cannot watch directory", logfields.Path(p), logfields.Error(err))
			continue
		}
		w.logger.Debug("Watching directory", logfields.Path(p))
		watched++
	}
	if watched == 0 {
		_ = fsw.Close()
		return nil, apperrors.New(apperrors.CategoryEnvironment, apperrors.SeverityFatal,
			"no watchable directories")
	}
	return w, nil
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run loops until ctx is cancelled. onChange is called synchronously after
// each detected change; its errors are reported and the loop keeps watching.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	var pending *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if pending != nil {
				pending.Stop()
			}
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event.Op) {
				continue
			}
			w.logger.Debug("Change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
			if pending != nil {
				pending.Stop()
			}
			pending = time.NewTimer(w.debounce)
			fire = pending.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watch error", logfields.Error(err))

		case <-fire:
			pending = nil
			fire = nil
			if err := onChange(); err != nil {
				w.logger.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

// relevant filters the operations that affect build output: additions,
// modifications, removals, renames.
func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write) || op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename)
}
