package ingestion

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultQuietPeriod is how long a file must go without events before the
// watcher ingests it.
const DefaultQuietPeriod = 500 * time.Millisecond

// Watcher ingests files as they appear or change in a directory.
type Watcher struct {
	pipeline *Pipeline
	logger   *slog.Logger
	ingested func(path string, result Result)
	quiet    time.Duration
}

// settled is sent when a path's quiet period ends. gen identifies the
// timer that fired so a superseded timer is ignored.
type settled struct {
	path string
	gen  uint64
}

type pendingFile struct {
	timer *time.Timer
	gen   uint64
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets a custom logger.
// Default is slog.Default().
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
	}
}

// OnIngest registers fn to be called after each ingestion attempt.
func OnIngest(fn func(path string, result Result)) WatcherOption {
	return func(w *Watcher) {
		w.ingested = fn
	}
}

// WithQuietPeriod sets how long a file must stay unchanged before it is
// ingested. Each new event for the file restarts the wait, so a file written
// in several chunks is ingested once, after the last chunk.
// Default is DefaultQuietPeriod.
func WithQuietPeriod(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.quiet = max(d, 0)
	}
}

// NewWatcher creates a watcher feeding pipeline.
func NewWatcher(pipeline *Pipeline, opts ...WatcherOption) (*Watcher, error) {
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}
	w := &Watcher{
		pipeline: pipeline,
		logger:   slog.Default().With("component", "watcher"),
		quiet:    DefaultQuietPeriod,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches dir until ctx is done. Created or written files with a
// supported extension are ingested once they have been quiet for the
// configured period; unchanged content is skipped by the pipeline. Removals
// are ignored since the registry is append-only.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return err
	}
	w.logger.Info("watching directory", "dir", dir)

	ready := make(chan settled)
	stopped := make(chan struct{})
	pending := make(map[string]*pendingFile)
	defer func() {
		close(stopped)
		for _, p := range pending {
			p.timer.Stop()
		}
	}()

	var gen uint64
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !Supported(event.Name) {
				continue
			}
			gen++
			if p, ok := pending[event.Name]; ok {
				p.timer.Stop()
			}
			s := settled{path: event.Name, gen: gen}
			timer := time.AfterFunc(w.quiet, func() {
				select {
				case ready <- s:
				case <-stopped:
				}
			})
			pending[event.Name] = &pendingFile{timer: timer, gen: gen}
		case s := <-ready:
			p, ok := pending[s.path]
			if !ok || p.gen != s.gen {
				continue
			}
			delete(pending, s.path)
			w.ingest(ctx, s.path)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) ingest(ctx context.Context, path string) {
	result, err := w.pipeline.IngestFiles(ctx, path)
	if err != nil {
		w.logger.Warn("failed to ingest file", "path", path, "err", err)
	}
	if w.ingested != nil {
		w.ingested(path, result)
	}
}
