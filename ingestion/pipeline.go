// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/homeqa/core"
)

// Registry receives ingested documents. *corpus.Registry implements it.
type Registry interface {
	RegisterAll(ctx context.Context, docs ...core.Document) error
	// RegisterNew registers the docs not yet present and reports how many
	// were added. The presence check and the append are one atomic step.
	RegisterNew(ctx context.Context, docs ...core.Document) (int, error)
}

// Result summarizes one ingestion run.
type Result struct {
	Ingested int // documents registered
	Skipped  int // files whose content was already registered
	Failed   int // files that could not be loaded
}

// Pipeline loads files concurrently and registers them in input order.
type Pipeline struct {
	registry Registry
	pool     *ants.Pool
	progress io.Writer
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent loading.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithProgress reports loading progress to w.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline feeding registry.
func NewPipeline(registry Registry, opts ...Option) (*Pipeline, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	poolSize := max(runtime.NumCPU()/2, 1)
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		registry: registry,
		pool:     pool,
		logger:   slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

type loaded struct {
	doc core.Document
	err error
}

// IngestFiles loads paths and registers the documents that are not already
// registered. Documents are registered in the order of paths regardless of
// which finishes loading first. Load failures are joined into the returned
// error; the remaining files are still registered.
func (p *Pipeline) IngestFiles(ctx context.Context, paths ...string) (Result, error) {
	var result Result
	if len(paths) == 0 {
		return result, nil
	}

	var tracker *ProgressTracker
	if p.progress != nil {
		tracker = NewProgressTracker(p.progress, len(paths), 1)
		tracker.Start()
	}

	results := make([]loaded, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				results[i] = loaded{err: err}
				return
			}
			doc, err := LoadFile(path)
			results[i] = loaded{doc: doc, err: err}
			if tracker != nil {
				tracker.Increment(1)
			}
		}
		if err := p.pool.Submit(task); err != nil {
			results[i] = loaded{err: err}
			wg.Done()
		}
	}
	wg.Wait()
	if tracker != nil {
		tracker.Finish()
	}

	var errs []error
	batch := make([]core.Document, 0, len(paths))
	for i, r := range results {
		if r.err != nil {
			result.Failed++
			errs = append(errs, fmt.Errorf("%s: %w", paths[i], r.err))
			continue
		}
		batch = append(batch, r.doc)
	}

	if len(batch) > 0 {
		added, err := p.registry.RegisterNew(ctx, batch...)
		if err != nil {
			errs = append(errs, err)
		} else {
			result.Ingested = added
			result.Skipped = len(batch) - added
		}
	}

	p.logger.Info("ingestion complete",
		"ingested", result.Ingested, "skipped", result.Skipped, "failed", result.Failed)
	return result, errors.Join(errs...)
}

// IngestDir ingests every supported file under dir, in lexical order.
func (p *Pipeline) IngestDir(ctx context.Context, dir string) (Result, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && Supported(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return p.IngestFiles(ctx, paths...)
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
