package ingestion

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker writes a single updating progress line for a batch of
// files.
type ProgressTracker struct {
	mu       sync.Mutex
	writer   io.Writer
	total    int
	done     int
	every    int
	reported int
	start    time.Time
	running  bool
}

// NewProgressTracker creates a tracker for total items that reports after
// every `every` completed items.
func NewProgressTracker(writer io.Writer, total, every int) *ProgressTracker {
	return &ProgressTracker{
		writer: writer,
		total:  total,
		every:  max(every, 1),
	}
}

// Start resets the counters and the clock.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.start = time.Now()
	p.running = true
	p.done = 0
	p.reported = 0
}

// Increment records delta completed items.
func (p *ProgressTracker) Increment(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	p.done = min(p.done+delta, p.total)
	if p.done-p.reported >= p.every {
		p.report()
		p.reported = p.done
	}
}

// Done returns the number of completed items.
func (p *ProgressTracker) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Finish reports completion and ends the progress line.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	p.done = p.total
	p.report()
	fmt.Fprintln(p.writer)
	p.running = false
}

// Elapsed returns the time since Start.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.start.IsZero() {
		return 0
	}
	return time.Since(p.start)
}

// report writes the progress line. Callers hold mu.
func (p *ProgressTracker) report() {
	percent := 100.0
	if p.total > 0 {
		percent = float64(p.done) / float64(p.total) * 100.0
	}
	fmt.Fprintf(p.writer, "\rIngesting: %d/%d files (%.0f%%) in %s",
		p.done, p.total, percent, time.Since(p.start).Round(time.Millisecond))
}
