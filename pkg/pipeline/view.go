package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/bracket/pkg/bracket"
)

// View holds the most recent successful render of one bracket.
//
// Update renders completely before touching the held state, so readers see
// either the old artifacts or the new ones, never a mix. A failed update
// leaves the previous artifacts in place and records the error.
type View struct {
	runner *Runner
	opts   Options

	mu        sync.RWMutex
	artifacts map[string][]byte
	result    *Result
	lastErr   error
	updatedAt time.Time
}

// NewView creates an empty view that renders with runner and opts.
func NewView(runner *Runner, opts Options) *View {
	if runner == nil {
		runner = NewRunner(nil, nil, nil)
	}
	return &View{runner: runner, opts: opts}
}

// Update re-renders the view from rounds.
func (v *View) Update(ctx context.Context, rounds []bracket.Round) error {
	res, err := v.runner.Execute(ctx, rounds, v.opts)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastErr = err
	if err != nil {
		return err
	}
	v.artifacts = res.Artifacts
	v.result = res
	v.updatedAt = time.Now()
	return nil
}

// Artifact returns the held artifact for format, if any.
func (v *View) Artifact(format string) ([]byte, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	data, ok := v.artifacts[format]
	return data, ok
}

// Result returns the last successful pipeline result, or nil.
func (v *View) Result() *Result {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.result
}

// Err returns the error from the most recent Update, nil if it succeeded.
func (v *View) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lastErr
}

// UpdatedAt returns when the held artifacts were rendered.
func (v *View) UpdatedAt() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.updatedAt
}
