package store

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/observability"
)

// Instrumented reports every call to the registered store hooks and logs
// failures.
type Instrumented struct {
	inner   Store
	backend string
	logger  *log.Logger
}

// Instrument wraps s so each operation emits an observability event.
func Instrument(s Store, backend string, logger *log.Logger) *Instrumented {
	if logger == nil {
		logger = log.Default()
	}
	return &Instrumented{inner: s, backend: backend, logger: logger}
}

// Unwrap returns the wrapped store.
func (s *Instrumented) Unwrap() Store { return s.inner }

func (s *Instrumented) observe(ctx context.Context, op string, start time.Time, err error) {
	observability.Store().OnStoreOp(ctx, s.backend, op, time.Since(start), err)
	if err != nil {
		s.logger.Debug("store op failed", "backend", s.backend, "op", op, "err", err)
	}
}

func (s *Instrumented) List(ctx context.Context) ([]bracket.Tournament, error) {
	start := time.Now()
	ts, err := s.inner.List(ctx)
	s.observe(ctx, "fetchAll", start, err)
	return ts, err
}

func (s *Instrumented) Get(ctx context.Context, id string) (bracket.Tournament, error) {
	start := time.Now()
	t, err := s.inner.Get(ctx, id)
	s.observe(ctx, "fetch", start, err)
	return t, err
}

func (s *Instrumented) Create(ctx context.Context, t bracket.Tournament) (string, error) {
	start := time.Now()
	id, err := s.inner.Create(ctx, t)
	s.observe(ctx, "create", start, err)
	return id, err
}

func (s *Instrumented) Update(ctx context.Context, id string, p Patch) error {
	start := time.Now()
	err := s.inner.Update(ctx, id, p)
	s.observe(ctx, "update", start, err)
	return err
}

func (s *Instrumented) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, id)
	s.observe(ctx, "delete", start, err)
	return err
}

func (s *Instrumented) Close(ctx context.Context) error {
	return s.inner.Close(ctx)
}

var _ Store = (*Instrumented)(nil)
