package store

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/errors"
)

// MemoryStore keeps tournaments in a map. Values are copied on the way in
// and out so callers never share round storage with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]bracket.Tournament
	now  func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]bracket.Tournament), now: time.Now}
}

func (s *MemoryStore) List(ctx context.Context) ([]bracket.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]bracket.Tournament, 0, len(s.data))
	for _, t := range s.data {
		out = append(out, copyTournament(t))
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (bracket.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.data[id]
	if !ok {
		return bracket.Tournament{}, notFound(id)
	}
	return copyTournament(t), nil
}

func (s *MemoryStore) Create(ctx context.Context, t bracket.Tournament) (string, error) {
	t, err := prepare(t, s.now())
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[t.ID]; exists {
		return "", errors.New(errors.ErrCodeInvalidID, "tournament %q already exists", t.ID)
	}
	s.data[t.ID] = t
	return t.ID, nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, p Patch) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.data[id]
	if !ok {
		return notFound(id)
	}
	p.Apply(&t, s.now())
	s.data[id] = t
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[id]; !ok {
		return notFound(id)
	}
	delete(s.data, id)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

func copyTournament(t bracket.Tournament) bracket.Tournament {
	t.Rounds = bracket.Clone(t.Rounds)
	return t
}

var _ Store = (*MemoryStore)(nil)
