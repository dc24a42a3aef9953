// Package store persists tournaments.
//
// A [Store] is the bracket data collaborator: it lists, fetches, creates,
// updates and deletes whole tournaments. Three backends are provided:
//   - [MemoryStore]: process-local, for tests and the demo server
//   - [FileStore]: one JSON document per tournament, for CLI usage
//   - [MongoStore]: a MongoDB collection, for shared deployments
//
// Every backend returns errors from pkg/errors: NOT_FOUND for a missing
// tournament, INVALID_ID or INVALID_INPUT for bad arguments, and
// STORE_ERROR or NETWORK_ERROR when the backend itself fails.
//
//	s, err := store.Open(ctx, store.Config{Backend: "file", Dir: dir})
//	id, err := s.Create(ctx, bracket.Tournament{Name: "Spring Cup", Rounds: rounds})
//	t, err := s.Get(ctx, id)
package store

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/bracket/pkg/bracket"
	"github.com/matzehuels/bracket/pkg/errors"
)

// Store is the interface for tournament storage backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// List returns every tournament, newest first by CreatedAt.
	List(ctx context.Context) ([]bracket.Tournament, error)

	// Get returns one tournament or an error with code NOT_FOUND.
	Get(ctx context.Context, id string) (bracket.Tournament, error)

	// Create stores t and returns its id. An empty t.ID is replaced by a
	// generated one. CreatedAt and UpdatedAt are set by the store.
	Create(ctx context.Context, t bracket.Tournament) (string, error)

	// Update applies p to the stored tournament and bumps UpdatedAt.
	Update(ctx context.Context, id string, p Patch) error

	// Delete removes a tournament. Deleting a missing id returns NOT_FOUND.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// Patch describes a partial update. Nil fields are left unchanged.
type Patch struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Rounds      []bracket.Round `json:"rounds,omitempty"`
}

// IsEmpty reports whether p changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Rounds == nil
}

// Validate checks the fields p would write.
func (p Patch) Validate() error {
	if p.Name != nil {
		if err := errors.ValidateName(*p.Name); err != nil {
			return err
		}
	}
	if p.Rounds != nil {
		return bracket.ValidateWinners(p.Rounds)
	}
	return nil
}

// Apply writes the set fields of p into t and stamps UpdatedAt.
func (p Patch) Apply(t *bracket.Tournament, now time.Time) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Rounds != nil {
		t.Rounds = bracket.Clone(p.Rounds)
	}
	t.UpdatedAt = now
}

// String returns a pointer to s, for building a Patch.
func String(s string) *string { return &s }

// NewID generates a tournament id.
func NewID() string {
	return uuid.NewString()
}

// prepare validates t for insertion and fills in the id and timestamps.
func prepare(t bracket.Tournament, now time.Time) (bracket.Tournament, error) {
	if err := errors.ValidateName(t.Name); err != nil {
		return bracket.Tournament{}, err
	}
	if err := bracket.ValidateWinners(t.Rounds); err != nil {
		return bracket.Tournament{}, err
	}
	if t.ID == "" {
		t.ID = NewID()
	} else if err := errors.ValidateTournamentID(t.ID); err != nil {
		return bracket.Tournament{}, err
	}
	t.Rounds = bracket.Clone(t.Rounds)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	return t, nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "tournament %q not found", id)
}

// sortNewestFirst orders by CreatedAt descending, ties broken by id so the
// result is stable.
func sortNewestFirst(ts []bracket.Tournament) {
	slices.SortFunc(ts, func(a, b bracket.Tournament) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}
