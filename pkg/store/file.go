package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/bracket/pkg/bracket"
	bracketerrors "github.com/matzehuels/bracket/pkg/errors"
	bracketio "github.com/matzehuels/bracket/pkg/io"
)

// FileStore keeps one JSON document per tournament in a directory.
// Documents use the same format as `bracket tournament import`.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
	now     func() time.Time
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to ~/.config/bracket/tournaments/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "bracket", "tournaments")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, bracketerrors.Wrap(bracketerrors.ErrCodeStore, err, "create store dir")
	}
	return &FileStore{baseDir: baseDir, now: time.Now}, nil
}

// Path returns the directory holding the documents.
func (s *FileStore) Path() string {
	return s.baseDir
}

func (s *FileStore) documentPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) List(ctx context.Context) ([]bracket.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, bracketerrors.Wrap(bracketerrors.ErrCodeStore, err, "read store dir")
	}

	out := make([]bracket.Tournament, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		t, err := s.read(id)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (bracket.Tournament, error) {
	if err := bracketerrors.ValidateTournamentID(id); err != nil {
		return bracket.Tournament{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(id)
}

func (s *FileStore) Create(ctx context.Context, t bracket.Tournament) (string, error) {
	t, err := prepare(t, s.now())
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(s.documentPath(t.ID)); err == nil {
		return "", bracketerrors.New(bracketerrors.ErrCodeInvalidID, "tournament %q already exists", t.ID)
	}
	if err := s.write(t); err != nil {
		return "", err
	}
	return t.ID, nil
}

func (s *FileStore) Update(ctx context.Context, id string, p Patch) error {
	if err := bracketerrors.ValidateTournamentID(id); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.read(id)
	if err != nil {
		return err
	}
	p.Apply(&t, s.now())
	return s.write(t)
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := bracketerrors.ValidateTournamentID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.documentPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return notFound(id)
	}
	if err != nil {
		return bracketerrors.Wrap(bracketerrors.ErrCodeStore, err, "remove %s", id)
	}
	return nil
}

func (s *FileStore) Close(ctx context.Context) error { return nil }

// read loads a document; the caller holds the lock.
func (s *FileStore) read(id string) (bracket.Tournament, error) {
	data, err := os.ReadFile(s.documentPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return bracket.Tournament{}, notFound(id)
	}
	if err != nil {
		return bracket.Tournament{}, bracketerrors.Wrap(bracketerrors.ErrCodeStore, err, "read %s", id)
	}
	t, err := bracketio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return bracket.Tournament{}, bracketerrors.Wrap(bracketerrors.ErrCodeStore, err, "decode %s", id)
	}
	// The file name is authoritative.
	t.ID = id
	return t, nil
}

// write replaces a document atomically; the caller holds the lock.
func (s *FileStore) write(t bracket.Tournament) error {
	var buf bytes.Buffer
	if err := bracketio.WriteJSON(t, &buf); err != nil {
		return bracketerrors.Wrap(bracketerrors.ErrCodeStore, err, "encode %s", t.ID)
	}
	tmp := s.documentPath(t.ID) + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return bracketerrors.Wrap(bracketerrors.ErrCodeStore, err, "write %s", t.ID)
	}
	if err := os.Rename(tmp, s.documentPath(t.ID)); err != nil {
		os.Remove(tmp)
		return bracketerrors.Wrap(bracketerrors.ErrCodeStore, err, "write %s", t.ID)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
