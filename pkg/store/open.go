package store

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bracket/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendMongo  = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend string
	Dir     string // file backend
	Mongo   MongoConfig
	Logger  *log.Logger
}

// Open creates the configured backend wrapped with [Instrument].
// An empty backend means file.
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		s   Store
		err error
	)
	backend := cfg.Backend
	if backend == "" {
		backend = BackendFile
	}

	switch backend {
	case BackendMemory:
		s = NewMemoryStore()
	case BackendFile:
		s, err = NewFileStore(cfg.Dir)
	case BackendMongo:
		s, err = NewMongoStore(ctx, cfg.Mongo)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q (must be one of: memory, file, mongo)", backend)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(s, backend, cfg.Logger), nil
}
