package cache

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// Backend names accepted by [Open].
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	// Backend is one of the Backend* names. Empty means none.
	Backend string

	// Dir is the directory of the file and badger backends.
	Dir string

	// URL is the redis or mongo connection string.
	URL string

	// Database and Collection locate the mongo collection.
	Database   string
	Collection string

	Logger *log.Logger
}

// Open builds the backend described by cfg.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendBadger:
		c, err := NewBadgerCache(BadgerOptions{Dir: cfg.Dir, Logger: cfg.Logger})
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		c, err := NewMongoCache(ctx, cfg.URL, cfg.Database, cfg.Collection)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// Clearer is implemented by backends that can drop all entries at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

var (
	_ Clearer = NullCache{}
	_ Clearer = (*BadgerCache)(nil)
	_ Clearer = (*MongoCache)(nil)
)
