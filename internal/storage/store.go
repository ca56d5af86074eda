// Package storage provides the key-value persistence behind the cookie jar
// and the local-storage namespace.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/simp-lee/waystar/internal/config"
)

// ErrNotFound is returned when a key is missing or has expired.
var ErrNotFound = errors.New("storage: key not found")

// Store is a byte-oriented key-value store. A zero ttl means the value never
// expires.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the Store selected by cfg.Driver.
func Open(cfg *config.StorageConfig, logger *slog.Logger) (Store, error) {
	if cfg == nil {
		return nil, errors.New("storage config is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "badger":
		return OpenBadger(cfg.Badger.Dir)
	case "sqlite", "postgres":
		db, err := config.OpenDatabase(cfg, logger)
		if err != nil {
			return nil, err
		}
		store, err := NewSQL(db)
		if err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				sqlDB.Close()
			}
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
