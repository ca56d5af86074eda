package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

const localPrefix = "local:"

// Local is the never-expiring local-storage namespace over a Store.
type Local struct {
	store Store
}

// NewLocal returns a Local persisting to store.
func NewLocal(store Store) *Local {
	return &Local{store: store}
}

// GetString returns the raw value or ErrNotFound.
func (l *Local) GetString(ctx context.Context, key string) (string, error) {
	b, err := l.store.Get(ctx, localPrefix+key)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// SetString stores a raw value.
func (l *Local) SetString(ctx context.Context, key, value string) error {
	return l.store.Set(ctx, localPrefix+key, []byte(value), 0)
}

// GetJSON decodes the value under key into v. It returns ErrNotFound when the
// key is absent.
func (l *Local) GetJSON(ctx context.Context, key string, v any) error {
	b, err := l.store.Get(ctx, localPrefix+key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func (l *Local) SetJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return l.store.Set(ctx, localPrefix+key, b, 0)
}

// Delete removes key. Missing keys are not an error.
func (l *Local) Delete(ctx context.Context, key string) error {
	if err := l.store.Delete(ctx, localPrefix+key); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
