package storage

import (
	"context"
	"errors"
	"sync"
	"time"
)

const cookiePrefix = "cookie:"

// Jar is a cookie jar over a Store. Cookies set with a positive ttl are
// persisted with that expiry. Session cookies (ttl 0) are kept in process
// memory only and are gone when the process exits.
type Jar struct {
	store Store

	mu      sync.RWMutex
	session map[string]string
}

// NewJar returns a Jar persisting to store.
func NewJar(store Store) *Jar {
	return &Jar{store: store, session: make(map[string]string)}
}

// Get returns the cookie value or ErrNotFound.
func (j *Jar) Get(ctx context.Context, name string) (string, error) {
	j.mu.RLock()
	v, ok := j.session[name]
	j.mu.RUnlock()
	if ok {
		return v, nil
	}

	b, err := j.store.Get(ctx, cookiePrefix+name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Lookup is Get with ErrNotFound reported as an empty value.
func (j *Jar) Lookup(ctx context.Context, name string) (string, error) {
	v, err := j.Get(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}

// Set stores a cookie. A zero ttl makes it a session cookie.
func (j *Jar) Set(ctx context.Context, name, value string, ttl time.Duration) error {
	if ttl <= 0 {
		if err := j.store.Delete(ctx, cookiePrefix+name); err != nil {
			return err
		}
		j.mu.Lock()
		j.session[name] = value
		j.mu.Unlock()
		return nil
	}

	j.mu.Lock()
	delete(j.session, name)
	j.mu.Unlock()
	return j.store.Set(ctx, cookiePrefix+name, []byte(value), ttl)
}

// Delete removes the cookie in both its session and persistent forms.
func (j *Jar) Delete(ctx context.Context, name string) error {
	j.mu.Lock()
	delete(j.session, name)
	j.mu.Unlock()
	return j.store.Delete(ctx, cookiePrefix+name)
}
