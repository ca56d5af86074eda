// Package favorites caches the signed-in user's favorited attractions.
package favorites

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/simp-lee/waystar/internal/storage"
)

// StorageKey is the local storage key of the persisted cache.
const StorageKey = "collection"

// Collections is the subset of the public attraction API the cache needs.
type Collections interface {
	Collect(ctx context.Context, attractionID int64) error
	Uncollect(ctx context.Context, attractionID int64) error
	CollectedIDs(ctx context.Context) ([]int64, error)
	CollectStatus(ctx context.Context, attractionID int64) (bool, error)
}

type snapshot struct {
	CollectedIDs []int64 `json:"collectedIds"`
	Initialized  bool    `json:"initialized"`
}

// Cache is a set of favorited attraction ids kept in sync with the backend.
// It is safe for concurrent use.
type Cache struct {
	api    Collections
	local  *storage.Local
	logger *slog.Logger

	mu          sync.RWMutex
	ids         map[int64]struct{}
	initialized bool
	loading     bool
}

// New returns a Cache seeded from local storage. A snapshot that cannot be
// decoded is discarded.
func New(ctx context.Context, api Collections, local *storage.Local, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cache{
		api:    api,
		local:  local,
		logger: logger.With("component", "favorites"),
		ids:    make(map[int64]struct{}),
	}

	var snap snapshot
	err := local.GetJSON(ctx, StorageKey, &snap)
	switch {
	case err == nil:
		for _, id := range snap.CollectedIDs {
			c.ids[id] = struct{}{}
		}
		c.initialized = snap.Initialized
	case errors.Is(err, storage.ErrNotFound):
	default:
		c.logger.Warn("discarding unreadable favorites snapshot", "error", err)
		if err := local.Delete(ctx, StorageKey); err != nil {
			return nil, fmt.Errorf("reset favorites: %w", err)
		}
	}
	return c, nil
}

// Initialize loads the favorites once. It returns immediately when the set
// is already loaded or another load is running.
func (c *Cache) Initialize(ctx context.Context) error {
	c.mu.Lock()
	if c.initialized || c.loading {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	c.mu.Unlock()

	ids, err := c.api.CollectedIDs(ctx)

	c.mu.Lock()
	c.loading = false
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("load favorites: %w", err)
	}
	c.ids = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		c.ids[id] = struct{}{}
	}
	c.initialized = true
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("favorites loaded", "count", len(snap.CollectedIDs))
	return c.persist(ctx, snap)
}

// Reload discards the loaded state and fetches it again.
func (c *Cache) Reload(ctx context.Context) error {
	c.mu.Lock()
	c.initialized = false
	c.mu.Unlock()
	return c.Initialize(ctx)
}

// Collect favorites an attraction. The set changes only after the backend
// confirms.
func (c *Cache) Collect(ctx context.Context, attractionID int64) error {
	if err := c.api.Collect(ctx, attractionID); err != nil {
		return err
	}
	return c.SetStatus(ctx, attractionID, true)
}

// Uncollect removes an attraction from the favorites.
func (c *Cache) Uncollect(ctx context.Context, attractionID int64) error {
	if err := c.api.Uncollect(ctx, attractionID); err != nil {
		return err
	}
	return c.SetStatus(ctx, attractionID, false)
}

// Toggle flips the favorite state and returns the new state.
func (c *Cache) Toggle(ctx context.Context, attractionID int64) (bool, error) {
	if c.IsCollected(attractionID) {
		if err := c.Uncollect(ctx, attractionID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := c.Collect(ctx, attractionID); err != nil {
		return false, err
	}
	return true, nil
}

// Status asks the backend whether the attraction is favorited and records
// the answer locally.
func (c *Cache) Status(ctx context.Context, attractionID int64) (bool, error) {
	collected, err := c.api.CollectStatus(ctx, attractionID)
	if err != nil {
		return false, err
	}
	return collected, c.SetStatus(ctx, attractionID, collected)
}

// SetStatus updates the local set without calling the backend.
func (c *Cache) SetStatus(ctx context.Context, attractionID int64, collected bool) error {
	c.mu.Lock()
	if collected {
		c.ids[attractionID] = struct{}{}
	} else {
		delete(c.ids, attractionID)
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	return c.persist(ctx, snap)
}

// Clear forgets all favorites, e.g. after logout.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.ids = make(map[int64]struct{})
	c.initialized = false
	snap := c.snapshotLocked()
	c.mu.Unlock()
	return c.persist(ctx, snap)
}

func (c *Cache) IsCollected(attractionID int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.ids[attractionID]
	return ok
}

func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ids)
}

// IDs returns the favorited ids in ascending order.
func (c *Cache) IDs() []int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked().CollectedIDs
}

func (c *Cache) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}

// SessionStarted loads the favorites of the new session.
func (c *Cache) SessionStarted(ctx context.Context) {
	if err := c.Initialize(ctx); err != nil {
		c.logger.Warn("initializing favorites failed", "error", err)
	}
}

// SessionCleared drops the favorites of the ended session.
func (c *Cache) SessionCleared(ctx context.Context) {
	if err := c.Clear(ctx); err != nil {
		c.logger.Error("clearing favorites failed", "error", err)
	}
}

func (c *Cache) snapshotLocked() snapshot {
	ids := make([]int64, 0, len(c.ids))
	for id := range c.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return snapshot{CollectedIDs: ids, Initialized: c.initialized}
}

func (c *Cache) persist(ctx context.Context, snap snapshot) error {
	if err := c.local.SetJSON(ctx, StorageKey, snap); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}
