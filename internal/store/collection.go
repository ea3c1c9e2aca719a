package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/Veraticus/moneyflow/internal/common"
	"github.com/Veraticus/moneyflow/internal/service"
)

// collection is one ordered, persisted list of records.
type collection[T any] struct {
	idOf  func(T) string
	key   string
	items []T
	mu    sync.RWMutex
}

func newCollection[T any](key string, idOf func(T) string) *collection[T] {
	return &collection[T]{key: key, idOf: idOf, items: []T{}}
}

// list returns a copy of the items.
func (c *collection[T]) list() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneItems(c.items)
}

// indexOf returns the position of id, or -1. Callers hold the lock.
func (c *collection[T]) indexOf(id string) int {
	return slices.IndexFunc(c.items, func(item T) bool { return c.idOf(item) == id })
}

// checkNewID rejects an id already present. Callers hold the lock.
func (c *collection[T]) checkNewID(id string) error {
	if c.indexOf(id) >= 0 {
		return fmt.Errorf("%w: %s already exists in %s", common.ErrDuplicateID, id, c.key)
	}
	return nil
}

// commit writes next to the slot and, on success, makes it the current list.
// Callers hold the write lock.
func (c *collection[T]) commit(ctx context.Context, kv service.KeyValueStore, next []T) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := kv.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("failed to persist %s: %w", c.key, err)
	}
	c.items = next
	return nil
}

// replace returns a copy of the items with position i set to item.
func (c *collection[T]) replace(i int, item T) []T {
	next := cloneItems(c.items)
	next[i] = item
	return next
}

// remove deletes id and persists. A missing id is a no-op.
func (c *collection[T]) remove(ctx context.Context, kv service.KeyValueStore, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return false, nil
	}
	next := slices.Delete(cloneItems(c.items), i, i+1)
	if err := c.commit(ctx, kv, next); err != nil {
		return false, err
	}
	return true, nil
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", common.ErrNotFound, kind, id)
}

func cloneItems[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
