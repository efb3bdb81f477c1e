// Package store holds the last successfully fetched collection per entity.
package store

import (
	"errors"
	"sync"
)

// ErrStaleFetch is returned by Commit when a newer fetch or a local
// mutation has already been applied. The collection is left unchanged.
var ErrStaleFetch = errors.New("stale fetch discarded: a newer result is already applied")

// Collection is a mutex-guarded list with fetch sequencing. Each fetch takes
// a ticket with Begin before it goes to the network and hands it back to
// Commit. A result whose ticket is older than the last applied write is
// dropped, so an out-of-order completion can never roll the list back.
type Collection[T any] struct {
	mu        sync.RWMutex
	items     []T
	loaded    bool
	issued    uint64
	committed uint64
}

// NewCollection returns an empty collection that has not been loaded.
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{items: make([]T, 0)}
}

// Begin issues a ticket for a fetch about to start.
func (c *Collection[T]) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.issued++
	return c.issued
}

// Commit replaces the collection with items fetched under ticket.
func (c *Collection[T]) Commit(ticket uint64, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ticket < c.committed {
		return ErrStaleFetch
	}
	c.items = clone(items)
	c.committed = ticket
	c.loaded = true
	return nil
}

// Items returns a copy of the held items.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return clone(c.items)
}

// Loaded reports whether any fetch has been committed.
func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.loaded
}

// Find returns the first item matching match.
func (c *Collection[T]) Find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Upsert replaces the first item matching match with item and drops any
// further matches, or inserts item at the front when nothing matches. It
// reports whether an existing item was replaced.
func (c *Collection[T]) Upsert(item T, match func(T) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.supersedeLocked()

	out := make([]T, 0, len(c.items)+1)
	replaced := false
	for _, existing := range c.items {
		if !match(existing) {
			out = append(out, existing)
			continue
		}
		if !replaced {
			out = append(out, item)
			replaced = true
		}
	}
	if !replaced {
		out = append([]T{item}, out...)
	}
	c.items = out
	return replaced
}

// Replace swaps the first item matching match for item. Nothing is
// inserted when no item matches.
func (c *Collection[T]) Replace(item T, match func(T) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.items {
		if match(existing) {
			c.supersedeLocked()
			c.items[i] = item
			return true
		}
	}
	return false
}

// Remove deletes every item matching match and returns how many went.
func (c *Collection[T]) Remove(match func(T) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, 0, len(c.items))
	for _, existing := range c.items {
		if !match(existing) {
			out = append(out, existing)
		}
	}
	removed := len(c.items) - len(out)
	if removed > 0 {
		c.supersedeLocked()
		c.items = out
	}
	return removed
}

// supersedeLocked makes a local mutation the newest write so that fetches
// already in flight cannot overwrite it.
func (c *Collection[T]) supersedeLocked() {
	c.issued++
	c.committed = c.issued
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
