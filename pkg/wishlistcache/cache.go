// Package wishlistcache keeps a client-local mirror of the authenticated
// user's wishlist. Mutations apply optimistically and reconcile against the
// server's canonical set, rolling back to the pre-mutation snapshot on
// failure.
package wishlistcache

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// API is the server surface the cache reconciles against. Every method
// returns the canonical post-operation set of public product ids.
type API interface {
	Fetch(ctx context.Context) ([]int64, error)
	Add(ctx context.Context, productID int64) ([]int64, error)
	Remove(ctx context.Context, productID int64) ([]int64, error)
}

// Cache is the in-memory mirror. It is single-writer by intent; overlapping
// toggles on the same product are suppressed until the in-flight mutation
// settles, so a stale canonical replace can never clobber a newer optimistic
// edit on that product.
type Cache struct {
	api API

	mu       sync.Mutex
	set      map[int64]struct{}
	inFlight map[int64]struct{}
	loading  bool
	lastErr  error
	authed   bool
}

func New(api API) *Cache {
	return &Cache{
		api:      api,
		set:      make(map[int64]struct{}),
		inFlight: make(map[int64]struct{}),
	}
}

// SetAuthenticated marks whether a session exists. Dropping authentication
// clears the mirror immediately.
func (c *Cache) SetAuthenticated(authed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authed = authed
	if !authed {
		c.set = make(map[int64]struct{})
		c.lastErr = nil
	}
}

// Fetch replaces the local set with the server's canonical set. Without a
// session it resets to empty and makes no network call.
func (c *Cache) Fetch(ctx context.Context) error {
	c.mu.Lock()
	if !c.authed {
		c.set = make(map[int64]struct{})
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	c.mu.Unlock()

	canonical, err := c.api.Fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.lastErr = fmt.Errorf("fetching wishlist: %w", err)
		return c.lastErr
	}
	c.replaceLocked(canonical)
	c.lastErr = nil
	return nil
}

// Add inserts the product optimistically, then reconciles with the server.
func (c *Cache) Add(ctx context.Context, productID int64) error {
	return c.mutate(ctx, productID, true)
}

// Remove deletes the product optimistically, then reconciles with the server.
func (c *Cache) Remove(ctx context.Context, productID int64) error {
	return c.mutate(ctx, productID, false)
}

// Toggle delegates to Add or Remove based on current local membership.
func (c *Cache) Toggle(ctx context.Context, productID int64) error {
	c.mu.Lock()
	_, present := c.set[productID]
	c.mu.Unlock()
	if present {
		return c.Remove(ctx, productID)
	}
	return c.Add(ctx, productID)
}

// Contains reports local membership, including unsettled optimistic edits.
func (c *Cache) Contains(productID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.set[productID]
	return ok
}

// Products returns the local set in ascending id order.
func (c *Cache) Products() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]int64, 0, len(c.set))
	for id := range c.set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.set)
}

func (c *Cache) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LastError returns the most recent failure for passive UI consumption.
func (c *Cache) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// ClearError empties the error slot.
func (c *Cache) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = nil
}

func (c *Cache) mutate(ctx context.Context, productID int64, insert bool) error {
	c.mu.Lock()
	if !c.authed {
		c.mu.Unlock()
		return fmt.Errorf("wishlist mutation requires an authenticated session")
	}
	if _, busy := c.inFlight[productID]; busy {
		c.mu.Unlock()
		return fmt.Errorf("a wishlist update for product %d is still in flight", productID)
	}
	c.inFlight[productID] = struct{}{}

	// Snapshot before the optimistic edit. Failure restores the whole
	// snapshot, not just the one id, so earlier drift is not re-applied.
	snapshot := make(map[int64]struct{}, len(c.set))
	for id := range c.set {
		snapshot[id] = struct{}{}
	}
	if insert {
		c.set[productID] = struct{}{}
	} else {
		delete(c.set, productID)
	}
	c.mu.Unlock()

	var canonical []int64
	var err error
	if insert {
		canonical, err = c.api.Add(ctx, productID)
	} else {
		canonical, err = c.api.Remove(ctx, productID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, productID)
	if err != nil {
		c.set = snapshot
		verb := "adding product to"
		if !insert {
			verb = "removing product from"
		}
		c.lastErr = fmt.Errorf("%s wishlist: %w", verb, err)
		return c.lastErr
	}
	c.replaceLocked(canonical)
	c.lastErr = nil
	return nil
}

// replaceLocked swaps the local set for the canonical one wholesale. A
// replace rather than a merge self-heals any prior drift.
func (c *Cache) replaceLocked(canonical []int64) {
	next := make(map[int64]struct{}, len(canonical))
	for _, id := range canonical {
		next[id] = struct{}{}
	}
	c.set = next
}
