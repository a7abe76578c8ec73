package fcache

import (
	"context"
	"errors"
	"os"
)

// Delete removes key, its artifact, and every entry in its related
// group. Deleting an absent key is a no-op.
//
// The index entry (and its cascade) is always removed and size
// accounting always adjusted; the first artifact-removal failure is
// returned after the cascade completes.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.deleteLocked(key)
}

// deleteLocked removes key and cascades over its related keys.
//
// The entry leaves the index and its timer stops before the cascade
// runs, so a symmetric group terminates: every recursive delete of an
// already-removed member is a no-op.
func (c *Cache) deleteLocked(key string) error {
	e, ok := c.idx.Get(key)
	if !ok {
		return nil
	}
	c.idx.Delete(key)
	e.stopTimer()

	var firstErr error
	for _, rel := range e.related {
		if err := c.deleteLocked(rel); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	c.size -= e.size
	if err := c.store.Remove(e.name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// expire is the timer callback for an entry whose TTL elapsed.
func (c *Cache) expire(key string, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	e, ok := c.idx.Get(key)
	if !ok || e.timerGen != gen {
		// The entry was rewritten or refreshed after this timer fired.
		return
	}
	if err := c.deleteLocked(key); err != nil {
		c.log.Warn("expire entry", "key", key, "error", err)
	}
}

// Empty removes every entry. Individual removal failures are logged
// and skipped; the cache always ends empty with size zero.
func (c *Cache) Empty(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.emptyLocked()
	return nil
}

func (c *Cache) emptyLocked() {
	for _, key := range c.idx.Keys() {
		if err := c.deleteLocked(key); err != nil {
			c.log.Warn("empty: remove entry", "key", key, "error", err)
		}
	}
}

// Destroy stops the eviction sweep, removes every entry along with
// the cache directory, and releases the directory claim. The cache is
// unusable afterwards; further operations return [ErrClosed].
// Destroying twice is a no-op.
func (c *Cache) Destroy(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	if c.done != nil {
		close(c.done)
	}
	c.emptyLocked()
	c.mu.Unlock()

	err := c.store.Destroy()
	releaseDir(c.dir)
	return err
}
