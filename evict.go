package fcache

import "time"

// evictLoop enforces the configured volume policy on a fixed
// interval until the cache is destroyed.
func (c *Cache) evictLoop() {
	ticker := time.NewTicker(c.cleanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictTick()
		case <-c.done:
			return
		}
	}
}

func (c *Cache) evictTick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	target, ok := c.evictTargetLocked()
	if !ok {
		return
	}
	c.evictToLocked(target)
}

// evictTargetLocked decides whether this tick evicts and, if so, the
// size the cache should shrink to.
//
// Absolute policy: over the ceiling, shrink to limit*(1-cleanAmount).
// Rate policy: when free space drops below the reserved headroom,
// shrink by total*rate*cleanAmount. A probe failure skips the tick;
// the next interval retries.
func (c *Cache) evictTargetLocked() (int64, bool) {
	if c.volumeLimit > 0 {
		if c.size <= c.volumeLimit {
			return 0, false
		}
		return int64(float64(c.volumeLimit) * (1 - c.cleanAmount)), true
	}

	u, err := c.usage(c.dir)
	if err != nil {
		c.log.Warn("disk usage probe", "dir", c.dir, "error", err)
		return 0, false
	}
	if u.TotalBytes == 0 {
		return 0, false
	}
	if float64(u.FreeBytes)/float64(u.TotalBytes) >= 1-c.volumeLimitRate {
		return 0, false
	}
	return c.size - int64(float64(u.TotalBytes)*c.volumeLimitRate*c.cleanAmount), true
}

// evictToLocked removes oldest entries until the cache size is at or
// below target, stopping as soon as the target is met. Eviction uses
// the same deletion path as Delete, so related groups go together.
func (c *Cache) evictToLocked(target int64) {
	for c.size > target {
		key, _, ok := c.idx.Oldest()
		if !ok {
			return
		}
		if err := c.deleteLocked(key); err != nil {
			c.log.Warn("evict entry", "key", key, "error", err)
		}
	}
}
