// Package fcache provides a disk-backed key/value cache.
//
// Values are persisted as one file per entry under a private cache
// directory and indexed in memory by key. The index is memory-only:
// the directory is wiped and the index rebuilt empty whenever a cache
// is created, so entries never outlive the process.
//
// # Quick Start
//
//	c, err := fcache.New(fcache.WithCacheDir("/var/cache/app"))
//	if err != nil {
//	    return err
//	}
//	defer c.Destroy(ctx)
//
//	err = c.Set(ctx, "greeting", []byte("hello"))
//	data, err := c.Get(ctx, "greeting")
//
// # Expiration
//
// Entries may carry a time-to-live, set per cache via [WithTTL] or per
// write via [WriteWithTTL]. An entry whose TTL elapses is removed
// automatically. With refresh-on-get enabled, reading an entry rearms
// its timer and marks it recently used.
//
// # Eviction
//
// One of two volume policies may be configured: an absolute byte
// ceiling ([WithVolumeLimit]) or a fraction of the volume the cache is
// allowed to consume ([WithVolumeLimitRate]). A background sweep
// removes the oldest entries until the cache is back under target.
// When both are configured the absolute ceiling wins.
//
// # Groups
//
// [Cache.SetGroup] writes a batch of entries that share one lifetime:
// deleting, expiring, or evicting any member removes all of them.
package fcache
