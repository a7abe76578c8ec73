package fcache

import (
	"log/slog"
	"time"

	"github.com/go-git/go-billy/v5"
)

// Option configures a Cache.
type Option func(*Cache)

// WithCacheDir sets the cache directory.
// Defaults to a randomized subdirectory of the system temp directory.
func WithCacheDir(dir string) Option {
	return func(c *Cache) {
		c.dir = dir
	}
}

// WithVolumeLimit caps the cache at an absolute number of bytes.
// When the cap is exceeded, the background sweep evicts oldest entries
// until the cache is at or below limit*(1-cleanAmount).
func WithVolumeLimit(limit int64) Option {
	return func(c *Cache) {
		c.volumeLimit = limit
	}
}

// WithVolumeLimitRate caps the cache at a fraction of the volume's
// total capacity, in (0, 1]. Values above 1 are clamped to 1.
// Ignored when WithVolumeLimit is also set.
func WithVolumeLimitRate(rate float64) Option {
	return func(c *Cache) {
		c.volumeLimitRate = rate
	}
}

// WithCleanAmount sets the fraction of the configured limit freed per
// eviction sweep, in (0, 1]. Defaults to DefaultCleanAmount.
func WithCleanAmount(amount float64) Option {
	return func(c *Cache) {
		c.cleanAmount = amount
	}
}

// WithCleanInterval sets how often the eviction sweep runs.
// Defaults to DefaultCleanInterval.
func WithCleanInterval(d time.Duration) Option {
	return func(c *Cache) {
		c.cleanInterval = d
	}
}

// WithTTL sets the default time-to-live applied to writes that do not
// specify their own. Zero (the default) means entries never expire.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) {
		c.defaultTTL = d
	}
}

// WithRefreshOnGet makes reads rearm an entry's expiration timer and
// mark the entry recently used, unless overridden per write.
func WithRefreshOnGet() Option {
	return func(c *Cache) {
		c.refreshOnGet = true
	}
}

// WithCompression sets the compression algorithm applied to written
// artifacts. Moved-in files are stored as-is.
func WithCompression(compression Compression) Option {
	return func(c *Cache) {
		c.compression = compression
	}
}

// WithFilesystem sets the filesystem the cache stores artifacts on.
// Defaults to the local filesystem.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(c *Cache) {
		c.fs = fs
	}
}

// WithUsageFunc sets the disk usage probe consulted by the
// volume-rate eviction policy. Defaults to querying the operating
// system for the cache directory's volume.
func WithUsageFunc(fn UsageFunc) Option {
	return func(c *Cache) {
		if fn != nil {
			c.usage = fn
		}
	}
}

// WithLogger sets the logger used for background failures
// (expiration, eviction sweeps, Empty). Defaults to a discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}
