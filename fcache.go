package fcache

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/meigma/fcache/internal/diskusage"
	"github.com/meigma/fcache/internal/index"
	"github.com/meigma/fcache/internal/store"
)

// Defaults applied when the corresponding option is unset.
const (
	DefaultCleanInterval = time.Minute
	DefaultCleanAmount   = 0.1
)

// Compression identifies the algorithm used to compress artifacts.
type Compression uint8

// Compression constants.
const (
	CompressionNone Compression = iota
	CompressionZstd
)

// DiskUsage describes the volume holding the cache directory.
type DiskUsage struct {
	TotalBytes uint64
	FreeBytes  uint64
}

// UsageFunc reports disk usage for the volume containing dir.
// It exists so tests can substitute the operating system probe.
type UsageFunc func(dir string) (DiskUsage, error)

// entry is the index record for one live key.
type entry struct {
	fileID     uint64
	size       int64
	timer      *time.Timer
	timerGen   uint64
	ttl        time.Duration
	refresh    bool
	related    []string
	compressed bool
}

func (e *entry) stopTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// name returns the artifact file name for the entry.
func (e *entry) name() string {
	return strconv.FormatUint(e.fileID, 10)
}

// Cache is a disk-backed key/value cache.
//
// A Cache owns its directory exclusively for the process lifetime;
// creating a second Cache on the same directory fails with
// [ErrCacheDirInUse] until the first is destroyed.
//
// All methods are safe for concurrent use, with one documented
// exception: concurrent writes to the same key are not serialized
// against each other and callers are expected to sequence them.
type Cache struct {
	dir   string
	fs    billy.Filesystem
	store *store.Store
	usage UsageFunc
	log   *slog.Logger

	mu       sync.Mutex
	idx      *index.Map[*entry]
	size     int64
	nextID   uint64
	timerGen uint64
	closed   bool

	defaultTTL   time.Duration
	refreshOnGet bool
	compression  Compression

	volumeLimit     int64
	volumeLimitRate float64
	cleanAmount     float64
	cleanInterval   time.Duration

	readGroup singleflight.Group
	done      chan struct{}
}

// New creates a cache.
//
// The cache directory (a randomized temp subdirectory when
// [WithCacheDir] is unset) is claimed for this process, created if
// needed, and wiped of any stale artifacts. When a volume policy is
// configured via [WithVolumeLimit] or [WithVolumeLimitRate], a
// background sweep starts enforcing it; the absolute limit takes
// precedence when both are set.
func New(opts ...Option) (*Cache, error) {
	c := &Cache{
		log:           slog.New(slog.DiscardHandler),
		idx:           index.New[*entry](),
		cleanAmount:   DefaultCleanAmount,
		cleanInterval: DefaultCleanInterval,
		usage: func(dir string) (DiskUsage, error) {
			u, err := diskusage.Check(dir)
			if err != nil {
				return DiskUsage{}, err
			}
			return DiskUsage{TotalBytes: u.TotalBytes, FreeBytes: u.FreeBytes}, nil
		},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	if c.fs == nil {
		c.fs = osfs.New("/")
	}
	if c.dir == "" {
		c.dir = filepath.Join(os.TempDir(), "fcache-"+uuid.NewString())
	}

	if err := claimDir(c.dir); err != nil {
		return nil, fmt.Errorf("%w: %s", err, c.dir)
	}

	s, err := store.New(c.fs, c.dir)
	if err != nil {
		releaseDir(c.dir)
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	if err := s.Clear(); err != nil {
		releaseDir(c.dir)
		return nil, fmt.Errorf("wipe cache dir: %w", err)
	}
	c.store = s

	if c.volumeLimit > 0 || c.volumeLimitRate > 0 {
		c.done = make(chan struct{})
		go c.evictLoop()
	}
	return c, nil
}

func (c *Cache) validate() error {
	if c.volumeLimit < 0 {
		return errors.New("volume limit must be >= 0")
	}
	if c.volumeLimitRate < 0 {
		return errors.New("volume limit rate must be >= 0")
	}
	if c.volumeLimitRate > 1 {
		c.volumeLimitRate = 1
	}
	if c.cleanAmount <= 0 || c.cleanAmount > 1 {
		return errors.New("clean amount must be in (0, 1]")
	}
	if c.cleanInterval <= 0 {
		return errors.New("clean interval must be > 0")
	}
	if c.defaultTTL < 0 {
		return errors.New("ttl must be >= 0")
	}
	if c.compression > CompressionZstd {
		return errors.New("unknown compression")
	}
	return nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Size returns the total size in bytes of all cached artifacts.
func (c *Cache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idx.Len()
}
