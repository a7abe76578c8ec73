package fcache

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Get returns the cached bytes for key, or [ErrNotFound] when the key
// is absent.
//
// With refresh-on-get enabled for the entry, a hit rearms its
// expiration timer and marks it recently used against eviction.
// Concurrent misses of the read path for the same artifact share a
// single disk read.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	name, compressed, err := c.resolve(ctx, key)
	if err != nil {
		return nil, err
	}

	// Callers racing a rewrite of the same key may share a read; the
	// artifact name is unique per entry generation, so the flight key
	// never mixes content from different writes.
	v, err, _ := c.readGroup.Do(name, func() (any, error) {
		data, err := c.store.ReadAll(name)
		if err != nil {
			return nil, err
		}
		if compressed {
			return decompress(data)
		}
		return data, nil
	})
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	data, _ := v.([]byte) //nolint:errcheck // type assertion always succeeds when err is nil
	return data, nil
}

// GetStream returns a reader over the cached bytes for key, or
// [ErrNotFound] when the key is absent. The caller must close the
// returned reader.
func (c *Cache) GetStream(ctx context.Context, key string) (io.ReadCloser, error) {
	name, compressed, err := c.resolve(ctx, key)
	if err != nil {
		return nil, err
	}

	rc, err := c.store.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	if !compressed {
		return rc, nil
	}
	zr, err := zstd.NewReader(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &decodeReadCloser{zr: zr, rc: rc}, nil
}

// Has reports whether key is present in the index. It does not touch
// the filesystem and does not refresh the entry.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	_, ok := c.idx.Get(key)
	return ok
}

// resolve looks up the entry, applies refresh-on-get, and returns the
// artifact coordinates for reading outside the lock.
func (c *Cache) resolve(ctx context.Context, key string) (name string, compressed bool, err error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return "", false, ErrClosed
	}
	e, ok := c.idx.Get(key)
	if !ok {
		return "", false, ErrNotFound
	}
	if e.refresh && e.timer != nil {
		e.stopTimer()
		c.armTimerLocked(key, e)
		c.idx.MoveToBack(key)
	}
	return e.name(), e.compressed, nil
}

func decompress(data []byte) ([]byte, error) {
	zr, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// decodeReadCloser closes both the decoder and the underlying
// artifact stream.
type decodeReadCloser struct {
	zr *zstd.Decoder
	rc io.ReadCloser
}

func (d *decodeReadCloser) Read(p []byte) (int, error) {
	return d.zr.Read(p)
}

func (d *decodeReadCloser) Close() error {
	d.zr.Close()
	return d.rc.Close()
}
