package fcache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Set writes value under key, creating the entry or replacing its
// content. Use [WriteWithAppend] to append to the existing artifact
// instead.
func (c *Cache) Set(ctx context.Context, key string, value []byte, opts ...WriteOption) error {
	return c.SetReader(ctx, key, bytes.NewReader(value), opts...)
}

// SetReader writes the content of r under key without buffering it in
// memory.
func (c *Cache) SetReader(ctx context.Context, key string, r io.Reader, opts ...WriteOption) error {
	return c.setReader(ctx, key, r, nil, c.writeConfig(opts))
}

// Move relocates the file at sourcePath into the cache under key. The
// artifact is renamed rather than copied when possible and is stored
// as-is, uncompressed.
func (c *Cache) Move(ctx context.Context, key, sourcePath string, opts ...WriteOption) error {
	return c.move(ctx, key, sourcePath, nil, c.writeConfig(opts))
}

func (c *Cache) setReader(ctx context.Context, key string, r io.Reader, related []string, cfg writeConfig) error {
	return c.write(ctx, key, cfg, related, func(e *entry, existing bool) (bool, error) {
		compress := c.compression == CompressionZstd
		if cfg.appendMode && existing {
			// Appends follow the artifact's existing encoding.
			compress = e.compressed
		}
		err := c.store.Write(e.name(), cfg.appendMode, func(w io.Writer) error {
			return copyPayload(w, r, compress)
		})
		if err != nil {
			return false, fmt.Errorf("write artifact: %w", err)
		}
		return compress, nil
	})
}

func (c *Cache) move(ctx context.Context, key, sourcePath string, related []string, cfg writeConfig) error {
	cfg.appendMode = false
	return c.write(ctx, key, cfg, related, func(e *entry, _ bool) (bool, error) {
		if err := c.store.Move(sourcePath, e.name()); err != nil {
			return false, fmt.Errorf("move artifact: %w", err)
		}
		return false, nil
	})
}

// write runs the shared write pipeline: cancel the entry's pending
// expiration, persist the artifact, refresh size accounting, reinsert
// the key at the back of the index, and rearm the timer.
//
// A persist failure propagates without touching the size counter or
// the index ordering; a new entry that failed to persist is never
// inserted, and an existing one survives with its expiration timer
// restarted at its full configured TTL.
func (c *Cache) write(ctx context.Context, key string, cfg writeConfig, related []string, persist func(e *entry, existing bool) (bool, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	e, existing := c.idx.Get(key)
	if !existing {
		// File ids are never reused within a cache instance, even
		// after deletion, so an in-flight write can't collide with a
		// recycled artifact name.
		c.nextID++
		e = &entry{fileID: c.nextID}
	}
	// A pending expiration must never fire mid-write.
	e.stopTimer()

	compressed, err := persist(e, existing)
	if err != nil {
		if existing {
			c.armTimerLocked(key, e)
		}
		return err
	}
	size, err := c.store.Size(e.name())
	if err != nil {
		if existing {
			c.armTimerLocked(key, e)
		}
		return fmt.Errorf("stat artifact: %w", err)
	}

	c.size += size - e.size
	e.size = size
	e.compressed = compressed
	e.ttl = cfg.ttl
	e.refresh = cfg.refresh
	e.related = related
	c.idx.Put(key, e)
	c.idx.MoveToBack(key)
	c.armTimerLocked(key, e)
	return nil
}

// armTimerLocked starts the entry's expiration timer. The generation
// token keeps a timer that fired just before being stopped from
// deleting a newer incarnation of the entry; it advances even when no
// new timer is armed, so rewriting an entry without a TTL invalidates
// any timer still in flight for it.
func (c *Cache) armTimerLocked(key string, e *entry) {
	c.timerGen++
	gen := c.timerGen
	e.timerGen = gen
	if e.ttl <= 0 {
		return
	}
	e.timer = time.AfterFunc(e.ttl, func() { c.expire(key, gen) })
}

func copyPayload(w io.Writer, r io.Reader, compress bool) error {
	if !compress {
		_, err := io.Copy(w, r)
		return err
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1), zstd.WithLowerEncoderMem(true))
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	if _, err := io.Copy(enc, r); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close zstd encoder: %w", err)
	}
	return nil
}
