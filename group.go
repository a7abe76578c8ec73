package fcache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// GroupItem describes one member of a SetGroup batch.
//
// Exactly one content source must be set: Value, Reader, or
// SourcePath.
type GroupItem struct {
	// Key is the cache key for this member.
	Key string

	// Value is written like Set when non-nil.
	Value []byte

	// Reader is written like SetReader when Value is nil.
	Reader io.Reader

	// SourcePath moves an existing file into the cache like Move.
	SourcePath string

	// Opts are per-write options for this member.
	Opts []WriteOption
}

// SetGroup writes a batch of entries that share one lifetime: every
// member records the other members' keys, and deleting, expiring, or
// evicting any one of them removes the whole group.
//
// Members are written in order. The first failure aborts the
// remaining members; members already written are kept.
func (c *Cache) SetGroup(ctx context.Context, items []GroupItem) error {
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = item.Key
	}

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		related := otherKeys(keys, i)
		cfg := c.writeConfig(item.Opts)

		var err error
		switch {
		case item.Value != nil:
			err = c.setReader(ctx, item.Key, bytes.NewReader(item.Value), related, cfg)
		case item.Reader != nil:
			err = c.setReader(ctx, item.Key, item.Reader, related, cfg)
		case item.SourcePath != "":
			err = c.move(ctx, item.Key, item.SourcePath, related, cfg)
		default:
			err = errors.New("group item has no content source")
		}
		if err != nil {
			return fmt.Errorf("group item %q: %w", item.Key, err)
		}
	}
	return nil
}

// otherKeys returns every key in the batch except the one at i.
func otherKeys(keys []string, i int) []string {
	if len(keys) <= 1 {
		return nil
	}
	others := make([]string, 0, len(keys)-1)
	others = append(others, keys[:i]...)
	others = append(others, keys[i+1:]...)
	return others
}
