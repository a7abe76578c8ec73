package fcache_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-git/go-billy/v5/memfs"

	"github.com/meigma/fcache"
)

func Example() {
	ctx := context.Background()

	c, err := fcache.New(
		fcache.WithFilesystem(memfs.New()),
		fcache.WithCacheDir("/cache"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer c.Destroy(ctx)

	if err := c.Set(ctx, "greeting", []byte("hello fcache")); err != nil {
		log.Fatal(err)
	}

	data, err := c.Get(ctx, "greeting")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
	// Output: hello fcache
}

func Example_group() {
	ctx := context.Background()

	c, err := fcache.New(
		fcache.WithFilesystem(memfs.New()),
		fcache.WithCacheDir("/cache"),
		fcache.WithTTL(time.Minute),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer c.Destroy(ctx)

	// Entries written as a group share one lifetime.
	err = c.SetGroup(ctx, []fcache.GroupItem{
		{Key: "video", Value: []byte("...frames...")},
		{Key: "video.meta", Value: []byte(`{"codec":"av1"}`)},
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := c.Delete(ctx, "video"); err != nil {
		log.Fatal(err)
	}
	fmt.Println(c.Has("video.meta"))
	// Output: false
}
