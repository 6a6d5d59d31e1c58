package cache

import (
	"context"
	"time"
)

// NullCache misses on every lookup. The runner uses it for --no-cache, so
// every build and render runs from scratch.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
