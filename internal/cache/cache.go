// Package cache provides the key/value store backing derived aggregates.
// Entries are a disposable view over the durable store: every reader must
// tolerate a miss, and writers invalidate rather than update.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss signals the key is not present (never stored, expired, or evicted).
var ErrMiss = errors.New("cache miss")

// Cache is a key/value store with per-entry TTL and explicit delete.
// A ttl of zero means the entry lives until explicitly deleted.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// AlbumLikesKey is the cache key for an album's like count.
func AlbumLikesKey(albumID string) string {
	return "albumLikes:" + albumID
}
