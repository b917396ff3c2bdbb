// Package engagement owns album likes: the toggle that flips a user's like
// on and off, and the cached aggregate count read alongside it.
package engagement

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"melodex/internal/cache"
	"melodex/internal/store"
)

// Action reports which way a toggle flipped.
type Action int

const (
	// Added means the toggle created a like.
	Added Action = iota
	// Removed means the toggle deleted an existing like.
	Removed
)

// Source tags where a like count was read from.
type Source string

const (
	// SourceCache marks a count served from the aggregate cache.
	SourceCache Source = "cache"
	// SourceStore marks a count recomputed from the durable store.
	SourceStore Source = "store"
)

// Store defines the persistence operations likes need.
type Store interface {
	InsertLike(ctx context.Context, userID, albumID string) (string, error)
	DeleteLike(ctx context.Context, userID, albumID string) error
	ExistsLike(ctx context.Context, userID, albumID string) (bool, error)
	CountLikes(ctx context.Context, albumID string) (int, error)
}

// Service coordinates like toggles and cached count reads.
type Service interface {
	Toggle(ctx context.Context, userID, albumID string) (Action, error)
	LikeCount(ctx context.Context, albumID string) (int, Source, error)
	IsLiked(ctx context.Context, userID, albumID string) (bool, error)
}

type service struct {
	store  Store
	cache  cache.Cache
	logger zerolog.Logger
}

// New constructs an engagement Service backed by the given store and cache.
func New(st Store, c cache.Cache, logger zerolog.Logger) Service {
	return &service{store: st, cache: c, logger: logger}
}

// Toggle flips the like state for (userID, albumID). The insert is attempted
// first and the store's unique constraint decides the outcome: a violation
// means the like already existed and gets deleted instead. Both legs
// invalidate the cached count after the store mutation succeeds.
func (s *service) Toggle(ctx context.Context, userID, albumID string) (Action, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	_, err := s.store.InsertLike(ctx, userID, albumID)
	if err == nil {
		s.invalidateCount(ctx, albumID)
		return Added, nil
	}
	if !errors.Is(err, store.ErrAlreadyLiked) {
		return 0, err
	}

	if err := s.store.DeleteLike(ctx, userID, albumID); err != nil {
		if errors.Is(err, store.ErrLikeNotFound) {
			// Lost a race with a concurrent toggle between the insert
			// attempt and the delete. Surface it, never retry.
			return 0, fmt.Errorf("toggle like: row vanished before delete: %w", err)
		}
		return 0, err
	}
	s.invalidateCount(ctx, albumID)
	return Removed, nil
}

// LikeCount returns the number of likes for albumID and where the number came
// from. Any cache failure, miss, unreadable value or unavailable backend
// alike, falls back to counting in the store and repopulating the cache. Zero
// is a valid, cacheable count.
func (s *service) LikeCount(ctx context.Context, albumID string) (int, Source, error) {
	if err := ctx.Err(); err != nil {
		return 0, "", err
	}

	key := cache.AlbumLikesKey(albumID)
	if data, err := s.cache.Get(ctx, key); err == nil {
		if count, parseErr := strconv.Atoi(string(data)); parseErr == nil {
			return count, SourceCache, nil
		}
		s.logger.Warn().Str("key", key).Msg("unreadable cached like count, recomputing")
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to store")
	}

	count, err := s.store.CountLikes(ctx, albumID)
	if err != nil {
		return 0, "", err
	}

	// No TTL: the entry lives until the next toggle invalidates it.
	if err := s.cache.Set(ctx, key, []byte(strconv.Itoa(count)), 0); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return count, SourceStore, nil
}

// IsLiked reports whether userID currently likes albumID.
func (s *service) IsLiked(ctx context.Context, userID, albumID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.store.ExistsLike(ctx, userID, albumID)
}

func (s *service) invalidateCount(ctx context.Context, albumID string) {
	key := cache.AlbumLikesKey(albumID)
	if err := s.cache.Delete(ctx, key); err != nil {
		// Cache trouble never fails a toggle; the stale entry will be
		// corrected on its next expiry or overwrite.
		s.logger.Warn().Err(err).Str("key", key).Msg("cache invalidation failed")
	}
}
