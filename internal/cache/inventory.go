package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	postGenerationKey = "pressroom:posts:generation"
	postKeyFormat     = "pressroom:post:%d:g%d"
	interestsKey      = "pressroom:interests"
)

const (
	PostTTL      = 10 * time.Minute
	InterestsTTL = 30 * time.Minute
)

// PostKey is the detail cache key for postID under a post generation.
func PostKey(postID uint, generation int64) string {
	return fmt.Sprintf(postKeyFormat, postID, generation)
}

// InterestsKey is the cache key of the full interest list.
func InterestsKey() string {
	return interestsKey
}

// PostGeneration returns the current post generation. Missing or
// unreadable values read as 0.
func (s *Store) PostGeneration(ctx context.Context) int64 {
	if !s.Enabled() {
		return 0
	}
	gen, err := s.rdb.Get(ctx, postGenerationKey).Int64()
	if err != nil {
		return 0
	}
	return gen
}

// BumpPostGeneration orphans every cached post detail.
func (s *Store) BumpPostGeneration(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	return s.rdb.Incr(ctx, postGenerationKey).Err()
}

// InvalidateInterests drops the cached interest list.
func (s *Store) InvalidateInterests(ctx context.Context) error {
	return s.Delete(ctx, interestsKey)
}
