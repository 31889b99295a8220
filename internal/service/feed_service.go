package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"pressroom/internal/cache"
	"pressroom/internal/models"
	"pressroom/internal/observability"
	"pressroom/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// PageSize is the number of posts in one feed page.
const PageSize = 15

// FeedService answers the public and authenticated post queries.
type FeedService struct {
	posts repository.PostRepository
	cache *cache.Store
	now   func() time.Time
}

// NewFeedService builds a FeedService. store may be nil.
func NewFeedService(posts repository.PostRepository, store *cache.Store) *FeedService {
	return &FeedService{
		posts: posts,
		cache: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ParsePage reads a 1-indexed page number. An empty value is page 1.
func ParsePage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, models.NewValidationError("page must be a positive integer")
	}
	return page, nil
}

// ParseInterests splits a space-separated interest filter.
func ParseInterests(raw string) []string {
	return strings.Fields(raw)
}

// Recent returns a page of published posts, optionally restricted to posts
// tagged with any of interests.
func (s *FeedService) Recent(ctx context.Context, page int, interests []string) ([]*models.Post, error) {
	ctx, span := observability.StartServiceSpan(ctx, "feed", "Recent",
		attribute.Int("feed.page", page), attribute.Int("feed.interests", len(interests)))
	posts, err := s.fetch(page, func(q repository.FeedQuery) ([]*models.Post, error) {
		q.Interests = interests
		return s.posts.Recent(ctx, q)
	})
	observability.EndSpan(span, err)
	return posts, err
}

// Media returns a page of published posts that carry a binary payload.
func (s *FeedService) Media(ctx context.Context, page int) ([]*models.Post, error) {
	ctx, span := observability.StartServiceSpan(ctx, "feed", "Media", attribute.Int("feed.page", page))
	posts, err := s.fetch(page, func(q repository.FeedQuery) ([]*models.Post, error) {
		return s.posts.Media(ctx, q)
	})
	observability.EndSpan(span, err)
	return posts, err
}

// All returns a page of every post, drafts included.
func (s *FeedService) All(ctx context.Context, page int) ([]*models.Post, error) {
	ctx, span := observability.StartServiceSpan(ctx, "feed", "All", attribute.Int("feed.page", page))
	posts, err := s.fetch(page, func(q repository.FeedQuery) ([]*models.Post, error) {
		return s.posts.All(ctx, q)
	})
	observability.EndSpan(span, err)
	return posts, err
}

// fetch runs one page query. An empty page other than the first is NotFound.
func (s *FeedService) fetch(page int, query func(repository.FeedQuery) ([]*models.Post, error)) ([]*models.Post, error) {
	if page < 1 {
		return nil, models.NewValidationError("page must be a positive integer")
	}
	posts, err := query(repository.FeedQuery{
		Now:    s.now(),
		Limit:  PageSize,
		Offset: (page - 1) * PageSize,
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(posts) == 0 && page > 1 {
		return nil, models.NewNotFoundError("page", page)
	}
	return posts, nil
}

// GetVisiblePost returns a published post. Drafts and scheduled posts are
// reported exactly like missing ones.
func (s *FeedService) GetVisiblePost(ctx context.Context, id uint) (*models.Post, error) {
	ctx, span := observability.StartServiceSpan(ctx, "feed", "GetVisiblePost", attribute.Int64("post.id", int64(id)))
	post, err := s.getPost(ctx, id)
	if err == nil && !post.IsVisibleAt(s.now()) {
		post, err = nil, models.NewNotFoundError("post", id)
	}
	observability.EndSpan(span, err)
	return post, err
}

func (s *FeedService) getPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id, s.cache.PostGeneration(ctx))
	err := s.cache.Aside(ctx, "post", key, &post, cache.PostTTL, func() error {
		loaded, err := s.posts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		post = *loaded
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err, "post", id)
	}
	return &post, nil
}
