package service

import (
	"context"
	"encoding/base64"
	"log/slog"
	"math"
	"time"

	"pressroom/internal/cache"
	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/notifications"
	"pressroom/internal/observability"
	"pressroom/internal/repository"
	"pressroom/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// PostEventPublisher receives post lifecycle events.
type PostEventPublisher interface {
	PublishPostEvent(ctx context.Context, event notifications.PostEvent) error
}

// PostService validates and applies post mutations.
type PostService struct {
	posts  repository.PostRepository
	cache  *cache.Store
	events PostEventPublisher
}

// CreatePostInput is the body of a post or follow-up creation.
type CreatePostInput struct {
	Title         *string  `json:"title" validate:"required,min=1,max=200"`
	ShortContent  *string  `json:"short_content" validate:"omitnil,max=500"`
	Content       *string  `json:"content" validate:"omitnil,max=8000"`
	Link          *string  `json:"link" validate:"omitnil,max=500"`
	// Unix seconds, capped at 9999-12-31T23:59:59Z so the int64 conversion cannot wrap.
	PublishAt     *float64 `json:"publish_at" validate:"omitnil,gte=0,lte=253402300799"`
	PreviewImage  *string  `json:"preview_image"`
	BinaryContent *string  `json:"binary_content"`
	Interests     []string `json:"interests"`
}

// UpdatePostInput is a partial post update. Nil fields are left untouched;
// a non-nil Interests replaces the whole interest set.
type UpdatePostInput struct {
	Title         *string   `json:"title" validate:"omitnil,min=1,max=200"`
	ShortContent  *string   `json:"short_content" validate:"omitnil,max=500"`
	Content       *string   `json:"content" validate:"omitnil,max=8000"`
	Link          *string   `json:"link" validate:"omitnil,max=500"`
	PublishAt     *float64  `json:"publish_at" validate:"omitnil,gte=0,lte=253402300799"`
	PreviewImage  *string   `json:"preview_image"`
	BinaryContent *string   `json:"binary_content"`
	Likes         *int      `json:"likes" validate:"omitnil,gte=0"`
	Dislikes      *int      `json:"dislikes" validate:"omitnil,gte=0"`
	Interests     *[]string `json:"interests"`
}

// NewPostService builds a PostService. store and events may be nil.
func NewPostService(posts repository.PostRepository, store *cache.Store, events PostEventPublisher) *PostService {
	return &PostService{posts: posts, cache: store, events: events}
}

func hasText(s *string) bool {
	return s != nil && *s != ""
}

func unixToTime(sec float64) *time.Time {
	whole, frac := math.Modf(sec)
	t := time.Unix(int64(whole), int64(frac*float64(time.Second))).UTC()
	return &t
}

// decodePayload decodes an optional base64 field. Empty input stores no payload.
func decodePayload(field string, raw *string) ([]byte, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	b, err := base64.StdEncoding.DecodeString(*raw)
	if err != nil {
		return nil, models.NewValidationError(field + " must be base64 encoded")
	}
	return b, nil
}

func (s *PostService) buildPost(auth *models.AuthContext, in CreatePostInput) (*models.Post, error) {
	if err := validation.Struct(in); err != nil {
		return nil, &models.AppError{Code: models.CodeValidation, Message: "Invalid post", Err: err}
	}
	if !hasText(in.Content) && !hasText(in.Link) {
		return nil, models.NewValidationError("A post needs content or a link")
	}

	preview, err := decodePayload("preview_image", in.PreviewImage)
	if err != nil {
		return nil, err
	}
	binary, err := decodePayload("binary_content", in.BinaryContent)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		PublisherID:   auth.PublisherID(),
		Title:         *in.Title,
		ShortContent:  in.ShortContent,
		Content:       in.Content,
		Link:          in.Link,
		PreviewImage:  preview,
		BinaryContent: binary,
	}
	if in.PublishAt != nil {
		post.PublishedAt = unixToTime(*in.PublishAt)
	}
	return post, nil
}

// Create stores a new post owned by the caller. Synthetic identities
// create anonymous posts.
func (s *PostService) Create(ctx context.Context, auth *models.AuthContext, in CreatePostInput) (*models.Post, error) {
	ctx, span := observability.StartServiceSpan(ctx, "posts", "Create")
	post, err := s.create(ctx, auth, in, nil)
	observability.EndSpan(span, err)
	return post, err
}

// CreateFollowup stores a new post and links priorID to it.
func (s *PostService) CreateFollowup(ctx context.Context, auth *models.AuthContext, priorID uint, in CreatePostInput) (*models.Post, error) {
	ctx, span := observability.StartServiceSpan(ctx, "posts", "CreateFollowup", attribute.Int64("post.prior_id", int64(priorID)))
	post, err := s.create(ctx, auth, in, &priorID)
	observability.EndSpan(span, err)
	return post, err
}

func (s *PostService) create(ctx context.Context, auth *models.AuthContext, in CreatePostInput, priorID *uint) (*models.Post, error) {
	post, err := s.buildPost(auth, in)
	if err != nil {
		return nil, err
	}

	event := notifications.EventPostCreated
	if priorID == nil {
		err = s.posts.Create(ctx, post, in.Interests)
	} else {
		event = notifications.EventPostFollowup
		err = s.posts.CreateFollowup(ctx, *priorID, post, in.Interests)
	}
	if err != nil {
		resourceID := interface{}(nil)
		if priorID != nil {
			resourceID = *priorID
		}
		return nil, mapRepoError(err, "post", resourceID)
	}

	s.afterWrite(ctx, notifications.PostEvent{
		Type:        event,
		PostID:      post.ID,
		PriorPostID: priorID,
		PublisherID: post.PublisherID,
		PublishedAt: post.PublishedAt,
	})
	return post, nil
}

// Update applies a partial update to post id.
func (s *PostService) Update(ctx context.Context, id uint, in UpdatePostInput) error {
	ctx, span := observability.StartServiceSpan(ctx, "posts", "Update", attribute.Int64("post.id", int64(id)))
	err := s.update(ctx, id, in)
	observability.EndSpan(span, err)
	return err
}

func (s *PostService) update(ctx context.Context, id uint, in UpdatePostInput) error {
	if err := validation.Struct(in); err != nil {
		return &models.AppError{Code: models.CodeValidation, Message: "Invalid post update", Err: err}
	}

	columns := map[string]interface{}{}
	setString := func(column string, v *string) {
		if v != nil {
			columns[column] = *v
		}
	}
	setString("title", in.Title)
	setString("short_content", in.ShortContent)
	setString("content", in.Content)
	setString("link", in.Link)

	if in.PublishAt != nil {
		columns["published_at"] = *unixToTime(*in.PublishAt)
	}
	if in.PreviewImage != nil {
		preview, err := decodePayload("preview_image", in.PreviewImage)
		if err != nil {
			return err
		}
		columns["preview_image"] = preview
	}
	if in.BinaryContent != nil {
		binary, err := decodePayload("binary_content", in.BinaryContent)
		if err != nil {
			return err
		}
		columns["binary_content"] = binary
	}
	if in.Likes != nil {
		columns["likes"] = *in.Likes
	}
	if in.Dislikes != nil {
		columns["dislikes"] = *in.Dislikes
	}

	err := s.posts.Update(ctx, id, repository.PostChanges{Columns: columns, Interests: in.Interests})
	if err != nil {
		return mapRepoError(err, "post", id)
	}

	s.afterWrite(ctx, notifications.PostEvent{Type: notifications.EventPostUpdated, PostID: id})
	return nil
}

// afterWrite invalidates cached post details and publishes event.
// Failures are logged; the write has already committed.
func (s *PostService) afterWrite(ctx context.Context, event notifications.PostEvent) {
	if err := s.cache.BumpPostGeneration(ctx); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to invalidate post cache", slog.String("error", err.Error()))
	}
	if s.events == nil {
		return
	}
	if err := s.events.PublishPostEvent(ctx, event); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish post event",
			slog.String("event", event.Type), slog.Uint64("post_id", uint64(event.PostID)), slog.String("error", err.Error()))
	}
}
