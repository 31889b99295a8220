// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"time"

	"pressroom/internal/models"

	"gorm.io/gorm"
)

// FeedQuery selects one page of a feed.
type FeedQuery struct {
	// Now is the visibility cutoff for published feeds.
	Now time.Time
	// Interests restricts the feed to posts tagged with any of these names.
	// Empty means no restriction.
	Interests []string
	Limit     int
	Offset    int
}

// PostChanges is a partial update of a post. Columns holds the scalar
// columns to overwrite; Interests, when non-nil, replaces the whole set.
type PostChanges struct {
	Columns   map[string]interface{}
	Interests *[]string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Recent(ctx context.Context, q FeedQuery) ([]*models.Post, error)
	Media(ctx context.Context, q FeedQuery) ([]*models.Post, error)
	All(ctx context.Context, q FeedQuery) ([]*models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post, interests []string) error
	CreateFollowup(ctx context.Context, priorID uint, post *models.Post, interests []string) error
	Update(ctx context.Context, id uint, changes PostChanges) error
	Count(ctx context.Context) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Publisher").
		Preload("Interests", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("interests.name ASC")
		})
}

func published(db *gorm.DB, now time.Time) *gorm.DB {
	return db.Where("posts.published_at IS NOT NULL AND posts.published_at <= ?", now)
}

func withInterests(db *gorm.DB, names []string) *gorm.DB {
	if len(names) == 0 {
		return db
	}
	sub := db.Session(&gorm.Session{NewDB: true}).
		Table("post_interest").
		Select("post_interest.post_id").
		Joins("JOIN interests ON interests.id = post_interest.interest_id").
		Where("interests.name IN ?", names)
	return db.Where("posts.id IN (?)", sub)
}

func (r *postRepository) page(db *gorm.DB, q FeedQuery, order string) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withDetails(db).
		Order(order).
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&posts).Error
	return posts, err
}

// Recent lists published posts, newest publication first.
func (r *postRepository) Recent(ctx context.Context, q FeedQuery) ([]*models.Post, error) {
	db := published(r.db.WithContext(ctx).Model(&models.Post{}), q.Now)
	db = withInterests(db, q.Interests)
	return r.page(db, q, "posts.published_at DESC, posts.id ASC")
}

// Media lists published posts that carry a binary payload.
func (r *postRepository) Media(ctx context.Context, q FeedQuery) ([]*models.Post, error) {
	db := published(r.db.WithContext(ctx).Model(&models.Post{}), q.Now).
		Where("posts.binary_content IS NOT NULL")
	return r.page(db, q, "posts.published_at DESC, posts.id ASC")
}

// All lists every post including drafts, newest creation first.
func (r *postRepository) All(ctx context.Context, q FeedQuery) ([]*models.Post, error) {
	db := r.db.WithContext(ctx).Model(&models.Post{})
	return r.page(db, q, "posts.created_at DESC, posts.id ASC")
}

// GetByID loads a post with publisher and interests regardless of visibility.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.withDetails(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func insertPost(tx *gorm.DB, post *models.Post, interests []string) error {
	resolved, err := resolveInterests(tx, interests)
	if err != nil {
		return err
	}
	post.Interests = resolved
	return tx.Omit("Interests.*").Create(post).Error
}

// Create inserts post and links the named interests atomically.
func (r *postRepository) Create(ctx context.Context, post *models.Post, interests []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertPost(tx, post, interests)
	})
}

// CreateFollowup inserts post and points the prior post's follow-up at it.
// It returns gorm.ErrRecordNotFound when the prior post does not exist.
func (r *postRepository) CreateFollowup(ctx context.Context, priorID uint, post *models.Post, interests []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prior models.Post
		if err := tx.Select("id").First(&prior, priorID).Error; err != nil {
			return err
		}
		if err := insertPost(tx, post, interests); err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", prior.ID).
			Update("followup_id", post.ID).Error
	})
}

// Update applies changes in one transaction. It returns
// gorm.ErrRecordNotFound when the post does not exist and
// *UnknownInterestError when an interest cannot be resolved; in both cases
// nothing is written.
func (r *postRepository) Update(ctx context.Context, id uint, changes PostChanges) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id", "content", "link").First(&post, id).Error; err != nil {
			return err
		}
		if !keepsBody(&post, changes.Columns) {
			return ErrPostWithoutBody
		}

		if len(changes.Columns) > 0 {
			if err := tx.Model(&post).Updates(changes.Columns).Error; err != nil {
				return err
			}
		}

		if changes.Interests == nil {
			return nil
		}
		resolved, err := resolveInterests(tx, *changes.Interests)
		if err != nil {
			return err
		}
		assoc := tx.Model(&post).Omit("Interests.*").Association("Interests")
		if len(resolved) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(resolved)
	})
}

// keepsBody reports whether post still has content or a link once columns
// are applied.
func keepsBody(post *models.Post, columns map[string]interface{}) bool {
	content, link := post.Content, post.Link
	if v, ok := columns["content"].(string); ok {
		content = &v
	}
	if v, ok := columns["link"].(string); ok {
		link = &v
	}
	return (content != nil && *content != "") || (link != nil && *link != "")
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&n).Error
	return n, err
}
