package repository

import (
	"context"
	"strings"

	"pressroom/internal/models"

	"gorm.io/gorm"
)

// PublisherRepository defines data access for publisher accounts.
type PublisherRepository interface {
	Create(ctx context.Context, publisher *models.Publisher) error
	GetByID(ctx context.Context, id uint) (*models.Publisher, error)
	GetByEmail(ctx context.Context, email string) (*models.Publisher, error)
	Update(ctx context.Context, publisher *models.Publisher) error
	Count(ctx context.Context) (int64, error)
}

type publisherRepository struct {
	db *gorm.DB
}

// NewPublisherRepository creates a new publisher repository
func NewPublisherRepository(db *gorm.DB) PublisherRepository {
	return &publisherRepository{db: db}
}

func (r *publisherRepository) Create(ctx context.Context, publisher *models.Publisher) error {
	return translateWriteError(r.db.WithContext(ctx).Create(publisher).Error)
}

func (r *publisherRepository) GetByID(ctx context.Context, id uint) (*models.Publisher, error) {
	var publisher models.Publisher
	if err := r.db.WithContext(ctx).First(&publisher, id).Error; err != nil {
		return nil, err
	}
	return &publisher, nil
}

// GetByEmail matches emails case-insensitively; stored emails are lowercase.
func (r *publisherRepository) GetByEmail(ctx context.Context, email string) (*models.Publisher, error) {
	var publisher models.Publisher
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&publisher).Error
	if err != nil {
		return nil, err
	}
	return &publisher, nil
}

// Update writes email and password hash of an existing publisher.
func (r *publisherRepository) Update(ctx context.Context, publisher *models.Publisher) error {
	result := r.db.WithContext(ctx).
		Model(&models.Publisher{}).
		Where("id = ?", publisher.ID).
		Updates(map[string]interface{}{
			"email":         publisher.Email,
			"password_hash": publisher.PasswordHash,
			"updated_at":    r.db.NowFunc(),
		})
	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *publisherRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Publisher{}).Count(&n).Error
	return n, err
}
