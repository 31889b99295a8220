package repository

import (
	"context"

	"pressroom/internal/models"

	"gorm.io/gorm"
)

// InterestRepository defines data access for interests.
type InterestRepository interface {
	List(ctx context.Context) ([]models.Interest, error)
	Create(ctx context.Context, interest *models.Interest) error
	UpdateDescription(ctx context.Context, name, description string) error
	DeleteByName(ctx context.Context, name string) error
}

type interestRepository struct {
	db *gorm.DB
}

// NewInterestRepository creates a new interest repository
func NewInterestRepository(db *gorm.DB) InterestRepository {
	return &interestRepository{db: db}
}

func (r *interestRepository) List(ctx context.Context) ([]models.Interest, error) {
	var interests []models.Interest
	err := r.db.WithContext(ctx).Order("name ASC").Find(&interests).Error
	return interests, err
}

func (r *interestRepository) Create(ctx context.Context, interest *models.Interest) error {
	return translateWriteError(r.db.WithContext(ctx).Create(interest).Error)
}

// UpdateDescription returns gorm.ErrRecordNotFound when no interest has name.
func (r *interestRepository) UpdateDescription(ctx context.Context, name, description string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Interest{}).
		Where("name = ?", name).
		Update("description", description)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByName removes the interest and its post associations. Deleting a
// name that does not exist is not an error.
func (r *interestRepository) DeleteByName(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var interest models.Interest
		err := tx.Where("name = ?", name).Limit(1).Find(&interest).Error
		if err != nil {
			return err
		}
		if interest.ID == 0 {
			return nil
		}
		if err := tx.Exec("DELETE FROM post_interest WHERE interest_id = ?", interest.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Interest{}, interest.ID).Error
	})
}

// resolveInterests loads the interests named in names, in the given order.
// Duplicate names collapse to one entry.
func resolveInterests(tx *gorm.DB, names []string) ([]models.Interest, error) {
	if len(names) == 0 {
		return []models.Interest{}, nil
	}

	var found []models.Interest
	if err := tx.Where("name IN ?", names).Find(&found).Error; err != nil {
		return nil, err
	}
	byName := make(map[string]models.Interest, len(found))
	for _, in := range found {
		byName[in.Name] = in
	}

	resolved := make([]models.Interest, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		in, ok := byName[name]
		if !ok {
			return nil, &UnknownInterestError{Name: name}
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		resolved = append(resolved, in)
	}
	return resolved, nil
}
