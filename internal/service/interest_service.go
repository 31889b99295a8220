package service

import (
	"context"
	"log/slog"

	"pressroom/internal/cache"
	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/repository"
	"pressroom/internal/validation"
)

// InterestService manages the interest catalogue.
type InterestService struct {
	interests repository.InterestRepository
	cache     *cache.Store
}

// CreateInterestInput is the body of an interest creation.
type CreateInterestInput struct {
	Name        *string `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"required,min=1,max=200"`
}

// UpdateInterestInput is the body of an interest update.
type UpdateInterestInput struct {
	Description *string `json:"description" validate:"required,min=1,max=200"`
}

// NewInterestService builds an InterestService. store may be nil.
func NewInterestService(interests repository.InterestRepository, store *cache.Store) *InterestService {
	return &InterestService{interests: interests, cache: store}
}

// List returns every interest ordered by name.
func (s *InterestService) List(ctx context.Context) ([]models.Interest, error) {
	var interests []models.Interest
	err := s.cache.Aside(ctx, "interests", cache.InterestsKey(), &interests, cache.InterestsTTL, func() error {
		var err error
		interests, err = s.interests.List(ctx)
		return err
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if interests == nil {
		interests = []models.Interest{}
	}
	return interests, nil
}

// Create adds an interest. Names are unique.
func (s *InterestService) Create(ctx context.Context, in CreateInterestInput) error {
	if err := validation.Struct(in); err != nil {
		return &models.AppError{Code: models.CodeValidation, Message: "Interest needs a name and a description", Err: err}
	}
	err := s.interests.Create(ctx, &models.Interest{Name: *in.Name, Description: *in.Description})
	if err != nil {
		return mapRepoError(err, "interest", *in.Name)
	}
	s.invalidate(ctx)
	return nil
}

// Update replaces the description of interest name.
func (s *InterestService) Update(ctx context.Context, name string, in UpdateInterestInput) error {
	if err := validation.Struct(in); err != nil {
		return &models.AppError{Code: models.CodeValidation, Message: "Interest needs a description", Err: err}
	}
	if err := s.interests.UpdateDescription(ctx, name, *in.Description); err != nil {
		return mapRepoError(err, "interest", name)
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes interest name and its post links. Unknown names succeed.
func (s *InterestService) Delete(ctx context.Context, name string) error {
	if err := s.interests.DeleteByName(ctx, name); err != nil {
		return mapRepoError(err, "interest", name)
	}
	s.invalidate(ctx)
	return nil
}

// invalidate drops the cached list and every cached post, since posts embed their interests.
func (s *InterestService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateInterests(ctx); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to invalidate interest cache", slog.String("error", err.Error()))
	}
	if err := s.cache.BumpPostGeneration(ctx); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to invalidate post cache", slog.String("error", err.Error()))
	}
}
