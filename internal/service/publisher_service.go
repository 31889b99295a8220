package service

import (
	"context"

	"pressroom/internal/models"
	"pressroom/internal/repository"
	"pressroom/internal/security"
	"pressroom/internal/validation"
)

// PublisherService manages publisher accounts.
type PublisherService struct {
	publishers repository.PublisherRepository
}

// CreatePublisherInput is the body of a publisher creation.
type CreatePublisherInput struct {
	Name      *string `json:"name" validate:"required,min=1,max=256"`
	Email     *string `json:"email" validate:"required"`
	FullAdmin bool    `json:"full_admin"`
}

// UpdatePublisherInput changes the caller's own email and/or password.
type UpdatePublisherInput struct {
	Email    *string `json:"email"`
	Password *string `json:"password" validate:"omitnil,min=1,max=72"`
}

// CreatedPublisher carries the one-time plaintext password of a new account.
type CreatedPublisher struct {
	Publisher *models.Publisher
	Password  string
}

// NewPublisherService builds a PublisherService.
func NewPublisherService(publishers repository.PublisherRepository) *PublisherService {
	return &PublisherService{publishers: publishers}
}

func normalizeEmail(raw string) (string, error) {
	email, err := validation.NormalizeEmail(raw)
	if err != nil {
		return "", &models.AppError{Code: models.CodeValidation, Message: "Invalid email address", Err: err}
	}
	return email, nil
}

// Create registers a publisher with a generated password. Only full
// admins may create publishers.
func (s *PublisherService) Create(ctx context.Context, auth *models.AuthContext, in CreatePublisherInput) (*CreatedPublisher, error) {
	if !auth.IsFullAdmin() {
		return nil, models.NewForbiddenError("Only administrators can create publishers")
	}
	if err := validation.Struct(in); err != nil {
		return nil, &models.AppError{Code: models.CodeValidation, Message: "Publisher needs a name and an email", Err: err}
	}
	email, err := normalizeEmail(*in.Email)
	if err != nil {
		return nil, err
	}

	password, err := security.GeneratePassword(security.GeneratedPasswordLength)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	publisher := &models.Publisher{Name: *in.Name, Email: email, FullAdmin: in.FullAdmin}
	if err := publisher.SetPassword(password); err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := s.publishers.Create(ctx, publisher); err != nil {
		return nil, mapRepoError(err, "publisher", email)
	}
	return &CreatedPublisher{Publisher: publisher, Password: password}, nil
}

// Get returns publisher id.
func (s *PublisherService) Get(ctx context.Context, id uint) (*models.Publisher, error) {
	publisher, err := s.publishers.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "publisher", id)
	}
	return publisher, nil
}

// UpdateSelf changes the caller's email and/or password.
func (s *PublisherService) UpdateSelf(ctx context.Context, auth *models.AuthContext, in UpdatePublisherInput) error {
	id := auth.PublisherID()
	if id == nil {
		return models.NewForbiddenError("This identity has no publisher record")
	}
	if in.Email == nil && in.Password == nil {
		return models.NewValidationError("Nothing to update: provide email or password")
	}
	if err := validation.Struct(in); err != nil {
		return &models.AppError{Code: models.CodeValidation, Message: "Invalid publisher update", Err: err}
	}

	publisher, err := s.publishers.GetByID(ctx, *id)
	if err != nil {
		return mapRepoError(err, "publisher", *id)
	}

	if in.Email != nil {
		email, err := normalizeEmail(*in.Email)
		if err != nil {
			return err
		}
		publisher.Email = email
	}
	if in.Password != nil {
		if err := publisher.SetPassword(*in.Password); err != nil {
			return models.NewInternalError(err)
		}
	}

	if err := s.publishers.Update(ctx, publisher); err != nil {
		return mapRepoError(err, "publisher", *id)
	}
	return nil
}
