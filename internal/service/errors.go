package service

import (
	"errors"
	"fmt"

	"pressroom/internal/models"
	"pressroom/internal/repository"

	"gorm.io/gorm"
)

// mapRepoError converts repository errors into AppErrors. resource and id
// describe the entity for not-found messages.
func mapRepoError(err error, resource string, id interface{}) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	var unknown *repository.UnknownInterestError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NewNotFoundError(resource, id)
	case errors.As(err, &unknown):
		return models.NewValidationError(fmt.Sprintf("Interest %q does not exist", unknown.Name))
	case errors.Is(err, repository.ErrPostWithoutBody):
		return models.NewValidationError("A post needs content or a link")
	case errors.Is(err, repository.ErrDuplicate):
		return models.NewConflictError(fmt.Sprintf("%s already exists", resource))
	default:
		return models.NewInternalError(err)
	}
}
