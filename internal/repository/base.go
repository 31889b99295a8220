package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate is returned when a write violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// ErrPostWithoutBody is returned when an update would leave a post with
// neither content nor a link.
var ErrPostWithoutBody = errors.New("post needs content or a link")

// UnknownInterestError is returned when a write names an interest that does not exist.
type UnknownInterestError struct {
	Name string
}

func (e *UnknownInterestError) Error() string {
	return fmt.Sprintf("unknown interest %q", e.Name)
}

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translateWriteError maps unique violations to ErrDuplicate.
func translateWriteError(err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
