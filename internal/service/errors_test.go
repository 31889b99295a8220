package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"pressroom/internal/models"
	"pressroom/internal/repository"
	"pressroom/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockPublisherRepository struct {
	mock.Mock
}

func (m *mockPublisherRepository) Create(ctx context.Context, publisher *models.Publisher) error {
	return m.Called(ctx, publisher).Error(0)
}

func (m *mockPublisherRepository) GetByID(ctx context.Context, id uint) (*models.Publisher, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*models.Publisher); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPublisherRepository) GetByEmail(ctx context.Context, email string) (*models.Publisher, error) {
	args := m.Called(ctx, email)
	if p, ok := args.Get(0).(*models.Publisher); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPublisherRepository) Update(ctx context.Context, publisher *models.Publisher) error {
	return m.Called(ctx, publisher).Error(0)
}

func (m *mockPublisherRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ repository.PublisherRepository = (*mockPublisherRepository)(nil)

func TestMapRepoError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"not found", gorm.ErrRecordNotFound, models.CodeNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), models.CodeNotFound},
		{"duplicate", repository.ErrDuplicate, models.CodeConflict},
		{"post without body", repository.ErrPostWithoutBody, models.CodeValidation},
		{"unknown interest", &repository.UnknownInterestError{Name: "golf"}, models.CodeValidation},
		{"app error passes through", models.NewForbiddenError("nope"), models.CodeForbidden},
		{"anything else", errors.New("connection reset"), models.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapRepoError(tt.err, "Post", 7)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}

	assert.NoError(t, mapRepoError(nil, "Post", 7))
}

func TestAuthService_LookupFailureIsInternal(t *testing.T) {
	repo := new(mockPublisherRepository)
	repo.On("GetByEmail", mock.Anything, "writer@example.com").
		Return(nil, errors.New("database is locked")).Once()
	repo.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, gorm.ErrRecordNotFound).Once()

	codec := security.NewTokenCodec("test-secret-key-with-enough-length-0000", time.Hour)
	svc := NewAuthService(repo, codec, "")
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "Writer@Example.com", "pw")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeInternal, appErr.Code)

	_, err = svc.Authenticate(ctx, "ghost@example.com", "pw")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeUnauthorized, appErr.Code)

	repo.AssertExpectations(t)
}
