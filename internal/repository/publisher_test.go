package repository

import (
	"context"
	"testing"

	"pressroom/internal/models"
	"pressroom/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPublisherRepository_CreateAndLookup(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPublisherRepository(db)
	ctx := context.Background()

	pub := &models.Publisher{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, pub.SetPassword("secret"))
	require.NoError(t, repo.Create(ctx, pub))
	require.NotZero(t, pub.ID)

	byID, err := repo.GetByID(ctx, pub.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byID.Name)

	byEmail, err := repo.GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, pub.ID, byEmail.ID)
	assert.True(t, byEmail.CheckPassword("secret"))

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPublisherRepository_DuplicateEmail(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPublisherRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Publisher{Name: "a", Email: "same@example.com"}))
	err := repo.Create(ctx, &models.Publisher{Name: "b", Email: "same@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestPublisherRepository_Update(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPublisherRepository(db)
	ctx := context.Background()

	first := testutil.CreatePublisher(t, db, "first@example.com", "pw", false)
	testutil.CreatePublisher(t, db, "taken@example.com", "pw", false)

	first.Email = "renamed@example.com"
	require.NoError(t, first.SetPassword("new-password"))
	require.NoError(t, repo.Update(ctx, first))

	reloaded, err := repo.GetByEmail(ctx, "renamed@example.com")
	require.NoError(t, err)
	assert.True(t, reloaded.CheckPassword("new-password"))
	assert.False(t, reloaded.CheckPassword("pw"))

	first.Email = "taken@example.com"
	assert.ErrorIs(t, repo.Update(ctx, first), ErrDuplicate)

	missing := &models.Publisher{ID: 4242, Email: "ghost@example.com"}
	assert.ErrorIs(t, repo.Update(ctx, missing), gorm.ErrRecordNotFound)
}
