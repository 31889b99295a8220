package service

import (
	"context"
	"regexp"
	"testing"

	"pressroom/internal/models"
	"pressroom/internal/repository"
	"pressroom/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedPasswordPattern = regexp.MustCompile(`^\S{16}$`)

func TestPublisherService_Create(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewPublisherService(repository.NewPublisherRepository(db))
	ctx := context.Background()

	admin := &models.AuthContext{Publisher: testutil.CreatePublisher(t, db, "root@example.com", "pw", true)}
	regular := &models.AuthContext{Publisher: testutil.CreatePublisher(t, db, "plain@example.com", "pw", false)}

	_, err := svc.Create(ctx, regular, CreatePublisherInput{Name: strPtr("x"), Email: strPtr("x@example.com")})
	assertAppErrorCode(t, err, models.CodeForbidden)
	_, err = svc.Create(ctx, nil, CreatePublisherInput{Name: strPtr("x"), Email: strPtr("x@example.com")})
	assertAppErrorCode(t, err, models.CodeForbidden)

	for _, bad := range []string{"invalid", "invalid@also", "invalid.also", "invalid@also. "} {
		_, err := svc.Create(ctx, admin, CreatePublisherInput{Name: strPtr("x"), Email: strPtr(bad)})
		assertValidationError(t, err)
	}
	_, err = svc.Create(ctx, admin, CreatePublisherInput{Email: strPtr("x@example.com")})
	assertValidationError(t, err)

	created, err := svc.Create(ctx, admin, CreatePublisherInput{Name: strPtr("New"), Email: strPtr("New.Writer@Example.com")})
	require.NoError(t, err)
	assert.Equal(t, "new.writer@example.com", created.Publisher.Email)
	assert.Regexp(t, generatedPasswordPattern, created.Password)
	assert.True(t, created.Publisher.CheckPassword(created.Password))
	assert.False(t, created.Publisher.FullAdmin)

	_, err = svc.Create(ctx, admin, CreatePublisherInput{Name: strPtr("Dup"), Email: strPtr("new.writer@example.com")})
	assertAppErrorCode(t, err, models.CodeConflict)

	override := &models.AuthContext{Publisher: &models.Publisher{Name: "admin", FullAdmin: true}, ViaToken: true}
	_, err = svc.Create(ctx, override, CreatePublisherInput{Name: strPtr("Via"), Email: strPtr("via@example.com"), FullAdmin: true})
	require.NoError(t, err)
}

func TestPublisherService_Get(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewPublisherService(repository.NewPublisherRepository(db))
	pub := testutil.CreatePublisher(t, db, "found@example.com", "pw", false)

	got, err := svc.Get(context.Background(), pub.ID)
	require.NoError(t, err)
	assert.Equal(t, "found@example.com", got.Email)

	_, err = svc.Get(context.Background(), pub.ID+1)
	assertNotFoundError(t, err)
}

func TestPublisherService_UpdateSelf(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewPublisherService(repository.NewPublisherRepository(db))
	ctx := context.Background()

	me := testutil.CreatePublisher(t, db, "me@example.com", "old", false)
	testutil.CreatePublisher(t, db, "taken@example.com", "pw", false)
	auth := &models.AuthContext{Publisher: me}

	assertValidationError(t, svc.UpdateSelf(ctx, auth, UpdatePublisherInput{}))
	assertValidationError(t, svc.UpdateSelf(ctx, auth, UpdatePublisherInput{Email: strPtr("invalid")}))
	assertValidationError(t, svc.UpdateSelf(ctx, auth, UpdatePublisherInput{Password: strPtr("")}))
	assertAppErrorCode(t, svc.UpdateSelf(ctx, auth, UpdatePublisherInput{Email: strPtr("taken@example.com")}), models.CodeConflict)

	require.NoError(t, svc.UpdateSelf(ctx, auth, UpdatePublisherInput{Email: strPtr("Me2@Example.com"), Password: strPtr("new")}))

	reloaded, err := svc.Get(ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, "me2@example.com", reloaded.Email)
	assert.True(t, reloaded.CheckPassword("new"))

	override := &models.AuthContext{Publisher: &models.Publisher{Name: "admin", FullAdmin: true}, ViaToken: true}
	assertAppErrorCode(t, svc.UpdateSelf(ctx, override, UpdatePublisherInput{Password: strPtr("x")}), models.CodeForbidden)
}
