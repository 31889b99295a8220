package seed

import (
	"testing"

	"pressroom/internal/models"
	"pressroom/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_CreatesAdminAndData(t *testing.T) {
	db := testutil.NewDB(t)

	res, err := Seed(db, Options{NumPublishers: 2, NumPosts: 25, NumInterests: 4, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Publishers)
	assert.Equal(t, 25, res.Posts)
	assert.Equal(t, 3, res.Followups)
	assert.Len(t, res.AdminPassword, 16)

	var admin models.Publisher
	require.NoError(t, db.Where("email = ?", AdminEmail).First(&admin).Error)
	assert.True(t, admin.FullAdmin)
	assert.True(t, admin.CheckPassword(res.AdminPassword))

	var posts int64
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.Equal(t, int64(25), posts)

	var anonymous int64
	require.NoError(t, db.Model(&models.Post{}).Where("publisher_id IS NULL").Count(&anonymous).Error)
	assert.Equal(t, int64(3), anonymous)

	var interests int64
	require.NoError(t, db.Model(&models.Interest{}).Count(&interests).Error)
	assert.Equal(t, int64(res.Interests), interests)
}

func TestSeed_RefusesDuplicateAdminUnlessCleaning(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := Seed(db, Options{NumPublishers: 1, NumPosts: 2, NumInterests: 1, Seed: 1})
	require.NoError(t, err)

	_, err = Seed(db, Options{NumPublishers: 1, NumPosts: 2, NumInterests: 1, Seed: 2})
	assert.Error(t, err)

	res, err := Seed(db, Options{NumPublishers: 1, NumPosts: 2, NumInterests: 1, Seed: 3, ShouldClean: true})
	require.NoError(t, err)

	var publishers int64
	require.NoError(t, db.Model(&models.Publisher{}).Count(&publishers).Error)
	assert.Equal(t, int64(res.Publishers), publishers)
}

func TestFactory_BuildPost(t *testing.T) {
	f := NewFactory(nil, 7, 30, "pw")
	publisher := &models.Publisher{ID: 5}
	interests := []models.Interest{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}

	for i := 0; i < 50; i++ {
		post := f.BuildPost(publisher, interests)
		assert.NotEmpty(t, post.Title)
		assert.True(t, post.Content != nil || post.Link != nil)
		require.NotNil(t, post.PublisherID)
		assert.Equal(t, uint(5), *post.PublisherID)
		assert.LessOrEqual(t, len(post.Interests), 2)
	}

	anonymous := f.BuildPost(nil, nil)
	assert.Nil(t, anonymous.PublisherID)
	assert.Empty(t, anonymous.Interests)
}
