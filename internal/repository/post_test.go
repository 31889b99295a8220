package repository

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"pressroom/internal/models"
	"pressroom/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func titles(posts []*models.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestPostRepository_RecentOrderingAndVisibility(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	testutil.CreatePost(t, db, "old", testutil.PublishedAt(now.Add(-3*time.Hour)))
	testutil.CreatePost(t, db, "new", testutil.PublishedAt(now.Add(-1*time.Hour)))
	testutil.CreatePost(t, db, "tie-a", testutil.PublishedAt(now.Add(-2*time.Hour)))
	testutil.CreatePost(t, db, "tie-b", testutil.PublishedAt(now.Add(-2*time.Hour)))
	testutil.CreatePost(t, db, "draft")
	testutil.CreatePost(t, db, "scheduled", testutil.PublishedAt(now.Add(time.Hour)))

	posts, err := repo.Recent(ctx, FeedQuery{Now: now, Limit: 15})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "tie-a", "tie-b", "old"}, titles(posts))
}

func TestPostRepository_RecentPaging(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	for i := 0; i < 20; i++ {
		testutil.CreatePost(t, db, fmt.Sprintf("p%02d", i), testutil.PublishedAt(now.Add(-time.Duration(i)*time.Minute)))
	}

	first, err := repo.Recent(ctx, FeedQuery{Now: now, Limit: 15, Offset: 0})
	require.NoError(t, err)
	require.Len(t, first, 15)
	assert.Equal(t, "p00", first[0].Title)

	second, err := repo.Recent(ctx, FeedQuery{Now: now, Limit: 15, Offset: 15})
	require.NoError(t, err)
	assert.Equal(t, []string{"p15", "p16", "p17", "p18", "p19"}, titles(second))

	third, err := repo.Recent(ctx, FeedQuery{Now: now, Limit: 15, Offset: 30})
	require.NoError(t, err)
	assert.Empty(t, third)
}

func TestPostRepository_RecentInterestFilter(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	space := testutil.CreateInterest(t, db, "space")
	art := testutil.CreateInterest(t, db, "art")
	music := testutil.CreateInterest(t, db, "music")

	testutil.CreatePost(t, db, "both", testutil.PublishedAt(now.Add(-time.Minute)), testutil.WithInterests(space, art))
	testutil.CreatePost(t, db, "space-only", testutil.PublishedAt(now.Add(-2*time.Minute)), testutil.WithInterests(space))
	testutil.CreatePost(t, db, "music-only", testutil.PublishedAt(now.Add(-3*time.Minute)), testutil.WithInterests(music))
	testutil.CreatePost(t, db, "untagged", testutil.PublishedAt(now.Add(-4*time.Minute)))

	posts, err := repo.Recent(ctx, FeedQuery{Now: now, Limit: 15, Interests: []string{"space", "art"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"both", "space-only"}, titles(posts), "a post matching several names appears once")
	assert.Equal(t, []string{"art", "space"}, posts[0].InterestNames())

	posts, err = repo.Recent(ctx, FeedQuery{Now: now, Limit: 15, Interests: []string{"nonexistent"}})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_MediaAndAll(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	testutil.CreatePost(t, db, "text", testutil.PublishedAt(now.Add(-time.Minute)), testutil.CreatedAt(now.Add(-4*time.Minute)))
	testutil.CreatePost(t, db, "video", testutil.PublishedAt(now.Add(-2*time.Minute)), testutil.WithBinary([]byte{1, 2, 3}), testutil.CreatedAt(now.Add(-3*time.Minute)))
	testutil.CreatePost(t, db, "draft-video", testutil.WithBinary([]byte{4}), testutil.CreatedAt(now.Add(-2*time.Minute)))
	testutil.CreatePost(t, db, "draft", testutil.CreatedAt(now.Add(-time.Minute)))

	media, err := repo.Media(ctx, FeedQuery{Now: now, Limit: 15})
	require.NoError(t, err)
	assert.Equal(t, []string{"video"}, titles(media))

	all, err := repo.All(ctx, FeedQuery{Limit: 15})
	require.NoError(t, err)
	assert.Equal(t, []string{"draft", "draft-video", "video", "text"}, titles(all))
}

func TestPostRepository_CreateWithInterests(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	pub := testutil.CreatePublisher(t, db, "author@example.com", "pw", false)
	testutil.CreateInterest(t, db, "go")

	post := &models.Post{Title: "hello", PublisherID: &pub.ID}
	require.NoError(t, repo.Create(ctx, post, []string{"go"}))
	require.NotZero(t, post.ID)

	loaded, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Publisher)
	assert.Equal(t, "author", loaded.Publisher.Name)
	assert.Equal(t, []string{"go"}, loaded.InterestNames())
	assert.False(t, loaded.CreatedAt.IsZero())

	var interests int64
	require.NoError(t, db.Model(&models.Interest{}).Count(&interests).Error)
	assert.Equal(t, int64(1), interests, "creating a post never creates interests")
}

func TestPostRepository_CreateUnknownInterestPersistsNothing(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)

	err := repo.Create(context.Background(), &models.Post{Title: "x"}, []string{"nope"})
	var unknown *UnknownInterestError
	require.ErrorAs(t, err, &unknown)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPostRepository_CreateFollowup(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	prior := testutil.CreatePost(t, db, "part one")
	next := &models.Post{Title: "part two"}
	require.NoError(t, repo.CreateFollowup(ctx, prior.ID, next, nil))

	reloaded, err := repo.GetByID(ctx, prior.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.FollowupID)
	assert.Equal(t, next.ID, *reloaded.FollowupID)

	orphan := &models.Post{Title: "orphan"}
	err = repo.CreateFollowup(ctx, 9999, orphan, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestPostRepository_Update(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	a := testutil.CreateInterest(t, db, "a")
	testutil.CreateInterest(t, db, "b")
	post := testutil.CreatePost(t, db, "before", testutil.WithInterests(a))

	names := []string{"b"}
	err := repo.Update(ctx, post.ID, PostChanges{
		Columns:   map[string]interface{}{"title": "after"},
		Interests: &names,
	})
	require.NoError(t, err)

	loaded, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", loaded.Title)
	assert.Equal(t, []string{"b"}, loaded.InterestNames())
	require.NotNil(t, loaded.Content)
	assert.Equal(t, "before content", *loaded.Content, "absent fields stay untouched")

	bad := []string{"a", "missing"}
	err = repo.Update(ctx, post.ID, PostChanges{
		Columns:   map[string]interface{}{"title": "rolled back"},
		Interests: &bad,
	})
	var unknown *UnknownInterestError
	require.ErrorAs(t, err, &unknown)

	loaded, err = repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", loaded.Title)
	assert.Equal(t, []string{"b"}, loaded.InterestNames())

	cleared := []string{}
	require.NoError(t, repo.Update(ctx, post.ID, PostChanges{Interests: &cleared}))
	loaded, err = repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Interests)

	assert.ErrorIs(t, repo.Update(ctx, 777, PostChanges{}), gorm.ErrRecordNotFound)
}

func TestPostRepository_GetByIDQueryShape(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1 ORDER BY "posts"."id" LIMIT $2`)).
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	_, err = NewPostRepository(db).GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_UpdateRejectsPostWithoutBody(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := testutil.CreatePost(t, db, "body")

	err := repo.Update(ctx, post.ID, PostChanges{Columns: map[string]interface{}{"content": "", "title": "changed"}})
	require.ErrorIs(t, err, ErrPostWithoutBody)

	loaded, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "body", loaded.Title)
	require.NotNil(t, loaded.Content)
	assert.Equal(t, "body content", *loaded.Content)

	require.NoError(t, repo.Update(ctx, post.ID, PostChanges{Columns: map[string]interface{}{"title": "changed"}}))
}
