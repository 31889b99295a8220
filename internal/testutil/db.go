// Package testutil provides shared fixtures for backend tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"pressroom/internal/database"
	"pressroom/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory sqlite database with the full schema.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, dbSeq.Add(1))
	db, err := database.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("access sql DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// CreatePublisher inserts a publisher with the given email and password.
func CreatePublisher(t testing.TB, db *gorm.DB, email, password string, fullAdmin bool) *models.Publisher {
	t.Helper()
	p := &models.Publisher{Name: strings.Split(email, "@")[0], Email: email, FullAdmin: fullAdmin}
	if password != "" {
		if err := p.SetPassword(password); err != nil {
			t.Fatalf("hash password: %v", err)
		}
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create publisher: %v", err)
	}
	return p
}

// CreateInterest inserts an interest.
func CreateInterest(t testing.TB, db *gorm.DB, name string) *models.Interest {
	t.Helper()
	in := &models.Interest{Name: name, Description: name + " posts"}
	if err := db.Create(in).Error; err != nil {
		t.Fatalf("create interest: %v", err)
	}
	return in
}

// PostOption customises CreatePost.
type PostOption func(*models.Post)

// PublishedAt sets the publication time.
func PublishedAt(ts time.Time) PostOption {
	return func(p *models.Post) {
		utc := ts.UTC()
		p.PublishedAt = &utc
	}
}

// CreatedAt overrides the creation time.
func CreatedAt(ts time.Time) PostOption {
	return func(p *models.Post) { p.CreatedAt = ts.UTC() }
}

// WithBinary attaches a binary payload.
func WithBinary(b []byte) PostOption {
	return func(p *models.Post) { p.BinaryContent = b }
}

// WithInterests attaches existing interests.
func WithInterests(in ...*models.Interest) PostOption {
	return func(p *models.Post) {
		for _, i := range in {
			p.Interests = append(p.Interests, *i)
		}
	}
}

// ByPublisher sets the owning publisher.
func ByPublisher(pub *models.Publisher) PostOption {
	return func(p *models.Post) { p.PublisherID = &pub.ID }
}

// CreatePost inserts a post titled title. Without options it is an
// anonymous draft.
func CreatePost(t testing.TB, db *gorm.DB, title string, opts ...PostOption) *models.Post {
	t.Helper()
	content := title + " content"
	p := &models.Post{Title: title, Content: &content}
	for _, opt := range opts {
		opt(p)
	}
	if err := db.Omit("Interests.*").Create(p).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}
