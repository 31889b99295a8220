package seed

import (
	"fmt"
	"log/slog"

	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/security"

	"gorm.io/gorm"
)

// AdminEmail is the login of the full-admin publisher every seed creates.
const AdminEmail = "admin@pressroom.local"

// Options configuration for the seeder
type Options struct {
	NumPublishers int
	NumPosts      int
	NumInterests  int
	ShouldClean   bool
	// MaxDays bounds how old generated posts can be.
	MaxDays int
	// Seed makes the generated data reproducible; zero picks a random seed.
	Seed int64
}

// Result reports what a seed run created. AdminPassword is only known here.
type Result struct {
	AdminPassword     string
	PublisherPassword string
	Publishers        int
	Interests         int
	Posts             int
	Followups         int
}

// Seed populates the database with demo data and a fixed full-admin account.
func Seed(db *gorm.DB, opts Options) (*Result, error) {
	log := middleware.Logger.With(slog.String("component", "seed"))
	log.Info("starting database seeding",
		slog.Int("publishers", opts.NumPublishers), slog.Int("posts", opts.NumPosts), slog.Int("interests", opts.NumInterests))

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return nil, fmt.Errorf("failed to clear data: %w", err)
		}
	}

	var existing int64
	if err := db.Model(&models.Publisher{}).Where("email = ?", AdminEmail).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%s already exists; rerun with clean", AdminEmail)
	}

	adminPassword, err := security.GeneratePassword(security.GeneratedPasswordLength)
	if err != nil {
		return nil, err
	}
	publisherPassword, err := security.GeneratePassword(security.GeneratedPasswordLength)
	if err != nil {
		return nil, err
	}

	f := NewFactory(db, opts.Seed, opts.MaxDays, adminPassword)
	res := &Result{AdminPassword: adminPassword, PublisherPassword: publisherPassword}

	admin, err := f.CreatePublisher(func(p *models.Publisher) {
		p.Name = "admin"
		p.Email = AdminEmail
		p.FullAdmin = true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	publishers := []*models.Publisher{admin}
	f.password = publisherPassword

	for i := 0; i < opts.NumPublishers; i++ {
		p, err := f.CreatePublisher()
		if err != nil {
			return nil, fmt.Errorf("failed to create publisher: %w", err)
		}
		publishers = append(publishers, p)
	}
	res.Publishers = len(publishers)
	log.Info("publishers created", slog.Int("count", res.Publishers))

	var interests []models.Interest
	for i := 0; i < opts.NumInterests; i++ {
		in, ok, err := f.CreateInterest()
		if err != nil {
			return nil, fmt.Errorf("failed to create interest: %w", err)
		}
		if !ok {
			log.Warn("ran out of distinct interest names", slog.Int("created", len(interests)))
			break
		}
		interests = append(interests, *in)
	}
	res.Interests = len(interests)
	log.Info("interests created", slog.Int("count", res.Interests))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		var owner *models.Publisher
		// Every eighth post is anonymous.
		if i%8 != 7 {
			owner = publishers[i%len(publishers)]
		}
		posts = append(posts, f.BuildPost(owner, interests))
	}
	if err := f.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("failed to create posts: %w", err)
	}
	res.Posts = len(posts)

	for i := 0; i+1 < len(posts); i += 10 {
		if err := f.LinkFollowup(posts[i], posts[i+1]); err != nil {
			return nil, fmt.Errorf("failed to link follow-up: %w", err)
		}
		res.Followups++
	}
	log.Info("posts created", slog.Int("count", res.Posts), slog.Int("followups", res.Followups))

	log.Info("database seeding completed")
	return res, nil
}

// clearData removes every row the seeder can create, children first.
func clearData(db *gorm.DB) error {
	middleware.Logger.Info("clearing existing data")
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_interest").Error; err != nil {
			return err
		}
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Model(&models.Post{}).Update("followup_id", nil).Error; err != nil {
			return err
		}
		for _, model := range []interface{}{&models.PostModification{}, &models.Post{}, &models.Interest{}, &models.Publisher{}} {
			if err := all.Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
