// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"strings"
	"time"

	"pressroom/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db    *gorm.DB
	faker *gofakeit.Faker
	now   time.Time
	// maxDays bounds how far back generated publish dates reach.
	maxDays int
	// password is the shared plaintext for generated publishers.
	password string

	emails    map[string]bool
	interests map[string]bool
}

// NewFactory creates a Factory bound to db. A zero seed picks a random one.
func NewFactory(db *gorm.DB, seed int64, maxDays int, password string) *Factory {
	if maxDays <= 0 {
		maxDays = 90
	}
	return &Factory{
		db:        db,
		faker:     gofakeit.New(seed),
		now:       time.Now().UTC(),
		maxDays:   maxDays,
		password:  password,
		emails:    map[string]bool{},
		interests: map[string]bool{},
	}
}

func (f *Factory) uniqueEmail() string {
	for {
		email := strings.ToLower(f.faker.Email())
		if !f.emails[email] {
			f.emails[email] = true
			return email
		}
	}
}

// CreatePublisher persists a publisher with the factory password.
func (f *Factory) CreatePublisher(overrides ...func(*models.Publisher)) (*models.Publisher, error) {
	p := &models.Publisher{
		Name:  f.faker.Name(),
		Email: f.uniqueEmail(),
	}
	for _, override := range overrides {
		override(p)
	}
	f.emails[p.Email] = true
	if err := p.SetPassword(f.password); err != nil {
		return nil, err
	}
	return p, f.db.Create(p).Error
}

// CreateInterest persists an interest with a name not used by this factory before.
// It gives up after a bounded number of collisions and reports ok=false.
func (f *Factory) CreateInterest() (*models.Interest, bool, error) {
	for attempt := 0; attempt < 50; attempt++ {
		name := strings.ToLower(f.faker.Hobby())
		if f.interests[name] {
			continue
		}
		f.interests[name] = true
		in := &models.Interest{Name: name, Description: f.faker.Sentence(6)}
		return in, true, f.db.Create(in).Error
	}
	return nil, false, nil
}

// BuildPost constructs an unsaved post. Roughly one in ten is a draft,
// one in twenty is scheduled and one in five carries a media payload.
func (f *Factory) BuildPost(publisher *models.Publisher, interests []models.Interest) *models.Post {
	short := f.faker.Sentence(12)
	post := &models.Post{
		Title:        strings.TrimSuffix(f.faker.Sentence(5), "."),
		ShortContent: &short,
		Likes:        f.faker.Number(0, 500),
		Dislikes:     f.faker.Number(0, 50),
	}
	if publisher != nil {
		post.PublisherID = &publisher.ID
	}

	if f.faker.Number(1, 4) == 1 {
		link := f.faker.URL()
		post.Link = &link
	} else {
		content := f.faker.Paragraph(2, 4, 12, "\n\n")
		post.Content = &content
	}

	switch roll := f.faker.Number(1, 20); {
	case roll <= 2:
		// draft
	case roll == 3:
		scheduled := f.now.Add(time.Duration(f.faker.Number(1, 72)) * time.Hour)
		post.PublishedAt = &scheduled
	default:
		published := f.now.Add(-time.Duration(f.faker.Number(1, f.maxDays*24*60)) * time.Minute)
		post.PublishedAt = &published
	}

	if f.faker.Number(1, 5) == 1 {
		post.BinaryContent = f.faker.ImageJpeg(16, 16)
		post.PreviewImage = f.faker.ImagePng(4, 4)
	}

	if len(interests) > 0 {
		n := f.faker.Number(0, min(3, len(interests)))
		picked := map[uint]bool{}
		for i := 0; i < n; i++ {
			in := interests[f.faker.Number(0, len(interests)-1)]
			if !picked[in.ID] {
				picked[in.ID] = true
				post.Interests = append(post.Interests, in)
			}
		}
	}
	return post
}

// CreatePostsBatch persists posts and their interest links.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Omit("Interests.*").CreateInBatches(posts, 100).Error
}

// LinkFollowup points prior at next.
func (f *Factory) LinkFollowup(prior, next *models.Post) error {
	return f.db.Model(&models.Post{}).Where("id = ?", prior.ID).Update("followup_id", next.ID).Error
}
