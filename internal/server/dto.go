package server

import (
	"time"

	"pressroom/internal/models"

	"github.com/jinzhu/copier"
)

// PublisherRef is the public face of a post's publisher.
type PublisherRef struct {
	Name string `json:"name"`
}

// PostSummary is a post as it appears in a feed.
type PostSummary struct {
	ID           uint          `json:"id"`
	Title        string        `json:"title"`
	ShortContent *string       `json:"short_content"`
	Link         *string       `json:"link"`
	PublishedAt  *time.Time    `json:"published_at"`
	CreatedAt    time.Time     `json:"created_at"`
	Likes        int           `json:"likes"`
	Dislikes     int           `json:"dislikes"`
	Publisher    *PublisherRef `json:"publisher" copier:"-"`
	Interests    []string      `json:"interests" copier:"-"`
}

// PostDetail is a single post with its body and payloads.
type PostDetail struct {
	PostSummary
	Content       *string `json:"content"`
	PreviewImage  []byte  `json:"preview_image"`
	BinaryContent []byte  `json:"binary_content"`
	Followup      *uint   `json:"followup"`
}

// InterestResponse is an entry of the interest catalogue.
type InterestResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PublisherResponse is what any authenticated caller may see of a publisher.
type PublisherResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreatedPublisherResponse carries the one-time password of a new publisher.
type CreatedPublisherResponse struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreatedPostResponse is returned by post and follow-up creation.
type CreatedPostResponse struct {
	ID uint `json:"id"`
}

// TokenResponse is returned by token issuance. Expiration is the token
// lifetime in seconds.
type TokenResponse struct {
	Token      string `json:"token"`
	Expiration int    `json:"expiration"`
}

func newPostSummary(post *models.Post) (PostSummary, error) {
	var out PostSummary
	if err := copier.Copy(&out, post); err != nil {
		return out, err
	}
	if post.Publisher != nil {
		out.Publisher = &PublisherRef{Name: post.Publisher.Name}
	}
	out.Interests = post.InterestNames()
	return out, nil
}

func newPostSummaries(posts []*models.Post) ([]PostSummary, error) {
	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		summary, err := newPostSummary(p)
		if err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, nil
}

func newPostDetail(post *models.Post) (PostDetail, error) {
	summary, err := newPostSummary(post)
	if err != nil {
		return PostDetail{}, err
	}
	return PostDetail{
		PostSummary:   summary,
		Content:       post.Content,
		PreviewImage:  post.PreviewImage,
		BinaryContent: post.BinaryContent,
		Followup:      post.FollowupID,
	}, nil
}

func newInterestResponses(interests []models.Interest) ([]InterestResponse, error) {
	out := make([]InterestResponse, 0, len(interests))
	if err := copier.Copy(&out, &interests); err != nil {
		return nil, err
	}
	return out, nil
}

func newPublisherResponse(p *models.Publisher) (PublisherResponse, error) {
	var out PublisherResponse
	err := copier.Copy(&out, p)
	return out, err
}
