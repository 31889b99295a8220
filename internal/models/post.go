// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post is a unit of published content.
// It is publicly visible iff PublishedAt is set and not in the future.
type Post struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	PublisherID  *uint      `gorm:"index" json:"publisher_id"`
	Publisher    *Publisher `gorm:"foreignKey:PublisherID;constraint:OnDelete:SET NULL" json:"publisher,omitempty"`
	FollowupID   *uint      `json:"followup_id"`
	Followup     *Post      `gorm:"foreignKey:FollowupID;constraint:OnDelete:SET NULL" json:"-"`
	Title        string     `gorm:"size:200;not null" json:"title"`
	ShortContent *string    `gorm:"size:500" json:"short_content"`
	Content      *string    `gorm:"size:8000" json:"content"`
	Link         *string    `gorm:"size:500" json:"link"`
	CreatedAt    time.Time  `gorm:"not null;index" json:"created_at"`
	PublishedAt  *time.Time `gorm:"index" json:"published_at"`
	Likes        int        `gorm:"not null;default:0" json:"likes"`
	Dislikes     int        `gorm:"not null;default:0" json:"dislikes"`
	PreviewImage []byte     `json:"preview_image"`
	// BinaryContent holds an opaque media payload; media feeds require it.
	BinaryContent []byte     `json:"binary_content"`
	Interests     []Interest `gorm:"many2many:post_interest;constraint:OnDelete:CASCADE" json:"interests"`
}

// IsVisibleAt reports whether the post is published as of now.
func (p *Post) IsVisibleAt(now time.Time) bool {
	return p.PublishedAt != nil && !p.PublishedAt.After(now)
}

// InterestNames returns the names of the attached interests, in stored order.
func (p *Post) InterestNames() []string {
	names := make([]string, 0, len(p.Interests))
	for _, in := range p.Interests {
		names = append(names, in.Name)
	}
	return names
}

// PostModification records an edit of a post. Nothing writes to it yet.
type PostModification struct {
	ID uint `gorm:"primaryKey" json:"id"`
}
