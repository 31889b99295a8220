package models

import (
	"time"

	"pressroom/internal/security"
)

// Publisher is an account allowed to write posts. Email is the login.
type Publisher struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:256" json:"name"`
	Email        string    `gorm:"size:512;uniqueIndex" json:"email"`
	PasswordHash *string   `gorm:"size:200" json:"-"`
	FullAdmin    bool      `gorm:"not null;default:false" json:"full_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SetPassword replaces the stored hash with a fresh hash of password.
// The plaintext is never kept.
func (p *Publisher) SetPassword(password string) error {
	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	p.PasswordHash = &hash
	return nil
}

// CheckPassword reports whether password matches the stored hash.
// A publisher without a password never matches.
func (p *Publisher) CheckPassword(password string) bool {
	if p.PasswordHash == nil {
		return false
	}
	return security.CheckPassword(*p.PasswordHash, password)
}
