package models

// Interest is a named tag attached to posts through the post_interest table.
type Interest struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:200;not null" json:"description"`
}
