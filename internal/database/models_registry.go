package database

import "pressroom/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Publisher{},
		&models.Interest{},
		&models.Post{},
		&models.PostModification{},
	}
}
