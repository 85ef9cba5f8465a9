package database

import (
	"gamemate_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Language{},
		&models.Schedule{},
		&models.Image{},
		&models.UserService{},
		&models.Session{},
	)
}
