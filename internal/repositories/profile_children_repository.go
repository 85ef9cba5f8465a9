package repositories

import (
	"gamemate_backend/internal/models"

	"gorm.io/gorm"
)

// ProfileChildrenRepository - полная замена дочерних коллекций профиля.
type ProfileChildrenRepository interface {
	ReplaceLanguages(db *gorm.DB, userID uint, languages []models.Language) error
	ReplaceSchedules(db *gorm.DB, userID uint, schedules []models.Schedule) error
}

type ProfileChildrenRepositoryImpl struct{}

func NewProfileChildrenRepository() ProfileChildrenRepository {
	return &ProfileChildrenRepositoryImpl{}
}

// ReplaceLanguages удаляет все языки пользователя и вставляет новый набор.
// Пара delete+insert выполняется в одной транзакции: при сбое между
// шагами пользователь не должен остаться без языков вовсе.
func (r *ProfileChildrenRepositoryImpl) ReplaceLanguages(db *gorm.DB, userID uint, languages []models.Language) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Language{}).Error; err != nil {
			return err
		}

		for i := range languages {
			languages[i].UserID = userID
		}

		return tx.Create(&languages).Error
	})
}

// ReplaceSchedules - то же самое для расписаний.
func (r *ProfileChildrenRepositoryImpl) ReplaceSchedules(db *gorm.DB, userID uint, schedules []models.Schedule) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Schedule{}).Error; err != nil {
			return err
		}

		for i := range schedules {
			schedules[i].UserID = userID
		}

		return tx.Create(&schedules).Error
	})
}
