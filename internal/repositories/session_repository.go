package repositories

import (
	"errors"
	"time"

	"gamemate_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(db *gorm.DB, session *models.Session) error
	FindBySID(db *gorm.DB, sid string) (*models.Session, error)
	Update(db *gorm.DB, session *models.Session) error
	DeleteBySID(db *gorm.DB, sid string) error
	DeleteExpired(db *gorm.DB) error
}

type SessionRepositoryImpl struct{}

func NewSessionRepository() SessionRepository {
	return &SessionRepositoryImpl{}
}

func (r *SessionRepositoryImpl) Create(db *gorm.DB, session *models.Session) error {
	return db.Create(session).Error
}

func (r *SessionRepositoryImpl) FindBySID(db *gorm.DB, sid string) (*models.Session, error) {
	var session models.Session
	err := db.First(&session, "sid = ?", sid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Update перезаписывает payload и срок жизни существующей сессии
func (r *SessionRepositoryImpl) Update(db *gorm.DB, session *models.Session) error {
	return db.Model(session).Updates(map[string]interface{}{
		"data":       session.Data,
		"expires_at": session.ExpiresAt,
	}).Error
}

// DeleteBySID удаляет строку сессии напрямую по sid из cookie.
// Отсутствующая строка - не ошибка: logout идемпотентен.
func (r *SessionRepositoryImpl) DeleteBySID(db *gorm.DB, sid string) error {
	return db.Where("sid = ?", sid).Delete(&models.Session{}).Error
}

func (r *SessionRepositoryImpl) DeleteExpired(db *gorm.DB) error {
	return db.Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error
}
