package sessions

import (
	"encoding/json"
	"time"

	"gamemate_backend/internal/models"
	"gamemate_backend/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CookieName - фиксированное имя cookie с идентификатором сессии
const CookieName = "qid"

// payload - содержимое серверной строки сессии
type payload struct {
	UserID uint `json:"userId"`
}

// Session - сессия конкретного запроса. Сервисы получают ее явным
// параметром, а не читают из глобального состояния запроса: так ядро
// тестируется без живого HTTP-транспорта.
type Session interface {
	// UserID возвращает id залогиненного пользователя, 0 для гостя
	UserID() uint

	// SetUserID логинит пользователя: создает (или обновляет) строку
	// сессии и ставит cookie
	SetUserID(userID uint) error

	// Destroy удаляет строку сессии по ее sid и гасит cookie.
	// Отсутствие строки - не ошибка (logout идемпотентен).
	Destroy() error
}

type Manager struct {
	repo repositories.SessionRepository
	ttl  time.Duration

	// secure ставит флаг Secure на cookie: в проде за HTTPS она не
	// должна уходить по голому http
	secure bool
}

func NewManager(repo repositories.SessionRepository, ttl time.Duration, secure bool) *Manager {
	return &Manager{repo: repo, ttl: ttl, secure: secure}
}

// Bind восстанавливает сессию запроса из cookie. Любая проблема
// (нет cookie, нет строки, строка протухла, битый payload) дает
// гостевую сессию, а не ошибку.
func (m *Manager) Bind(c *gin.Context, db *gorm.DB) Session {
	sess := &ginSession{manager: m, c: c, db: db}

	sid, err := c.Cookie(CookieName)
	if err != nil || sid == "" {
		return sess
	}

	row, err := m.repo.FindBySID(db, sid)
	if err != nil {
		return sess
	}

	if time.Now().After(row.ExpiresAt) {
		_ = m.repo.DeleteBySID(db, sid)
		return sess
	}

	var p payload
	if err := json.Unmarshal(row.Data, &p); err != nil {
		return sess
	}

	sess.sid = sid
	sess.userID = p.UserID
	return sess
}

type ginSession struct {
	manager *Manager
	c       *gin.Context
	db      *gorm.DB
	sid     string
	userID  uint
}

func (s *ginSession) UserID() uint {
	return s.userID
}

func (s *ginSession) SetUserID(userID uint) error {
	data, err := json.Marshal(payload{UserID: userID})
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.manager.ttl)

	if s.sid == "" {
		sid := uuid.NewString()
		row := &models.Session{
			SID:       sid,
			Data:      datatypes.JSON(data),
			ExpiresAt: expiresAt,
		}
		if err := s.manager.repo.Create(s.db, row); err != nil {
			return err
		}
		s.sid = sid
	} else {
		// Повторный логин поверх живой сессии: срок жизни отсчитывается
		// заново, старая сессия не укорачивает новую
		row := &models.Session{SID: s.sid, Data: datatypes.JSON(data), ExpiresAt: expiresAt}
		if err := s.manager.repo.Update(s.db, row); err != nil {
			return err
		}
	}

	s.c.SetCookie(CookieName, s.sid, int(s.manager.ttl.Seconds()), "/", "", s.manager.secure, true)
	s.userID = userID
	return nil
}

func (s *ginSession) Destroy() error {
	if s.sid != "" {
		if err := s.manager.repo.DeleteBySID(s.db, s.sid); err != nil {
			return err
		}
	}

	s.c.SetCookie(CookieName, "", -1, "/", "", s.manager.secure, true)
	s.sid = ""
	s.userID = 0
	return nil
}
