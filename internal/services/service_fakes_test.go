package services

import (
	"gamemate_backend/internal/models"
	"gamemate_backend/internal/repositories"

	"gorm.io/gorm"
)

// Фейки репозиториев и сессии для юнит-тестов сервисов: вся бизнес-логика
// (хеширование, токены, замена коллекций, работа с сессией) проверяется
// без живой базы. Параметр db фейки игнорируют, в тестах он nil.

type fakeUserRepo struct {
	nextID   uint
	users    map[uint]*models.User
	children *fakeChildrenRepo

	// принудительная ошибка для проверки веток сбоев
	failCreate error
	failUpdate error
}

func newFakeUserRepo(children *fakeChildrenRepo) *fakeUserRepo {
	return &fakeUserRepo{
		nextID:   1,
		users:    make(map[uint]*models.User),
		children: children,
	}
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id uint) (*models.User, error) {
	stored, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	user := *stored
	if r.children != nil {
		user.Languages = append([]models.Language(nil), r.children.languages[id]...)
		user.Schedules = append([]models.Schedule(nil), r.children.schedules[id]...)
	}
	return &user, nil
}

func (r *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	for _, stored := range r.users {
		if stored.Email == email {
			user := *stored
			return &user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(_ *gorm.DB, username string) (*models.User, error) {
	for _, stored := range r.users {
		if stored.Username == username {
			user := *stored
			return &user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByResetToken(_ *gorm.DB, token string) (*models.User, error) {
	// Пустой токен не матчится, как и в SQL-версии
	if token == "" {
		return nil, repositories.ErrUserNotFound
	}
	for _, stored := range r.users {
		if stored.ResetToken == token {
			user := *stored
			return &user, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(_ *gorm.DB) ([]models.User, error) {
	users := make([]models.User, 0, len(r.users))
	for _, stored := range r.users {
		users = append(users, *stored)
	}
	return users, nil
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	// Уникальный индекс стоит только на email
	for _, stored := range r.users {
		if stored.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Update(_ *gorm.DB, user *models.User) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	stored := *user
	stored.Languages = nil
	stored.Schedules = nil
	r.users[user.ID] = &stored
	return nil
}

type fakeChildrenRepo struct {
	languages map[uint][]models.Language
	schedules map[uint][]models.Schedule
}

func newFakeChildrenRepo() *fakeChildrenRepo {
	return &fakeChildrenRepo{
		languages: make(map[uint][]models.Language),
		schedules: make(map[uint][]models.Schedule),
	}
}

func (r *fakeChildrenRepo) ReplaceLanguages(_ *gorm.DB, userID uint, languages []models.Language) error {
	for i := range languages {
		languages[i].UserID = userID
	}
	r.languages[userID] = append([]models.Language(nil), languages...)
	return nil
}

func (r *fakeChildrenRepo) ReplaceSchedules(_ *gorm.DB, userID uint, schedules []models.Schedule) error {
	for i := range schedules {
		schedules[i].UserID = userID
	}
	r.schedules[userID] = append([]models.Schedule(nil), schedules...)
	return nil
}

// fakeSession записывает вызовы, cookie и строк в базе у нее нет
type fakeSession struct {
	userID     uint
	setCalls   []uint
	destroyed  bool
	setErr     error
	destroyErr error
}

func (s *fakeSession) UserID() uint {
	return s.userID
}

func (s *fakeSession) SetUserID(userID uint) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.setCalls = append(s.setCalls, userID)
	s.userID = userID
	return nil
}

func (s *fakeSession) Destroy() error {
	if s.destroyErr != nil {
		return s.destroyErr
	}
	s.destroyed = true
	s.userID = 0
	return nil
}
