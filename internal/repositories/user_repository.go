package repositories

import (
	"errors"
	"time"

	"gamemate_backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// pgUniqueViolation - код ошибки постгреса для нарушения уникального индекса
const pgUniqueViolation = "23505"

type UserRepository interface {
	FindByID(db *gorm.DB, id uint) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByUsername(db *gorm.DB, username string) (*models.User, error)
	FindByResetToken(db *gorm.DB, token string) (*models.User, error)
	FindAll(db *gorm.DB) ([]models.User, error)
	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := db.Preload("Languages").Preload("Schedules").Preload("Images").Preload("Services").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByResetToken находит пользователя по токену сброса пароля.
// Пустой токен не матчится никогда: пустая строка - сентинел "сброса нет".
func (r *UserRepositoryImpl) FindByResetToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	err := db.Where("reset_token = ? AND reset_token != ''", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindAll(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Preload("Languages").Preload("Schedules").Preload("Images").Preload("Services").
		Order("created_at DESC").Find(&users).Error
	return users, err
}

// Create вставляет пользователя. Дубликат email/username не проверяется
// предварительным SELECT: гонку двух одновременных регистраций разрешает
// только уникальный индекс в базе, поэтому ловим именно ошибку вставки.
func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	err := db.Create(user).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrUserAlreadyExists
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	result := db.Model(user).Updates(map[string]interface{}{
		"username":      user.Username,
		"type":          user.Type,
		"description":   user.Description,
		"age":           user.Age,
		"gender":        user.Gender,
		"country":       user.Country,
		"discord":       user.Discord,
		"twitter":       user.Twitter,
		"facebook":      user.Facebook,
		"snapchat":      user.Snapchat,
		"instagram":     user.Instagram,
		"twitch":        user.Twitch,
		"steam":         user.Steam,
		"tik_tok":       user.TikTok,
		"password_hash": user.PasswordHash,
		"reset_token":   user.ResetToken,
		"updated_at":    time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
