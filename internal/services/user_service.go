package services

import (
	"strconv"

	"gamemate_backend/internal/models"
	"gamemate_backend/internal/repositories"
	"gamemate_backend/internal/services/dto"
	"gamemate_backend/internal/sessions"
	"gamemate_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetAll(db *gorm.DB) ([]models.User, error)
	Me(db *gorm.DB, sess sessions.Session) (*models.User, error)
	UpdateMe(db *gorm.DB, userID uint, req *dto.UpdateMeRequest) (*models.User, error)
}

type UserServiceImpl struct {
	userRepo     repositories.UserRepository
	childrenRepo repositories.ProfileChildrenRepository
}

func NewUserService(
	userRepo repositories.UserRepository,
	childrenRepo repositories.ProfileChildrenRepository,
) UserService {
	return &UserServiceImpl{
		userRepo:     userRepo,
		childrenRepo: childrenRepo,
	}
}

func (s *UserServiceImpl) GetAll(db *gorm.DB) ([]models.User, error) {
	users, err := s.userRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return users, nil
}

// Me возвращает залогиненного пользователя, nil для гостя
func (s *UserServiceImpl) Me(db *gorm.DB, sess sessions.Session) (*models.User, error) {
	userID := sess.UserID()
	if userID == 0 {
		return nil, nil
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// UpdateMe - частичное обновление профиля.
// Скаляр применяется только при непустом входном значении: очистить
// поле пустой строкой нельзя (известное ограничение контракта, на
// него полагается клиент). Непустой список языков/расписаний целиком
// заменяет существующий набор, пустой - оставляет его как есть.
func (s *UserServiceImpl) UpdateMe(db *gorm.DB, userID uint, req *dto.UpdateMeRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}

	applyScalars(user, req)

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if len(req.Languages) > 0 {
		languages := make([]models.Language, 0, len(req.Languages))
		for _, l := range req.Languages {
			languages = append(languages, models.Language{Name: l.Name})
		}
		if err := s.childrenRepo.ReplaceLanguages(db, userID, languages); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if len(req.Schedules) > 0 {
		schedules := make([]models.Schedule, 0, len(req.Schedules))
		for _, sc := range req.Schedules {
			from, err := strconv.Atoi(sc.From)
			if err != nil {
				return nil, apperrors.NewBadRequestError("schedule 'from' is not an integer: " + sc.From)
			}
			to, err := strconv.Atoi(sc.To)
			if err != nil {
				return nil, apperrors.NewBadRequestError("schedule 'to' is not an integer: " + sc.To)
			}
			schedules = append(schedules, models.Schedule{
				Day:       sc.Day,
				Available: sc.Available,
				From:      from,
				To:        to,
			})
		}
		if err := s.childrenRepo.ReplaceSchedules(db, userID, schedules); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	// Перечитываем, чтобы отдать профиль с актуальными коллекциями
	updated, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return updated, nil
}

func applyScalars(user *models.User, req *dto.UpdateMeRequest) {
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Description != "" {
		user.Description = req.Description
	}
	if req.Age != nil && !req.Age.IsZero() {
		user.Age = req.Age
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.Country != "" {
		user.Country = req.Country
	}

	// Социальные сети
	if req.Discord != "" {
		user.Discord = req.Discord
	}
	if req.Twitter != "" {
		user.Twitter = req.Twitter
	}
	if req.Facebook != "" {
		user.Facebook = req.Facebook
	}
	if req.Snapchat != "" {
		user.Snapchat = req.Snapchat
	}
	if req.Instagram != "" {
		user.Instagram = req.Instagram
	}
	if req.Twitch != "" {
		user.Twitch = req.Twitch
	}
	if req.Steam != "" {
		user.Steam = req.Steam
	}
	if req.TikTok != "" {
		user.TikTok = req.TikTok
	}
}
