package services

import (
	"context"
	"fmt"
	"strings"

	"gamemate_backend/internal/config"
	"gamemate_backend/internal/email"
	"gamemate_backend/internal/logger"
	"gamemate_backend/internal/models"
	"gamemate_backend/internal/repositories"
	"gamemate_backend/internal/services/dto"
	"gamemate_backend/internal/sessions"
	"gamemate_backend/pkg/apperrors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService - операции аутентификации. Бизнес-ошибки уровня поля
// ("занято", "неверный пароль") возвращаются в dto.UserResult как данные,
// error остается только для настоящих сбоев (база недоступна и т.п.).
type AuthService interface {
	Register(db *gorm.DB, sess sessions.Session, req *dto.RegisterRequest) (*dto.UserResult, error)
	Login(db *gorm.DB, sess sessions.Session, req *dto.LoginRequest) (*dto.UserResult, error)
	Logout(ctx context.Context, sess sessions.Session) bool
	ForgotPassword(db *gorm.DB, emailAddr string) error
	ChangePassword(db *gorm.DB, sess sessions.Session, req *dto.ChangePasswordRequest) (*dto.UserResult, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	emailProvider email.Provider
	cfg           *config.Config
}

func NewAuthService(
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	cfg *config.Config,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		emailProvider: emailProvider,
		cfg:           cfg,
	}
}

// Register - регистрация нового пользователя.
// Дубликат email/username разрешает уникальный индекс базы: при
// конфликте вставки возвращаем ошибку поля и НЕ трогаем сессию.
func (s *AuthServiceImpl) Register(db *gorm.DB, sess sessions.Session, req *dto.RegisterRequest) (*dto.UserResult, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Type:         models.UserTypeUser,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return &dto.UserResult{
				Errors: []dto.FieldError{
					{Field: "username", Message: "username already taken"},
				},
			}, nil
		}
		// Любая другая ошибка базы - настоящий сбой, а не ответ
		// с неопределенным пользователем
		return nil, apperrors.InternalError(err)
	}

	// Кладем id в сессию - новый пользователь сразу залогинен
	if err := sess.SetUserID(user.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UserResult{User: user}, nil
}

// Login - вход по email или username.
// Строка с '@' трактуется как email, любая другая - как username.
func (s *AuthServiceImpl) Login(db *gorm.DB, sess sessions.Session, req *dto.LoginRequest) (*dto.UserResult, error) {
	var user *models.User
	var err error

	if strings.Contains(req.UsernameOrEmail, "@") {
		user, err = s.userRepo.FindByEmail(db, req.UsernameOrEmail)
	} else {
		user, err = s.userRepo.FindByUsername(db, req.UsernameOrEmail)
	}

	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return &dto.UserResult{
				Errors: []dto.FieldError{
					{Field: "usernameOrEmail", Message: "that username doesn't exist"},
				},
			}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return &dto.UserResult{
			Errors: []dto.FieldError{
				{Field: "password", Message: "incorrect password"},
			},
		}, nil
	}

	if err := sess.SetUserID(user.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UserResult{User: user}, nil
}

// Logout - выход. Строка сессии удаляется по sid из cookie, cookie
// гасится. Отсутствие строки считается успехом (уже разлогинен),
// сбой удаления логируется и дает false.
func (s *AuthServiceImpl) Logout(ctx context.Context, sess sessions.Session) bool {
	if err := sess.Destroy(); err != nil {
		logger.CtxWithError(ctx, "failed to destroy session", err)
		return false
	}
	return true
}

// ForgotPassword - запрос сброса пароля.
// Существование email не раскрывается: для незнакомого адреса ответ
// тот же, просто без побочных эффектов. У пользователя одновременно
// живет не больше одного токена - новый перезаписывает старый.
func (s *AuthServiceImpl) ForgotPassword(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	user.ResetToken = uuid.NewString()
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}

	s.sendPasswordResetEmail(user.Email, user.ResetToken)
	return nil
}

// ChangePassword - установка нового пароля по reset-токену.
// Токен одноразовый: после успеха колонка сбрасывается в пустую строку
// (сентинел "сброса нет"), повторная попытка с тем же токеном провалится.
func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, sess sessions.Session, req *dto.ChangePasswordRequest) (*dto.UserResult, error) {
	minLen := s.cfg.Auth.MinPasswordLength
	if len(req.NewPassword) <= minLen {
		return &dto.UserResult{
			Errors: []dto.FieldError{
				{Field: "newPassword", Message: fmt.Sprintf("length must be greater than %d", minLen)},
			},
		}, nil
	}

	user, err := s.userRepo.FindByResetToken(db, req.Token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			// Сообщение историческое: так отвечаем на ЛЮБОЙ
			// несовпавший токен, не только на протухший
			return &dto.UserResult{
				Errors: []dto.FieldError{
					{Field: "token", Message: "token expired"},
				},
			}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user.PasswordHash = string(hashedPassword)
	user.ResetToken = ""
	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Сразу логиним - пользователь только что доказал владение почтой
	if err := sess.SetUserID(user.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UserResult{User: user}, nil
}

// sendPasswordResetEmail отправляет письмо со ссылкой для сброса пароля
func (s *AuthServiceImpl) sendPasswordResetEmail(to, token string) {
	if s.emailProvider == nil {
		return
	}

	link := fmt.Sprintf("%s/change-password/%s", s.cfg.Server.CORSOrigin, token)
	html := fmt.Sprintf(`<a href="%s">reset password</a>`, link)

	go func() {
		if err := s.emailProvider.Send(to, "Password Reset", html); err != nil {
			logger.Error("failed to send password reset email", "error", err, "to", to)
		}
	}()
}
