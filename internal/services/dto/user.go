package dto

import (
	"time"

	"gamemate_backend/internal/models"
)

// FieldError - бизнес-ошибка уровня поля. Возвращается клиенту как данные
// в успешном ответе (не как HTTP-ошибка), чтобы UI мог подсветить поле.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// UserResult - ответ auth-операций: либо пользователь, либо список
// ошибок полей. Хеш пароля наружу не сериализуется никогда (json:"-"
// на модели).
type UserResult struct {
	User   *models.User `json:"user,omitempty"`
	Errors []FieldError `json:"errors,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ChangePasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type LanguageInput struct {
	Name string `json:"name" validate:"required"`
}

type ScheduleInput struct {
	Day       string `json:"day" validate:"required,is-day"`
	Available bool   `json:"available"`
	// From/To приходят строками и приводятся к int на сервере
	From string `json:"from"`
	To   string `json:"to"`
}

// UpdateMeRequest - частичное обновление профиля. Скалярное поле
// применяется только если в нем непустое значение: пустая строка
// (и нулевая дата) молча игнорируется, а не затирает колонку.
// Известное ограничение контракта: очистить поле этим путем нельзя.
type UpdateMeRequest struct {
	Username    string     `json:"username"`
	Description string     `json:"description"`
	Age         *time.Time `json:"age"`
	Gender      string     `json:"gender"`
	Country     string     `json:"country"`

	Discord   string `json:"discord"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Snapchat  string `json:"snapchat"`
	Instagram string `json:"instagram"`
	Twitch    string `json:"twitch"`
	Steam     string `json:"steam"`
	TikTok    string `json:"tiktok"`

	// Непустой список - полная замена; пустой - существующие строки
	// не трогаем (очистить список до нуля этим путем тоже нельзя).
	Languages []LanguageInput `json:"languages" validate:"dive"`
	Schedules []ScheduleInput `json:"schedules" validate:"dive"`
}
