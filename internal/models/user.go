package models

import "time"

type UserType string

const (
	UserTypeGuest UserType = "guest"
	UserTypeUser  UserType = "user"
)

type User struct {
	BaseModel
	// Уникальность обеспечивается только по email; username индексируется
	// для поиска при логине, но не уникален
	Username     string   `gorm:"index;not null" json:"username"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Type         UserType `gorm:"type:varchar(20);default:'user'" json:"type"`

	// Профиль
	Description string     `json:"description,omitempty"`
	Age         *time.Time `gorm:"type:timestamptz" json:"age,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	Country     string     `json:"country,omitempty"`

	// Социальные сети
	Discord   string `json:"discord,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Snapchat  string `json:"snapchat,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitch    string `json:"twitch,omitempty"`
	Steam     string `json:"steam,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`

	// ResetToken - одноразовый токен сброса пароля.
	// Пустая строка означает "нет ожидающего сброса" (сентинел, не NULL):
	// на пользователя одновременно действует не больше одного токена,
	// новый запрос перезаписывает предыдущий.
	ResetToken string `json:"-"`

	// Relations
	Languages []Language    `gorm:"foreignKey:UserID" json:"languages,omitempty"`
	Schedules []Schedule    `gorm:"foreignKey:UserID" json:"schedules,omitempty"`
	Images    []Image       `gorm:"foreignKey:UserID" json:"images,omitempty"`
	Services  []UserService `gorm:"foreignKey:UserID" json:"services,omitempty"`
}
