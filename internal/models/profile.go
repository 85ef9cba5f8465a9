package models

// Дочерние коллекции профиля. Languages и Schedules живут по схеме
// "полная замена": при обновлении профиля старые строки пользователя
// удаляются и вставляется новый набор целиком, поштучно они не меняются.

type Language struct {
	BaseModel
	Name   string `gorm:"not null" json:"name"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
}

type Schedule struct {
	BaseModel
	Day       string `gorm:"not null" json:"day"`
	Available bool   `gorm:"default:false" json:"available"`
	From      int    `json:"from"`
	To        int    `json:"to"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
}

type Image struct {
	BaseModel
	URL    string `gorm:"not null" json:"url"`
	Usage  string `json:"usage,omitempty"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
}

// UserService - игра/сервис, который пользователь указал в профиле.
type UserService struct {
	BaseModel
	Name   string `gorm:"not null" json:"name"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
}
