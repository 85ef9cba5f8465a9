package models

import (
	"time"

	"gorm.io/datatypes"
)

// Session - серверная запись сессии. SID попадает к клиенту в cookie,
// Data содержит как минимум userId залогиненного пользователя.
type Session struct {
	SID       string         `gorm:"primaryKey" json:"sid"`
	Data      datatypes.JSON `gorm:"type:jsonb" json:"data"`
	ExpiresAt time.Time      `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time      `gorm:"default:now()" json:"created_at"`
}
