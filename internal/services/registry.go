package services

import "gamemate_backend/internal/email"

// ServiceContainer собирает все сервисы приложения в одном месте
type ServiceContainer struct {
	AuthService  AuthService
	UserService  UserService
	EmailService email.Provider
}
