package handlers

// AppHandlers собирает все хендлеры приложения
type AppHandlers struct {
	AuthHandler *AuthHandler
	UserHandler *UserHandler
}
