package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

const (
	// Системные и неизвестные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"

	// Ошибки запроса
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Аутентификация
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
)
