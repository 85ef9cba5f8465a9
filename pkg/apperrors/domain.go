package apperrors

import "net/http"

// Предопределенные ошибки домена аутентификации и профиля.

// ErrNotAuthenticated - запрос без действующей сессии к защищенной операции.
var ErrNotAuthenticated = New(
	CodeUnauthorized,
	"auth",
	"Not authenticated",
	http.StatusUnauthorized,
)
