package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"gamemate_backend/internal/models"
	"gamemate_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAuthFlow - регистрация, /me под cookie, logout, /me снова гость
func TestAuthFlow(t *testing.T) {
	// 1. Подготовка (Arrange)
	ts := GetTestServer(t)
	client := ts.NewClient(t)

	suffix := time.Now().UnixNano()
	username := fmt.Sprintf("flow_%d", suffix)
	registerBody := map[string]interface{}{
		"username": username,
		"email":    fmt.Sprintf("%s@test.com", username),
		"password": "super_password123",
	}

	// 2. Действие: Регистрация (Act)
	regRes, regBodyStr := ts.SendRequestAs(t, client, http.MethodPost, "/api/v1/auth/register", registerBody)

	// 3. Проверка: Регистрация (Assert)
	assert.Equal(t, http.StatusOK, regRes.StatusCode)
	assert.Contains(t, regBodyStr, username)
	assert.NotContains(t, regBodyStr, "errors")
	t.Logf("РЕГИСТРАЦИЯ: Успешно. Ответ: %s", regBodyStr)

	// --- Шаг 2: /me с cookie из регистрации ---
	meRes, meBodyStr := ts.SendRequestAs(t, client, http.MethodGet, "/api/v1/users/me", nil)
	assert.Equal(t, http.StatusOK, meRes.StatusCode)
	assert.Contains(t, meBodyStr, username)
	t.Logf("ME (ЗАЛОГИНЕН): Успешно. Ответ: %s", meBodyStr)

	// --- Шаг 3: Logout ---
	outRes, outBodyStr := ts.SendRequestAs(t, client, http.MethodPost, "/api/v1/auth/logout", nil)
	assert.Equal(t, http.StatusOK, outRes.StatusCode)
	assert.Equal(t, "true", outBodyStr)

	// --- Шаг 4: /me после logout - гость ---
	meRes2, meBodyStr2 := ts.SendRequestAs(t, client, http.MethodGet, "/api/v1/users/me", nil)
	assert.Equal(t, http.StatusOK, meRes2.StatusCode)
	assert.Equal(t, "null", meBodyStr2)
	t.Logf("ME (ПОСЛЕ LOGOUT): Успешно гость. Ответ: %s", meBodyStr2)
}

// TestRegister_Duplicate - дубликат дает ошибку поля, а не HTTP-ошибку
func TestRegister_Duplicate(t *testing.T) {
	// 1. Подготовка
	ts := GetTestServer(t)
	client := ts.NewClient(t)

	suffix := time.Now().UnixNano()
	username := fmt.Sprintf("dup_%d", suffix)
	body := map[string]interface{}{
		"username": username,
		"email":    fmt.Sprintf("%s@test.com", username),
		"password": "password_is_long_enough_123",
	}

	firstRes, _ := ts.SendRequestAs(t, client, http.MethodPost, "/api/v1/auth/register", body)
	require.Equal(t, http.StatusOK, firstRes.StatusCode)

	// 2. Действие: Повторная регистрация с теми же данными, другой клиент
	client2 := ts.NewClient(t)
	dupRes, dupBodyStr := ts.SendRequestAs(t, client2, http.MethodPost, "/api/v1/auth/register", body)

	// 3. Проверка: статус 200, ошибка лежит в данных
	assert.Equal(t, http.StatusOK, dupRes.StatusCode)
	assert.Contains(t, dupBodyStr, "username already taken")

	// Cookie второму клиенту не выдана - /me отвечает гостем
	meRes, meBodyStr := ts.SendRequestAs(t, client2, http.MethodGet, "/api/v1/users/me", nil)
	assert.Equal(t, http.StatusOK, meRes.StatusCode)
	assert.Equal(t, "null", meBodyStr)
	t.Logf("ДУБЛИКАТ: Успешно. Ответ: %s", dupBodyStr)
}

// TestLogin_BadPassword - неверный пароль
func TestLogin_BadPassword(t *testing.T) {
	// 1. Подготовка
	ts := GetTestServer(t)

	suffix := time.Now().UnixNano()
	user := &models.User{
		Username:     fmt.Sprintf("badpass_%d", suffix),
		Email:        fmt.Sprintf("badpass_%d@test.com", suffix),
		PasswordHash: "correct-password",
	}
	err := helpers.CreateUser(t, ts.DB, user)
	require.NoError(t, err)

	// 2. Действие: Логин с неверным паролем
	client := ts.NewClient(t)
	loginBody := map[string]interface{}{
		"usernameOrEmail": user.Email,
		"password":        "WRONG-password",
	}
	logRes, logBodyStr := ts.SendRequestAs(t, client, http.MethodPost, "/api/v1/auth/login", loginBody)

	// 3. Проверка
	assert.Equal(t, http.StatusOK, logRes.StatusCode)
	assert.Contains(t, logBodyStr, "incorrect password")
	t.Logf("НЕВЕРНЫЙ ПАРОЛЬ: Успешно. Ответ: %s", logBodyStr)
}

// TestLogin_ByUsernameAndEmail - вход работает и по username, и по email
func TestLogin_ByUsernameAndEmail(t *testing.T) {
	// 1. Подготовка
	ts := GetTestServer(t)

	suffix := time.Now().UnixNano()
	user := &models.User{
		Username:     fmt.Sprintf("login_%d", suffix),
		Email:        fmt.Sprintf("login_%d@test.com", suffix),
		PasswordHash: "correct-password",
	}
	err := helpers.CreateUser(t, ts.DB, user)
	require.NoError(t, err)

	// 2-3. Действие и проверка: по username
	client := ts.NewClient(t)
	res, bodyStr := ts.SendRequestAs(t, client, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"usernameOrEmail": user.Username,
		"password":        "correct-password",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, user.Username)

	// По email, свежий клиент
	client2 := ts.NewClient(t)
	res2, bodyStr2 := ts.SendRequestAs(t, client2, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"usernameOrEmail": user.Email,
		"password":        "correct-password",
	})
	assert.Equal(t, http.StatusOK, res2.StatusCode)
	assert.Contains(t, bodyStr2, user.Username)
	t.Logf("ЛОГИН: Успешно обоими способами")
}

// TestLogout_Guest - logout без сессии идемпотентен
func TestLogout_Guest(t *testing.T) {
	ts := GetTestServer(t)
	client := ts.NewClient(t)

	res, bodyStr := ts.SendRequestAs(t, client, http.MethodPost, "/api/v1/auth/logout", nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "true", bodyStr)
}

// TestForgotPassword_UnknownEmail - ответ не раскрывает, есть ли адрес
func TestForgotPassword_UnknownEmail(t *testing.T) {
	ts := GetTestServer(t)
	client := ts.NewClient(t)

	body := map[string]interface{}{
		"email": fmt.Sprintf("stranger_%d@test.com", time.Now().UnixNano()),
	}
	res, bodyStr := ts.SendRequestAs(t, client, http.MethodPost, "/api/v1/auth/forgot-password", body)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "true", bodyStr)
}

// TestChangePassword_Flow - полный цикл сброса пароля через токен из базы
func TestChangePassword_Flow(t *testing.T) {
	// 1. Подготовка
	ts := GetTestServer(t)

	suffix := time.Now().UnixNano()
	user := &models.User{
		Username:     fmt.Sprintf("reset_%d", suffix),
		Email:        fmt.Sprintf("reset_%d@test.com", suffix),
		PasswordHash: "old-password",
	}
	err := helpers.CreateUser(t, ts.DB, user)
	require.NoError(t, err)

	// 2. Действие: запрос сброса
	client := ts.NewClient(t)
	res, bodyStr := ts.SendRequestAs(t, client, http.MethodPost, "/api/v1/auth/forgot-password", map[string]interface{}{
		"email": user.Email,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "true", bodyStr)

	// Токен достаем напрямую из базы (в проде он уходит письмом)
	var stored models.User
	err = ts.DB.First(&stored, "id = ?", user.ID).Error
	require.NoError(t, err)
	require.NotEmpty(t, stored.ResetToken)

	// 3. Смена пароля по токену
	chRes, chBodyStr := ts.SendRequestAs(t, client, http.MethodPost, "/api/v1/auth/change-password", map[string]interface{}{
		"token":       stored.ResetToken,
		"newPassword": "brand-new-password",
	})
	assert.Equal(t, http.StatusOK, chRes.StatusCode)
	assert.Contains(t, chBodyStr, user.Username)

	// После смены пользователь сразу залогинен этой же cookie
	meRes, meBodyStr := ts.SendRequestAs(t, client, http.MethodGet, "/api/v1/users/me", nil)
	assert.Equal(t, http.StatusOK, meRes.StatusCode)
	assert.Contains(t, meBodyStr, user.Username)

	// Новый пароль работает, повторный токен - нет
	client2 := ts.NewClient(t)
	logRes, _ := ts.SendRequestAs(t, client2, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"usernameOrEmail": user.Email,
		"password":        "brand-new-password",
	})
	assert.Equal(t, http.StatusOK, logRes.StatusCode)

	reuseRes, reuseBodyStr := ts.SendRequestAs(t, client2, http.MethodPost, "/api/v1/auth/change-password", map[string]interface{}{
		"token":       stored.ResetToken,
		"newPassword": "yet-another-password",
	})
	assert.Equal(t, http.StatusOK, reuseRes.StatusCode)
	assert.Contains(t, reuseBodyStr, "token expired")
	t.Logf("СБРОС ПАРОЛЯ: Полный цикл успешен")
}

// TestChangePassword_ShortPassword - ошибка длины возвращается как данные
func TestChangePassword_ShortPassword(t *testing.T) {
	ts := GetTestServer(t)
	client := ts.NewClient(t)

	res, bodyStr := ts.SendRequestAs(t, client, http.MethodPost, "/api/v1/auth/change-password", map[string]interface{}{
		"token":       "irrelevant-token",
		"newPassword": "ab",
	})

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var result struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	err := json.Unmarshal([]byte(bodyStr), &result)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "newPassword", result.Errors[0].Field)
}
