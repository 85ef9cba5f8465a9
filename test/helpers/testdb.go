package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"gamemate_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser создает пользователя напрямую в базе с автоматическим
// хешированием пароля (в PasswordHash можно передать сырой пароль)
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if user.Type == "" {
		user.Type = models.UserTypeUser
	}

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("ОШИБКА: не удалось создать пользователя %s: %v", user.Email, result.Error)
		return result.Error
	}
	return nil
}

// RegisterAndLogin регистрирует уникального пользователя через API
// указанным клиентом: cookie qid оседает в его jar, дальнейшие запросы
// этим клиентом идут уже залогиненными.
func RegisterAndLogin(t *testing.T, ts *TestServer, client *http.Client) *models.User {
	suffix := time.Now().UnixNano()
	username := fmt.Sprintf("player_%d", suffix)

	registerBody := map[string]interface{}{
		"username": username,
		"email":    fmt.Sprintf("%s@test.com", username),
		"password": "password123",
	}

	res, bodyStr := ts.SendRequestAs(t, client, http.MethodPost, "/api/v1/auth/register", registerBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Регистрация должна быть успешной. Ответ: "+bodyStr)

	var result struct {
		User *models.User `json:"user"`
	}
	err := json.Unmarshal([]byte(bodyStr), &result)
	assert.NoError(t, err, "Не удалось распарсить JSON ответа регистрации")
	assert.NotNil(t, result.User, "В ответе регистрации должен быть пользователь")

	return result.User
}
