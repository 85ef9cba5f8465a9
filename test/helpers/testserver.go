package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"gamemate_backend/internal/app"
	"gamemate_backend/internal/config"
	"gamemate_backend/internal/database"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestServer - поднятое приложение поверх httptest + подключение к
// тестовой базе. Клиент держит cookie jar: сессионная cookie qid
// переживает цепочку запросов одного теста, как в настоящем браузере.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Client *http.Client
}

// NewTestServer создает тестовый сервер и настраивает тестовую БД
func NewTestServer(t *testing.T) *TestServer {
	// DATABASE_URL уже должен указывать на тестовую базу
	config.LoadConfig()
	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Не удалось подключиться к тестовой БД (%s): %v", dsn, err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Не удалось выполнить AutoMigrate для тестовой БД: %v", err)
	}

	router := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Не удалось создать cookie jar: %v", err)
	}
	client := server.Client()
	client.Jar = jar

	log.Printf("Тестовый сервер запущен, тестовая БД (%s) настроена", dsn)

	return &TestServer{
		Server: server,
		DB:     db,
		Client: client,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// ClearTables очищает все таблицы приложения
func (ts *TestServer) ClearTables(t *testing.T) {
	err := ts.DB.Exec("TRUNCATE TABLE users, languages, schedules, images, user_services, sessions RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("Не удалось очистить таблицы: %v", err)
	}
}

// NewClient возвращает отдельный HTTP-клиент со своим cookie jar -
// независимая "браузерная сессия" внутри одного теста.
func (ts *TestServer) NewClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Не удалось создать cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

// SendRequest шлет запрос клиентом по умолчанию (общий cookie jar)
func (ts *TestServer) SendRequest(t *testing.T, method, path string, body interface{}) (*http.Response, string) {
	return ts.SendRequestAs(t, ts.Client, method, path, body)
}

// SendRequestAs шлет запрос указанным клиентом
func (ts *TestServer) SendRequestAs(t *testing.T, client *http.Client, method, path string, body interface{}) (*http.Response, string) {
	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := client.Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBodyBytes)
}
