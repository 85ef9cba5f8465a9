package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host       string `yaml:"host"`
		Port       int    `yaml:"port"`
		Env        string `yaml:"env"`
		CORSOrigin string `yaml:"cors_origin"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		Enabled      bool   `yaml:"enabled"`
	} `yaml:"email"`

	Session struct {
		// TTL серверной сессии в часах. Cookie живет столько же.
		TTLHours int `yaml:"ttl_hours"`
	} `yaml:"session"`

	Auth struct {
		// Минимально допустимая длина нового пароля при сбросе.
		// Новый пароль должен быть СТРОГО длиннее этого значения.
		MinPasswordLength int `yaml:"min_password_length"`
	} `yaml:"auth"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	// .env подхватывается, если лежит рядом (не фатально, если нет)
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	// Режим переменных окружения (тесты, контейнеры)
	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Server.CORSOrigin = os.Getenv("CORS_ORIGIN")

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("FROM_EMAIL")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.CORSOrigin == "" {
		cfg.Server.CORSOrigin = "http://localhost:3000"
	}
	if cfg.Session.TTLHours == 0 {
		cfg.Session.TTLHours = 24 * 7
	}
	if cfg.Auth.MinPasswordLength == 0 {
		cfg.Auth.MinPasswordLength = 2
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
