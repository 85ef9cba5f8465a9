package app

import (
	"fmt"
	"time"

	"gamemate_backend/internal/config"
	"gamemate_backend/internal/database"
	"gamemate_backend/internal/email"
	"gamemate_backend/internal/handlers"
	"gamemate_backend/internal/logger"
	"gamemate_backend/internal/middleware"
	"gamemate_backend/internal/repositories"
	"gamemate_backend/internal/routes"
	"gamemate_backend/internal/services"
	"gamemate_backend/internal/sessions"
	"gamemate_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	go startSessionCleanup(gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	// --- Инициализация репозиториев ---
	userRepo := repositories.NewUserRepository()
	childrenRepo := repositories.NewProfileChildrenRepository()
	sessionRepo := repositories.NewSessionRepository()

	secureCookies := cfg.Server.Env == "production"
	sessionManager := sessions.NewManager(sessionRepo, time.Duration(cfg.Session.TTLHours)*time.Hour, secureCookies)

	// --- Email провайдер ---
	var emailProvider email.Provider
	if cfg.Email.Enabled {
		emailProvider = email.NewSMTPProvider(cfg)
	} else {
		logger.Warn("Email delivery disabled, using mock provider")
		emailProvider = email.NewMockProvider()
	}

	// --- Инициализация сервисов ---
	serviceContainer := &services.ServiceContainer{
		AuthService:  services.NewAuthService(userRepo, emailProvider, cfg),
		UserService:  services.NewUserService(userRepo, childrenRepo),
		EmailService: emailProvider,
	}

	// --- Инициализация хендлеров ---
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)
	appHandlers := &handlers.AppHandlers{
		AuthHandler: handlers.NewAuthHandler(baseHandler, serviceContainer.AuthService),
		UserHandler: handlers.NewUserHandler(baseHandler, serviceContainer.UserService),
	}

	ginRouter := initializeGinRouter(cfg, gormDB, sessionManager)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, sessionManager *sessions.Manager) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigin))
	router.Use(middleware.DBMiddleware(db))
	router.Use(middleware.SessionMiddleware(sessionManager))
	return router
}

// startSessionCleanup периодически выметает протухшие строки сессий
func startSessionCleanup(db *gorm.DB) {
	sessionRepo := repositories.NewSessionRepository()

	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := sessionRepo.DeleteExpired(db); err != nil {
			logger.Error("failed to clean expired sessions", "error", err)
		}
	}
}
