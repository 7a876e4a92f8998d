package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/drivespace/drivespace/internal/cache"
	"github.com/drivespace/drivespace/internal/config"
	"github.com/drivespace/drivespace/internal/db"
	"github.com/drivespace/drivespace/internal/repository"
	"github.com/drivespace/drivespace/internal/service"
	"github.com/drivespace/drivespace/internal/storage"
)

type App struct {
	Cfg          *config.Config
	DB           *sqlx.DB
	Cache        *cache.Cache
	AuthService  *service.AuthService
	UserService  *service.UserService
	EmailService *service.EmailService
	FileService  *service.FileService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	fileRepository := repository.NewFileRepository(database)

	// Blob storage
	blobStore, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Response cache (no-op without a Redis address)
	responseCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.IsProduction(), cfg.JWTExpiry)
	userService := service.NewUserService(userRepository)
	fileService := service.NewFileService(fileRepository, blobStore, responseCache, emailService)

	return &App{
		Cfg:          cfg,
		DB:           database,
		Cache:        responseCache,
		AuthService:  authService,
		UserService:  userService,
		EmailService: emailService,
		FileService:  fileService,
	}, nil
}

func (a *App) Close() error {
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			return err
		}
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
