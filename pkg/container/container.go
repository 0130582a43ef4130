package container

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"gameshelf-backend/internal/config"
	infraCache "gameshelf-backend/internal/infrastructure/cache"
	"gameshelf-backend/internal/infrastructure/database"
	"gameshelf-backend/internal/infrastructure/storage"
	"gameshelf-backend/internal/infrastructure/webhook"
	"gameshelf-backend/pkg/cache"
	"gameshelf-backend/pkg/jwt"
	"gameshelf-backend/pkg/logger"

	categoryHandler "gameshelf-backend/internal/domains/category/handler"
	categoryRepo "gameshelf-backend/internal/domains/category/repository"
	gameHandler "gameshelf-backend/internal/domains/game/handler"
	gameRepo "gameshelf-backend/internal/domains/game/repository"
	gameService "gameshelf-backend/internal/domains/game/service"
	languageHandler "gameshelf-backend/internal/domains/language/handler"
	languageRepo "gameshelf-backend/internal/domains/language/repository"
	submissionHandler "gameshelf-backend/internal/domains/submission/handler"
	submissionRepo "gameshelf-backend/internal/domains/submission/repository"
	submissionService "gameshelf-backend/internal/domains/submission/service"
	userHandler "gameshelf-backend/internal/domains/user/handler"
	userRepo "gameshelf-backend/internal/domains/user/repository"
	userService "gameshelf-backend/internal/domains/user/service"
)

// Container holds the application dependency graph. Everything in it is
// a singleton built once at startup, in dependency order.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	Notifier   webhook.Notifier
	JWTManager *jwt.Manager
	TaskClient *asynq.Client

	LanguageRepo   languageRepo.LanguageRepository
	CategoryRepo   categoryRepo.CategoryRepository
	GameRepo       gameRepo.GameRepository
	SubmissionRepo submissionRepo.SubmissionRepository
	UserRepo       userRepo.UserRepository

	GameService       gameService.GameService
	SubmissionService submissionService.SubmissionService
	UserService       userService.UserService

	LanguageHandler   *languageHandler.LanguageHandler
	CategoryHandler   *categoryHandler.CategoryHandler
	GameHandler       *gameHandler.GameHandler
	SubmissionHandler *submissionHandler.SubmissionHandler
	UserHandler       *userHandler.UserHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}
	ctx := context.Background()

	// Config first, nothing depends on more than that
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c.Config = cfg

	// Database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx, c.DB.Pool); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Redis cache
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache

	// Object storage
	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = minioStorage

	// Outbound notifications, disabled when no URL is configured
	c.Notifier = webhook.NewHTTPNotifier(cfg.Webhook)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	c.TaskClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
	})

	// Repositories
	c.LanguageRepo = languageRepo.NewPostgresLanguageRepository(c.DB.Pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.GameRepo = gameRepo.NewPostgresRepository(c.DB.Pool)
	c.SubmissionRepo = submissionRepo.NewPostgresRepository(c.DB.Pool)
	c.UserRepo = userRepo.NewPostgresRepository(c.DB.Pool)

	// Services
	c.GameService = gameService.NewGameService(
		c.GameRepo, c.CategoryRepo, c.TaskClient, c.Notifier, cfg.Catalog.DefaultLanguageID)
	c.SubmissionService = submissionService.NewSubmissionService(
		c.DB.Pool, c.SubmissionRepo, c.GameRepo, c.CategoryRepo, c.Notifier, cfg.Catalog.DefaultLanguageID)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)

	// Handlers
	c.LanguageHandler = languageHandler.NewLanguageHandler(c.LanguageRepo)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryRepo)
	c.GameHandler = gameHandler.NewGameHandler(c.GameService, c.Storage, storage.NewImageProcessor())
	c.SubmissionHandler = submissionHandler.NewSubmissionHandler(c.SubmissionService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)

	logger.Info("Container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})
	return c, nil
}

// Cleanup closes external connections in reverse order of creation.
func (c *Container) Cleanup() {
	if c.TaskClient != nil {
		if err := c.TaskClient.Close(); err != nil {
			logger.Warn("failed to close task client", err)
		}
	}
	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				logger.Warn("failed to close redis", err)
			}
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Warn("failed to close database", err)
		}
	}
}
