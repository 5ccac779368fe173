package app

import (
	"context"
	"fmt"

	"kanbanify/internal/app/auth"
	"kanbanify/internal/app/board"
	"kanbanify/internal/app/health"
	"kanbanify/internal/app/session"
	"kanbanify/internal/app/theme"
	"kanbanify/internal/app/user"
	"kanbanify/internal/config"
	"kanbanify/internal/db"
	"kanbanify/internal/db/seeder"
	"kanbanify/internal/gateways/websocket"
	"kanbanify/internal/kvstore"
	"kanbanify/internal/providers/redis"
	"kanbanify/internal/router"
	"kanbanify/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Application struct {
	Router *router.Router
	Hub    *websocket.Hub
	Seeder *seeder.Seeder
	Store  *Storage
}

// Storage is the configured key-value backend and the connection behind it.
type Storage struct {
	KV    kvstore.Store
	DB    *gorm.DB
	Redis *redis.RedisProvider
}

func (s *Storage) Close() error {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			return fmt.Errorf("close redis: %w", err)
		}
	}
	if s.DB != nil {
		sqlDB, err := s.DB.DB()
		if err != nil {
			return fmt.Errorf("close db: %w", err)
		}
		return sqlDB.Close()
	}
	return nil
}

func OpenStorage(cfg *config.Config, logger *zap.Logger) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return &Storage{KV: kvstore.NewMemoryStore(logger)}, nil

	case config.StorageRedis:
		provider := redis.NewRedisProvider(cfg.RedisURL, logger, cfg.RedisTTL)
		return &Storage{KV: kvstore.NewRedisStore(provider, logger), Redis: provider}, nil

	case config.StoragePostgres, config.StorageSQLite:
		dbConn, err := db.Connect(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(dbConn, logger); err != nil {
			return nil, err
		}
		return &Storage{KV: kvstore.NewGormStore(dbConn, logger), DB: dbConn}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// Bootstrap wires every service onto the configured storage. The returned
// hub is not running yet; call Start.
func Bootstrap(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	storage, err := OpenStorage(cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Storage ready", zap.String("driver", cfg.StorageDriver))

	eventBus := utils.NewEventBus()
	store := storage.KV

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := auth.NewService(auth.NewRepository(store), session.NewRepository(store), tokens, logger)
	userService := user.NewService(user.NewRepository(store, logger), logger)
	boardService := board.NewService(store, eventBus, logger)
	themeService := theme.NewService(store, logger)

	seed := seeder.NewSeeder(authService, userService, boardService, logger)

	hub := websocket.NewHub(logger, eventBus, boardService, authService, cfg.AuthRequired)

	checker := &utils.HealthChecker{DB: storage.DB, Storage: cfg.StorageDriver}
	if storage.Redis != nil {
		checker.Redis = storage.Redis.Client
	}

	r := router.NewRouter(logger, cfg.FrontendURL, authService, cfg.AuthRequired)
	r.RegisterHealthRoutes(health.NewHandler(health.NewService(checker)))
	r.RegisterMetricsRoutes()
	r.RegisterWebSocketRoutes(hub)
	r.RegisterAuthRoutes(auth.NewHandler(authService, logger))
	r.RegisterUserRoutes(user.NewHandler(userService, logger))
	r.RegisterThemeRoutes(theme.NewHandler(themeService))
	r.RegisterBoardRoutes(board.NewHandler(boardService))

	return &Application{
		Router: r,
		Hub:    hub,
		Seeder: seed,
		Store:  storage,
	}, nil
}

// Start seeds demo data when enabled and runs the hub until ctx is done.
func (a *Application) Start(ctx context.Context, cfg *config.Config, logger *zap.Logger) {
	if cfg.SeedDemoData {
		if err := a.Seeder.Seed(ctx); err != nil {
			logger.Warn("Failed to run seeders", zap.Error(err))
		}
	}
	go a.Hub.Run(ctx)
}
