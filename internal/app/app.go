package app

import (
	"context"
	"database/sql"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"chargelog/internal/config"
	httpserver "chargelog/internal/http"
	"chargelog/internal/http/handlers"
	"chargelog/internal/http/middleware"
	"chargelog/internal/password"
	redisstore "chargelog/internal/redis"
	"chargelog/internal/repository"
	"chargelog/internal/service"
	"chargelog/internal/ws"
	"chargelog/libs/db"
	libredis "chargelog/libs/redis"
)

// App wires chargelog dependencies.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	redis  *goredis.Client
	logger *zap.Logger
}

// New constructs application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	redisClient, err := libredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	tokenTTL := time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute

	userRepo := repository.NewUserRepository(sqlDB)
	chargeRepo := repository.NewChargeRepository(sqlDB)
	settingsRepo := repository.NewSettingsRepository(sqlDB)

	sessions := redisstore.NewSessionStore(redisClient, tokenTTL)
	hasher := password.NewBcryptHasher(0)
	tokenService := service.NewTokenService(cfg.Auth.Secret, tokenTTL)
	authService := service.NewAuthService(userRepo, hasher, tokenService, sessions, logger)

	hub := ws.NewHub(logger)
	chargeService := service.NewChargeService(chargeRepo, settingsRepo, hub, logger)
	settingsService := service.NewSettingsService(settingsRepo, hub, logger)

	deps := httpserver.RouterDeps{
		AuthHandlers:     handlers.NewAuthHandlers(authService, logger),
		ChargesHandlers:  handlers.NewChargesHandlers(chargeService, logger),
		SettingsHandlers: handlers.NewSettingsHandlers(settingsService, logger),
		StatsHandlers:    handlers.NewStatsHandlers(chargeService, logger),
		WSHandler:        handlers.NewWSHandler(authService, hub, logger),
		HealthHandler:    handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(deps, middleware.Auth(authService))
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		db:     sqlDB,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
