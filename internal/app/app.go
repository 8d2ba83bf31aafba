package app

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"cdvtrack/internal/config"
	"cdvtrack/internal/db"
	httpserver "cdvtrack/internal/http"
	"cdvtrack/internal/http/handlers"
	"cdvtrack/internal/http/middleware"
	"cdvtrack/internal/password"
	"cdvtrack/internal/repository"
	"cdvtrack/internal/service"
	"cdvtrack/internal/session"
	"cdvtrack/internal/token"
)

// App wires the CDV server dependency graph.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	redis  *goredis.Client
	logger *zap.Logger
}

// New builds the application graph and runs startup tasks (schema migration,
// bootstrap user, optional station seed).
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("app: connect postgres: %w", err)
	}

	if err := db.Migrate(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	redisClient, err := session.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("app: connect redis: %w", err)
	}

	store := repository.NewStore(sqlDB)
	sessions := session.NewStore(redisClient, cfg.SessionTTL())
	hasher := password.NewBcryptHasher(0)
	tokens := token.NewService(cfg.JWT.Secret, cfg.JWTExpiration())

	authSvc := service.NewAuthService(store, hasher, logger)
	readingsSvc := service.NewReadingsService(store, logger)
	reportSvc := service.NewReportService(store, logger)

	if err := authSvc.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		sqlDB.Close()
		redisClient.Close()
		return nil, fmt.Errorf("app: bootstrap user: %w", err)
	}
	for _, name := range cfg.SeedStations() {
		if err := store.EnsureStation(ctx, name); err != nil {
			sqlDB.Close()
			redisClient.Close()
			return nil, fmt.Errorf("app: seed station %q: %w", name, err)
		}
	}

	templates, err := handlers.NewTemplates(logger)
	if err != nil {
		sqlDB.Close()
		redisClient.Close()
		return nil, err
	}

	routes := httpserver.Routes{
		Index:        handlers.NewIndexHandler(store, templates, logger),
		Login:        handlers.NewLoginHandler(authSvc, sessions, templates),
		Logout:       handlers.NewLogoutHandler(sessions),
		RegisterPage: handlers.NewRegisterPageHandler(store, templates, logger),
		SaveReadings: handlers.NewSaveReadingsHandler(readingsSvc, sessions, logger),
		ReportPage:   handlers.NewReportPageHandler(store, templates, logger),
		Report:       handlers.NewReportHandler(reportSvc, logger),
		Token:        handlers.NewTokenHandler(authSvc, tokens),
		Health:       handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(routes, middleware.Auth(sessions, tokens))
	server := httpserver.NewServer(
		cfg.HTTPAddress(),
		router,
		logger,
		middleware.Recovery(logger),
		middleware.Logging(logger),
	)

	return &App{
		server: server,
		db:     sqlDB,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases acquired resources.
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
