package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/docwell/editor-server/internal/config"
	"github.com/docwell/editor-server/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	deps   *deps
	logger *zap.Logger
}

// New initializes the application: clients, storage, routes.
func New(ctx context.Context, logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	d, err := loadDeps(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics())
	router.Use(cors.New(corsConfig(cfg)))

	app := &App{cfg: cfg, router: router, deps: d, logger: logger}
	app.registerRoutes()

	logger.Info("app initialized",
		zap.String("env", cfg.Env),
		zap.String("text_provider", cfg.AI.TextProvider),
		zap.String("storage", d.store.Driver()),
		zap.Bool("database", d.db != nil),
		zap.Bool("redis", d.redis != nil),
	)
	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return a.cfg.Addr() }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases database and redis connections.
func (a *App) Shutdown() { a.deps.close() }

func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		c.AllowOriginFunc = func(origin string) bool { return originAllowed(patterns, origin) }
	} else {
		c.AllowOriginFunc = func(origin string) bool { return true }
	}
	return c
}
