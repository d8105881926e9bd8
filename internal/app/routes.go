package app

import (
	"time"

	"github.com/docwell/editor-server/internal/middleware"
	"github.com/docwell/editor-server/internal/modules/content/document"
	"github.com/docwell/editor-server/internal/modules/media/image"
	"github.com/docwell/editor-server/internal/modules/media/unsplash"
	"github.com/docwell/editor-server/internal/modules/media/video"
	"github.com/docwell/editor-server/internal/modules/processing/ai"
	"github.com/docwell/editor-server/internal/modules/storage/file"
	"github.com/docwell/editor-server/internal/modules/system/diagnostics"
	"github.com/docwell/editor-server/internal/pkg/apierr"
	"github.com/docwell/editor-server/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var processStart = time.Now()

func (a *App) registerRoutes() {
	r := a.router
	cfg := a.cfg
	d := a.deps

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{
			"name":   "editor-server",
			"env":    cfg.Env,
			"uptime": int64(time.Since(processStart).Seconds()),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if local, ok := d.store.(*file.LocalStore); ok {
		r.Static(file.LocalURLPrefix, local.Dir())
	}

	api := r.Group("/api")

	// AI and media routes hit paid providers; limit them per caller.
	limited := []gin.HandlerFunc{
		middleware.OptionalAuth(d.verifier),
		middleware.RateLimit(d.redis, cfg.RateLimit.Max, cfg.RateLimit.Window, a.logger),
	}

	aiLog := a.logger.Named("ai")
	aiSvc := ai.NewService(d.text, cfg.TextModels(), aiLog)
	ai.NewHandler(aiSvc, aiLog).RegisterRoutes(api, limited...)

	imageSvc := image.NewService(cfg.Stability, d.http, d.store)
	image.NewHandler(imageSvc, a.logger.Named("image")).RegisterRoutes(api, limited...)

	videoSvc := video.NewService(cfg.AI.OpenAIAPIKey, cfg.Video.BaseURL, cfg.Video.Model, d.http)
	video.NewHandler(videoSvc, a.logger.Named("video")).RegisterRoutes(api, limited...)

	unsplashSvc := unsplash.NewService(cfg.Unsplash.AccessKey, cfg.Unsplash.BaseURL, d.http)
	unsplash.NewHandler(unsplashSvc, a.logger.Named("unsplash")).RegisterRoutes(api, limited...)

	diagSvc := diagnostics.NewService(diagnosticsKeys(cfg), d.diagnosticsOptions(cfg))
	diagnostics.NewHandler(diagSvc).RegisterRoutes(api)

	authMW := middleware.Auth(d.verifier)
	if d.db != nil {
		docLog := a.logger.Named("documents")
		docSvc := document.NewService(document.NewRepository(d.db), d.store, docLog)
		document.NewHandler(docSvc, docLog).RegisterRoutes(api, authMW)
	} else {
		g := api.Group("/documents", authMW)
		g.GET("", documentsDisabled)
		g.POST("", documentsDisabled)
		g.GET("/:id", documentsDisabled)
		g.PATCH("/:id", documentsDisabled)
		g.DELETE("/:id", documentsDisabled)
	}
}

func documentsDisabled(c *gin.Context) {
	response.Error(c, apierr.Configuration("Document storage not configured"))
}
