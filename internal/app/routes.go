package app

import (
	"github.com/gin-gonic/gin"
	"github.com/slipframe/core/internal/middleware"
	"github.com/slipframe/core/internal/modules/carousel"
	"github.com/slipframe/core/internal/modules/exporter"
	"github.com/slipframe/core/internal/modules/generate"
	"github.com/slipframe/core/internal/pkg/jobtrack"
	pkgredis "github.com/slipframe/core/internal/pkg/redis"
	"github.com/slipframe/core/internal/pkg/response"
	"go.uber.org/zap"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	overrides := carousel.NewOverrideStore(rc)
	deckSvc := carousel.NewService(a.db, overrides, a.logger)

	tracker := jobtrack.New(rc)
	var uploader *exporter.Uploader
	if a.cfg.Storage.Enable {
		u, err := exporter.NewUploader(a.cfg.Storage)
		if err != nil {
			a.logger.Warn("object storage disabled", zap.Error(err))
		} else {
			uploader = u
		}
	}
	orch := exporter.NewOrchestrator(a.fonts, a.cfg.Export, tracker, uploader, a.logger)

	genSvc := generate.NewService(a.cfg.AI, deckSvc, a.logger)

	api := a.router.Group("/api/v1")
	api.Use(middleware.RateLimit(rc.Raw()))

	api.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	authMW := middleware.Auth()
	carousel.NewHandler(deckSvc, a.fonts).RegisterRoutes(api, authMW)
	exporter.NewHandler(deckSvc, orch, tracker).RegisterRoutes(api, authMW)
	generate.NewHandler(genSvc).RegisterRoutes(api, authMW)

	a.router.NoRoute(func(c *gin.Context) { response.NotFound(c) })
	a.router.NoMethod(func(c *gin.Context) { response.MethodNotAllowed(c) })
}
