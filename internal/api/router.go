package api

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"status-backend/config"
	"status-backend/internal/filecache"
	"status-backend/internal/mw"
	"status-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, fc *filecache.Cache) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	handler := NewHandler(cfg, s, fc)

	// Visit counting sits in front of everything; the allow-list decides
	// which paths actually land in the counters.
	if cfg.Metrics.Enabled {
		r.Use(mw.Metrics(s))
	}

	r.GET("/", handler.Root)
	r.GET("/static/*filepath", handler.Static)

	api := r.Group("/api")
	api.Use(mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst))
	{
		api.GET("/query", handler.Query)
		api.GET("/status/list", handler.StatusList)
		api.GET("/status", handler.GetStatus)
		api.GET("/private", handler.GetPrivate)
		api.GET("/metrics", handler.GetMetrics)

		authed := api.Group("")
		authed.Use(mw.RequireSecret(cfg.Server.Secret))
		{
			authed.POST("/status", handler.SetStatus)
			authed.POST("/private", handler.SetPrivate)
			authed.POST("/device/set", handler.SetDevice)
			authed.POST("/device/remove", handler.RemoveDevice)
			authed.POST("/device/clear", handler.ClearDevices)
			authed.GET("/device/:id", handler.GetDevice)
			authed.GET("/plugin/:id", handler.GetPluginData)
			authed.POST("/plugin/:id", handler.SetPluginData)
		}
	}

	return r
}
