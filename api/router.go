package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/pricebot/api/handler"
	"github.com/use-agent/pricebot/api/middleware"
	"github.com/use-agent/pricebot/cache"
	"github.com/use-agent/pricebot/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(chk handler.Checker, cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(chk, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Price check
	protected.POST("/check", handler.Check(chk, cfg.Check.Product, cfg.Check.Website, cc))

	return r
}
