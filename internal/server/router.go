package server

import (
	"time"

	"refermark-server/pkg/config"
	"refermark-server/pkg/health"
	"refermark-server/pkg/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Router bundles the engine with the authenticated /api group so service
// modules can register routes on either.
type Router struct {
	Engine *gin.Engine
	API    *gin.RouterGroup
}

func NewRouter(cfg *config.Config, h health.Service) *Router {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	e := gin.New()
	e.Use(gin.Recovery())
	e.Use(requestLogger())
	e.Use(middleware.Error())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	e.Use(cors.New(corsCfg))

	e.GET("/healthz", h.Liveness)
	e.GET("/readyz", h.Readiness)

	api := e.Group("/api", middleware.Auth(cfg.JWT.Secret))

	return &Router{Engine: e, API: api}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		zap.L().Info("http.request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
