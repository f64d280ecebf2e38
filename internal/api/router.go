package api

import (
	"time"

	"HandballStats/internal/config"
	"HandballStats/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewRouter 创建 gin 引擎并注册全部路由
func NewRouter(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(logger), cors.New(corsConfig(cfg.CORS)))

	// 注册 pprof 方便调试和监测性能问题
	if cfg.Server.Pprof {
		pprof.Register(r)
		logger.Info("pprof 已注册: /debug/pprof")
	}

	healthHandler := NewHealthHandler(db, logger)
	r.GET("/", healthHandler.Root)
	r.GET("/healthz", healthHandler.Healthz)

	matchHandler := NewMatchHandler(db, logger)
	eventHandler := NewEventHandler(db, logger)

	api := r.Group("/api")
	{
		api.POST("/matches/start", matchHandler.StartMatch)
		api.GET("/matches", matchHandler.ListMatches)
		api.GET("/matches/:id", matchHandler.GetMatch)
		api.GET("/matches/:id/events", eventHandler.ListMatchEvents)

		api.POST("/events", eventHandler.RecordEvent)
		api.POST("/events/undo", eventHandler.UndoEvent)
		api.DELETE("/events/undo", eventHandler.UndoEvent)
	}

	return r
}

// corsConfig 未配置来源时允许任意来源
func corsConfig(c config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(c.AllowOrigins) == 0 || (len(c.AllowOrigins) == 1 && c.AllowOrigins[0] == "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = c.AllowOrigins
	}
	return cc
}

func requestLogger(c *gin.Context, logger *logrus.Logger) *logrus.Entry {
	return middleware.Entry(c, logger)
}
