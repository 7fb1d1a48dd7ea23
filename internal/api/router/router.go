package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"session-tracker/config"
	"session-tracker/internal/api/handler"
	"session-tracker/internal/api/middleware"
	"session-tracker/internal/repository"
	"session-tracker/pkg/jwt"
	"session-tracker/pkg/metrics"
	"session-tracker/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil：黑名单与限流降级放行
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, repo *repository.Repository, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// 避免把 nil *redis.Client 装进非 nil 接口
	var (
		blacklist middleware.TokenBlacklist
		limiter   middleware.RateLimiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := repo.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── Prometheus 指标 ──
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, blacklist, repo.User, logger))
	{
		// 作业模块
		homework := v1.Group("/homework")
		{
			homework.GET("", h.Homework.ListMyHomework)
			homework.POST("", h.Homework.CreateHomework)
			homework.GET("/session/:sessionId", h.Homework.ListBySession)
			homework.GET("/admin/all", middleware.AdminOnly(), h.Homework.ListAllHomework)
			homework.GET("/admin/export", middleware.AdminOnly(), h.Homework.ExportHomework)
			homework.GET("/:id", h.Homework.GetHomework)    // 所有者或管理员（Service 层鉴权）
			homework.PUT("/:id", h.Homework.UpdateHomework) // 同上
			homework.DELETE("/:id", h.Homework.DeleteHomework)
		}

		// 会话模块
		sessions := v1.Group("/sessions")
		{
			sessions.GET("", h.Session.ListSessions)
			sessions.GET("/:id", h.Session.GetSession)
			sessions.POST("", middleware.AdminOnly(), h.Session.CreateSession)
			sessions.PUT("/:id", middleware.AdminOnly(), h.Session.UpdateSession)
			sessions.DELETE("/:id", middleware.AdminOnly(), h.Session.DeleteSession)

			// 会话详情（每个用户每个会话一条）
			sessions.GET("/:id/details", h.Session.GetMyDetail)
			sessions.PUT("/:id/details", h.Session.UpsertMyDetail)
			sessions.GET("/:id/all-details", middleware.AdminOnly(), h.Session.ListAllDetails)
		}

		// 通知模块
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", h.Notification.ListNotifications)
			notifications.PUT("/read-all", h.Notification.MarkAllRead)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
			notifications.POST("/homework-reminders",
				middleware.AdminOnly(),
				middleware.RateLimit(limiter, cfg.Reminder.RateLimit, cfg.Reminder.RateWindow),
				h.Notification.SweepHomeworkReminders,
			)
			notifications.POST("/test", h.Notification.CreateTest)
		}
	}

	return r
}
