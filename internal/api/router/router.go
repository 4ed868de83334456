package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/config"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/api/handler"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/api/middleware"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/pkg/jwt"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil：黑名单检查与限流随之降级
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	var (
		blacklist middleware.TokenBlacklist
		limiter   middleware.RateLimiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "ok", "database": "ok"}
		code := http.StatusOK
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
				status["status"], status["database"] = "degraded", "unreachable"
				code = http.StatusServiceUnavailable
			}
		}
		if rdb == nil {
			status["redis"] = "disabled"
		}
		c.JSON(code, status)
	})

	generateLimit := middleware.RateLimit(limiter, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	adminOnly := middleware.RoleAuth(model.RoleAdmin)
	staff := middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher)

	// ── API v1（全部需要认证）──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, blacklist, logger))
	{
		// 开课模块
		offerings := v1.Group("/offerings")
		{
			offerings.GET("", h.Offering.ListOfferings)
			offerings.GET("/:id", h.Offering.GetOffering)
			offerings.GET("/:id/sessions", h.Session.ListSessions)
			offerings.GET("/:id/calendar", h.Session.ExportCalendar)
			offerings.GET("/:id/rollovers", staff, h.Attendance.ListRollovers)
			offerings.POST("/:id/sessions/generate", adminOnly, generateLimit, h.Session.GenerateSessions)
			offerings.POST("/:id/sessions/regenerate", adminOnly, generateLimit, h.Session.RegenerateSessions)
		}

		// 课次模块
		sessions := v1.Group("/sessions", staff)
		{
			sessions.PUT("/:id/cancel", h.Session.CancelSession)
			sessions.PUT("/:id/reschedule", h.Session.RescheduleSession)
			sessions.PUT("/:id/attendance", h.Attendance.MarkAttendance)
		}

		// 发薪周期模块
		payPeriods := v1.Group("/pay-periods")
		{
			payPeriods.GET("", h.PayPeriod.ListPayPeriods)
			payPeriods.POST("", adminOnly, generateLimit, h.PayPeriod.CreatePayPeriods)
			payPeriods.PUT("/:id/close", adminOnly, h.PayPeriod.ClosePayPeriod)
		}

		// 课时费模块（教师只能查看本人，Handler 层鉴权）
		v1.GET("/payroll/teachers/:id", staff, h.Payroll.GetTeacherPay)

		// 导出模块
		v1.GET("/export/payroll", adminOnly, h.Export.ExportPayroll)
	}

	return r
}
