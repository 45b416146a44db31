package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"Evermatch/internal/handler"
	"Evermatch/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	v1 := h.Group("/v1")

	// 问卷流程路由
	onboarding := v1.Group("/onboarding")
	{
		// 会话初始化是匿名接口，按 IP 限流
		onboarding.POST("/session", middleware.SessionInitRateLimitMiddleware(), handler.InitSession)
		onboarding.POST("/session/refresh", handler.RefreshToken)

		steps := onboarding.Group("/steps")
		steps.Use(middleware.AuthMiddleware())
		{
			steps.GET("/:route", handler.GetStep)
			steps.POST("/:route", handler.SubmitStep)
		}

		authed := onboarding.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.GET("/progress", handler.GetProgress)
			authed.POST("/complete", handler.CompleteApplication)
			authed.POST("/photos", handler.UploadPhoto)
		}
	}

	// 会员资料路由
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me/profile", handler.GetProfile)
		users.PATCH("/me/profile", handler.UpdateProfile)
	}

	// 管理后台路由，浏览器表单所以加 CSRF
	admin := v1.Group("/admin")
	admin.Use(middleware.CSRFMiddleware())
	{
		admin.POST("/login", middleware.AdminLoginRateLimitMiddleware(), handler.AdminLogin)

		authed := admin.Group("")
		authed.Use(middleware.AuthMiddleware(), middleware.AdminOnlyMiddleware())
		{
			authed.GET("/users", handler.ListUsers)
			authed.GET("/search/users", handler.SearchUsers)
			authed.GET("/users/:id", handler.GetUser)
			authed.PATCH("/users/:id/status", handler.UpdateUserStatus)

			authed.GET("/interviews", handler.ListInterviews)
			authed.GET("/interviews/:id", handler.GetInterview)
			authed.POST("/interviews/:id/schedule", handler.ScheduleInterview)
			authed.PATCH("/interviews/:id", handler.UpdateInterview)

			authed.GET("/admins", handler.ListAdmins)
			authed.POST("/admins", handler.CreateAdmin)
		}
	}
}
