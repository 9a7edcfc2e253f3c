package app

import (
	"time"

	"github.com/rajpalpavitra-beep/HaBet-app3/docs"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/middleware"
	"github.com/rajpalpavitra-beep/HaBet-app3/internal/util"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/monitoring"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/security"
	"github.com/rajpalpavitra-beep/HaBet-app3/pkg/tracing"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupRouter() *gin.Engine {
	gin.SetMode(a.cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(security.CORS(a.cfg.CORS.AllowedOrigins))
	r.Use(security.Secure())
	if a.cfg.RateLimit.MaxRequests > 0 {
		r.Use(security.RateLimiter(
			a.cfg.RateLimit.MaxRequests,
			time.Duration(a.cfg.RateLimit.WindowMinutes)*time.Minute,
		))
	}
	if a.cfg.Tracing.Enabled {
		r.Use(tracing.GinMiddleware())
	}
	r.Use(monitoring.MetricsMiddleware())

	docs.SwaggerInfo.BasePath = "/"

	// Public endpoints
	r.GET("/health", a.controllers.health.Health)
	r.GET("/metrics", monitoring.PrometheusHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if a.cfg.Storage.Type == util.StorageLocal {
		r.Static("/uploads", a.cfg.Storage.LocalPath)
	}

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", a.controllers.auth.Register)
			auth.POST("/login", a.controllers.auth.Login)
		}

		// Public by contract with the web client.
		api.POST("/invites/send", a.controllers.invite.Send)

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(a.cfg))
		authed.Use(middleware.ActivityMiddleware(a.repos.user))
		{
			authed.GET("/users/me", a.controllers.user.GetProfile)
			authed.PUT("/users/me", a.controllers.user.UpdateProfile)
			authed.POST("/users/me/avatar", a.controllers.user.UploadAvatar)

			authed.POST("/bets", a.controllers.bet.Create)
			authed.GET("/bets", a.controllers.bet.List)
			authed.GET("/bets/:id", a.controllers.bet.Get)
			authed.PUT("/bets/:id", a.controllers.bet.Update)
			authed.DELETE("/bets/:id", a.controllers.bet.Delete)
			authed.POST("/bets/:id/resolve", a.controllers.bet.Resolve)
			authed.POST("/bets/:id/verify", a.controllers.bet.Verify)
			authed.GET("/bets/:id/accountability", a.controllers.bet.Accountability)
			authed.POST("/bets/:id/checkins", a.controllers.bet.CheckIn)
			authed.GET("/bets/:id/checkins", a.controllers.bet.ListCheckIns)
			authed.GET("/bets/:id/progress", a.controllers.bet.Progress)

			authed.POST("/daily-checkins", a.controllers.checkin.DailyCheckIn)
			authed.GET("/daily-checkins/streak", a.controllers.checkin.DailyStreak)
			authed.GET("/dashboard/progress", a.controllers.checkin.Dashboard)

			authed.POST("/friends", a.controllers.friend.Request)
			authed.GET("/friends", a.controllers.friend.List)
			authed.POST("/friends/:id/respond", a.controllers.friend.Respond)
			authed.DELETE("/friends/:id", a.controllers.friend.Remove)

			authed.POST("/rooms", a.controllers.room.Create)
			authed.GET("/rooms", a.controllers.room.List)
			authed.POST("/rooms/join", a.controllers.room.Join)
			authed.GET("/rooms/:id", a.controllers.room.Get)
			authed.POST("/rooms/:id/leave", a.controllers.room.Leave)
			authed.POST("/rooms/:id/invite", a.controllers.room.Invite)
			authed.GET("/rooms/:id/leaderboard", a.controllers.leaderboard.Room)

			authed.GET("/leaderboard", a.controllers.leaderboard.Global)

			authed.GET("/notifications", a.controllers.notification.List)
			authed.GET("/notifications/unread-count", a.controllers.notification.UnreadCount)
			authed.POST("/notifications/:id/read", a.controllers.notification.MarkRead)
			authed.POST("/notifications/read-all", a.controllers.notification.MarkAllRead)
		}
	}

	return r
}
