package routes

import (
	"net/http"
	"time"

	"questly/handlers"
	"questly/middleware"
	"questly/models"
	"questly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers signup, login and device endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.Use(middleware.DeviceDetailsMiddleware())
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("/signout", hb.SignOutHandler)
		api.POST("/signout-others", hb.SignOutOtherDevicesHandler)
		api.GET("/devices", hb.GetDevicesHandler)
		api.PUT("/fcm-token", hb.UpdateFCMTokenHandler)
	}
}

// RegisterUserRoutes registers profile and linking endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.DeviceDetailsMiddleware(), middleware.AuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.GetProfileHandler)
		api.PATCH("/me", hb.UpdateProfileHandler)
		api.PUT("/me/password", hb.UpdatePasswordHandler)
		api.DELETE("/me", hb.DeleteAccountHandler)
		api.POST("/me/avatar", hb.UploadAvatarHandler)

		api.POST("/link-learner", middleware.RequireRole(models.RoleGuardian), hb.LinkLearnerHandler)
		api.POST("/join-classroom", middleware.RequireRole(models.RoleLearner), hb.JoinClassroomHandler)
	}
}

// RegisterDashboardRoutes registers the role-scoped overview endpoints.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dashboard")
	{
		api.Use(middleware.DeviceDetailsMiddleware(), middleware.AuthMiddleware(hb.UserRepo))
		api.GET("/overview", hb.GetDashboardHandler)
		api.POST("/refresh", hb.RefreshDashboardHandler)
	}
}

// RegisterProgressRoutes registers the gamification endpoints. Everything in
// here is learner-scoped.
func RegisterProgressRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/progress")
	{
		api.Use(middleware.DeviceDetailsMiddleware(), middleware.AuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleLearner))
		api.GET("/state", hb.GetStateHandler)
		api.GET("/missions", hb.GetMissionBoardHandler)
		api.POST("/missions/:id/advance", hb.AdvanceMissionHandler)
		api.GET("/challenges", hb.GetChallengeBoardHandler)
		api.POST("/challenges/:id/claim", hb.ClaimChallengeHandler)
		api.GET("/shop", hb.GetShopHandler)
		api.POST("/shop/:id/redeem", hb.RedeemRewardHandler)
		api.POST("/redemptions/:id/approve", hb.ApproveRedemptionHandler)
		api.GET("/redemptions", hb.GetRedemptionsHandler)
	}
}

// RegisterLeaderboardRoutes registers the standings endpoints.
func RegisterLeaderboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/leaderboard")
	{
		api.Use(middleware.DeviceDetailsMiddleware(), middleware.AuthMiddleware(hb.UserRepo))
		api.GET("/weekly", hb.GetWeeklyLeaderboardHandler)
		api.GET("/all-time", hb.GetAllTimeLeaderboardHandler)
		api.GET("/me", hb.GetMyRankHandler)
	}
}

// RegisterActivityRoutes registers feed history and notifications.
func RegisterActivityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/activity")
	{
		api.Use(middleware.DeviceDetailsMiddleware(), middleware.AuthMiddleware(hb.UserRepo))
		api.GET("", hb.GetActivityHandler)
		api.POST("/:id/read", hb.MarkActivityReadHandler)
		api.POST("/read-all", hb.MarkAllActivityReadHandler)
		api.DELETE("/:id", hb.DeleteActivityHandler)
	}

	notif := r.Group("/api/notifications")
	{
		notif.Use(middleware.DeviceDetailsMiddleware(), middleware.AuthMiddleware(hb.UserRepo))
		notif.GET("", hb.GetNotificationsHandler)
		notif.POST("/:id/read", hb.MarkNotificationReadHandler)
		notif.DELETE("/:id", hb.DeleteNotificationHandler)
	}
}

// RegisterEventRoutes registers classroom event endpoints.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/events")
	{
		api.Use(middleware.DeviceDetailsMiddleware(), middleware.AuthMiddleware(hb.UserRepo))
		api.GET("/upcoming", hb.GetUpcomingEventsHandler)

		api.POST("", middleware.RequireRole(models.RoleEducator), hb.CreateEventHandler)
		api.DELETE("/:id", middleware.RequireRole(models.RoleEducator), hb.DeleteEventHandler)
	}
}

// RegisterClassroomRoutes registers educator classroom management.
func RegisterClassroomRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/classrooms")
	{
		api.Use(middleware.DeviceDetailsMiddleware(), middleware.AuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleEducator))
		api.POST("", hb.CreateClassroomHandler)
		api.GET("", hb.GetMyClassroomsHandler)
		api.DELETE("/:id/learners/:learnerId", hb.RemoveLearnerHandler)
	}
}

// RegisterTutorRoutes registers the hint helper endpoints.
func RegisterTutorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tutor")
	{
		api.Use(middleware.DeviceDetailsMiddleware(), middleware.AuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleLearner))
		api.POST("/hint", hb.TutorHintHandler)
		api.DELETE("/context", hb.ClearTutorContextHandler)
	}
}

// RegisterVoiceRoutes registers reading practice endpoints.
func RegisterVoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/voice")
	{
		api.Use(middleware.DeviceDetailsMiddleware(), middleware.AuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleLearner))
		api.GET("/passages", hb.GetPassagesHandler)
		api.POST("/attempt", hb.VoiceAttemptHandler)
	}
}

// RegisterBillingRoutes registers coin pack purchase endpoints.
func RegisterBillingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/billing")
	{
		api.Use(middleware.DeviceDetailsMiddleware(), middleware.AuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleGuardian))
		api.GET("/packs", hb.GetCoinPacksHandler)
		api.POST("/purchase", hb.CreatePurchaseIntentHandler)
		api.POST("/purchase/:id/confirm", hb.ConfirmPurchaseHandler)
		api.GET("/invoices", hb.GetInvoicesHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.DeviceDetailsMiddleware(), middleware.AuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleAdmin))
		api.GET("/users/:role", hb.AdminListUsersHandler)
		api.GET("/user/:id", hb.AdminGetUserHandler)
		api.PUT("/missions", hb.AdminUpsertMissionHandler)
		api.PUT("/rewards", hb.AdminUpsertRewardHandler)
		api.POST("/challenges", hb.AdminCreateChallengeHandler)
		api.POST("/passages", hb.AdminCreatePassageHandler)
		api.POST("/broadcast", hb.AdminBroadcastHandler)
		api.GET("/flags", hb.AdminOpenFlagsHandler)
		api.POST("/flags/:id/resolve", hb.AdminResolveFlagHandler)
	}
}

// RegisterRealtimeRoute mounts the websocket feed endpoint. Auth happens
// inside the handler via the token query parameter.
func RegisterRealtimeRoute(r *gin.Engine, wsHandler http.Handler) {
	r.GET("/ws/feed", gin.WrapH(wsHandler))
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, wsHandler http.Handler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Device-ID", "X-Device-Name", "X-Platform"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterDashboardRoutes(r, hb)
	RegisterProgressRoutes(r, hb)
	RegisterLeaderboardRoutes(r, hb)
	RegisterActivityRoutes(r, hb)
	RegisterEventRoutes(r, hb)
	RegisterClassroomRoutes(r, hb)
	RegisterTutorRoutes(r, hb)
	RegisterVoiceRoutes(r, hb)
	RegisterBillingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterRealtimeRoute(r, wsHandler)
	RegisterHealthRoute(r)
}
