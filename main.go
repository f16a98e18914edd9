// File: questly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"questly/config"
	"questly/cron"
	"questly/database"
	activityRepoPkg "questly/database/repository/activity"
	catalogRepoPkg "questly/database/repository/catalog"
	classroomRepoPkg "questly/database/repository/classroom"
	eventRepoPkg "questly/database/repository/event"
	invoiceRepoPkg "questly/database/repository/invoice"
	moderationRepoPkg "questly/database/repository/moderation"
	notificationRepoPkg "questly/database/repository/notification"
	progressRepoPkg "questly/database/repository/progress"
	userRepoPkg "questly/database/repository/user"
	"questly/handlers"
	"questly/middleware"
	"questly/routes"
	"questly/services/activity"
	"questly/services/admin"
	"questly/services/billing"
	"questly/services/dashboard"
	"questly/services/events"
	"questly/services/leaderboard"
	"questly/services/notification"
	"questly/services/progression"
	"questly/services/realtime"
	"questly/services/tasks"
	"questly/services/tutor"
	"questly/services/user"
	"questly/services/voice"
	"questly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.InitRealtime()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	classroomRepo := classroomRepoPkg.NewMongoClassroomRepo()
	activityRepo := activityRepoPkg.NewMongoActivityRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	progressRepo := progressRepoPkg.NewMongoProgressRepo()
	eventRepo := eventRepoPkg.NewMongoEventRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()
	invoiceRepo := invoiceRepoPkg.NewMongoInvoiceRepo()
	moderationRepo := moderationRepoPkg.NewMongoModerationRepo()

	// background queue.
	queueClient := asynq.NewClient(tasks.QueueRedisOpt())
	defer queueClient.Close()
	queueInspector := asynq.NewInspector(tasks.QueueRedisOpt())

	// services.
	userService := &user.DefaultUserService{
		Repo:       userRepo,
		Classrooms: classroomRepo,
	}

	realtimeService := realtime.NewService(utils.GetRealtimeClient(), &user.ChannelAuthorizer{Users: userService})
	realtimeCtx, stopRealtime := context.WithCancel(context.Background())
	defer stopRealtime()
	realtimeService.Start(realtimeCtx)

	notificationService := &notification.DefaultNotificationService{
		Repo:      notificationRepo,
		Users:     userRepo,
		Publisher: realtimeService,
	}

	activityService := &activity.DefaultActivityService{
		Repo:      activityRepo,
		Publisher: realtimeService,
		Guardians: userService,
	}

	leaderboardService := leaderboard.NewRedisLeaderboard(utils.GetCacheClient())

	progressionService := &progression.DefaultProgressionService{
		Progress:    progressRepo,
		Catalog:     catalogRepo,
		Users:       userRepo,
		Activity:    activityService,
		Notifier:    notificationService,
		Leaderboard: leaderboardService,
	}

	dashboardCacheTTL := time.Duration(config.AppConfig.DashboardCacheTTLSec) * time.Second
	dashboardService := &dashboard.DefaultDashboardService{
		Users:       userRepo,
		Activities:  activityRepo,
		Events:      eventRepo,
		Progress:    progressRepo,
		Classrooms:  classroomRepo,
		Leaderboard: leaderboardService,
		Cache:       dashboard.NewRedisOverviewCache(utils.GetCacheClient(), dashboardCacheTTL),
		Inspector:   queueInspector,
	}

	eventService := &events.DefaultEventService{
		Events:     eventRepo,
		Classrooms: classroomRepo,
		Queue:      queueClient,
	}

	tutorStore := tutor.NewRedisContextStore(utils.GetCacheClient(), 30*time.Minute)
	tutorService := tutor.NewDefaultTutorService(tutor.NewGeminiClient(config.AppConfig.GeminiAPIKey), tutorStore)

	transcriber, err := voice.NewGoogleTranscriber(context.Background(), config.AppConfig.GoogleCredentialsFile)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize speech client: %v", err)
	}
	defer transcriber.Close()
	voiceService := &voice.DefaultVoiceService{
		Catalog:     catalogRepo,
		Progression: progressionService,
		Transcriber: transcriber,
	}

	billingService := &billing.DefaultBillingService{
		Repo:        invoiceRepo,
		Users:       userRepo,
		Progression: progressionService,
		Notifier:    notificationService,
	}

	adminService := &admin.DefaultAdminService{
		Users:      userRepo,
		Catalog:    catalogRepo,
		Moderation: moderationRepo,
		Notifier:   notificationService,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:      userRepo,
		ClassroomRepo: classroomRepo,

		UserService:  userService,
		Dashboard:    dashboardService,
		Progression:  progressionService,
		Activity:     activityService,
		Leaderboard:  leaderboardService,
		Notification: notificationService,
		Events:       eventService,
		Tutor:        tutorService,
		Voice:        voiceService,
		Billing:      billingService,
		Admin:        adminService,
		Storage:      cloudinaryStorageService,
	}

	// Register routes with the assembled handler bundle.
	wsHandler := realtimeService.Handler(middleware.WSAuthToken)
	routes.RegisterRoutes(router, handlerBundle, wsHandler)

	// Background worker and cron schedule.
	cron.InitWorker(cron.Deps{
		Events:      eventRepo,
		Classrooms:  classroomRepo,
		Progress:    progressRepo,
		Leaderboard: leaderboardService,
		Notifier:    notificationService,
	})

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient(), utils.GetRealtimeClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
