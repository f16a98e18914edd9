// File: questly/handlers/bundle.go
package handlers

import (
	classroomRepo "questly/database/repository/classroom"
	userRepo "questly/database/repository/user"
	"questly/services/activity"
	"questly/services/admin"
	"questly/services/billing"
	"questly/services/dashboard"
	"questly/services/events"
	"questly/services/leaderboard"
	"questly/services/notification"
	"questly/services/progression"
	"questly/services/storage"
	"questly/services/tutor"
	"questly/services/user"
	"questly/services/voice"
)

// HandlerBundle groups the services every endpoint handler draws from. The
// repos are exposed so route registration can hand them to the auth
// middleware.
type HandlerBundle struct {
	UserRepo      userRepo.UserRepository
	ClassroomRepo classroomRepo.ClassroomRepository

	UserService  user.UserService
	Dashboard    dashboard.DashboardService
	Progression  progression.ProgressionService
	Activity     activity.ActivityService
	Leaderboard  leaderboard.LeaderboardService
	Notification notification.NotificationService
	Events       events.EventService
	Tutor        tutor.TutorService
	Voice        voice.VoiceService
	Billing      billing.BillingService
	Admin        admin.AdminService
	Storage      storage.StorageService
}
