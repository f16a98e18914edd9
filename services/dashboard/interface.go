// File: questly/services/dashboard/interface.go
package dashboard

import (
	"context"

	activityRepo "questly/database/repository/activity"
	classroomRepo "questly/database/repository/classroom"
	eventRepo "questly/database/repository/event"
	progressRepo "questly/database/repository/progress"
	userRepo "questly/database/repository/user"
	"questly/models"
	"questly/services/leaderboard"

	"github.com/hibiken/asynq"
)

// DashboardService builds the role-scoped aggregate behind
// GET /api/dashboard/overview.
//
// The overview never fails closed: when a source is down the service serves
// the last cached aggregate, and when that misses too it serves the
// zero-valued fallback with Degraded set. Clients always get a 200.
type DashboardService interface {
	Overview(ctx context.Context, userID string, role models.Role) (*models.DashboardOverview, error)
	// Refresh drops the fresh cache entry so the next Overview rebuilds.
	Refresh(ctx context.Context, userID string, role models.Role) error
}

// DefaultDashboardService is the production implementation.
type DefaultDashboardService struct {
	Users       userRepo.UserRepository
	Activities  activityRepo.ActivityRepository
	Events      eventRepo.EventRepository
	Progress    progressRepo.ProgressRepository
	Classrooms  classroomRepo.ClassroomRepository
	Leaderboard leaderboard.LeaderboardService
	Cache       OverviewCache
	// Inspector reads asynq queue depth for the admin overview. Optional.
	Inspector *asynq.Inspector
}
