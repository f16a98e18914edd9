// File: questly/services/activity/interface.go
package activity

import (
	"context"

	activityRepo "questly/database/repository/activity"
	"questly/models"
	"questly/services/realtime"
)

// ActivityService records what learners do and fans each entry out to the
// realtime feed channels that should see it.
type ActivityService interface {
	// Record persists the entry and publishes it to the actor's channel,
	// the classroom channel when set, and the guardian channels of the
	// actor when the entry is important.
	Record(ctx context.Context, activity models.Activity) (*models.Activity, error)
	Recent(ctx context.Context, userID string, classroomIDs []string, limit int64) ([]models.Activity, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id, userID string) error
}

// GuardianResolver returns the guardian account IDs linked to a learner.
// The user service implements it; the indirection keeps this package from
// importing the whole user service.
type GuardianResolver interface {
	GuardiansOf(ctx context.Context, learnerID string) ([]string, error)
}

// DefaultActivityService is the production implementation.
type DefaultActivityService struct {
	Repo      activityRepo.ActivityRepository
	Publisher realtime.Publisher
	Guardians GuardianResolver
}
