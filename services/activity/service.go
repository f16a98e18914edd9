// File: questly/services/activity/service.go
package activity

import (
	"context"
	"fmt"
	"time"

	"questly/models"
	"questly/services/realtime"
	"questly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Record persists the entry, then publishes it. Publish failures are logged
// and swallowed: the entry is already durable and the next dashboard rebuild
// will pick it up even if no socket saw it live.
func (s *DefaultActivityService) Record(ctx context.Context, act models.Activity) (*models.Activity, error) {
	if !models.ValidActivityType(act.Type) {
		return nil, fmt.Errorf("unknown activity type %q", act.Type)
	}
	if act.UserID == "" {
		return nil, fmt.Errorf("activity needs a userId")
	}
	if act.ID == "" {
		act.ID = uuid.New().String()
	}
	if act.Timestamp.IsZero() {
		act.Timestamp = time.Now()
	}

	if _, err := s.Repo.Create(ctx, act); err != nil {
		return nil, fmt.Errorf("failed to record activity: %w", err)
	}

	logger := utils.GetLogger()
	for _, channel := range s.channelsFor(ctx, act) {
		if err := s.Publisher.PublishActivity(ctx, channel, act); err != nil {
			logger.Warn("Failed to publish activity",
				zap.String("channel", channel), zap.String("activityID", act.ID), zap.Error(err))
		}
	}
	return &act, nil
}

// channelsFor lists where the entry should be pushed: always the actor's own
// channel, the classroom channel when the entry belongs to one, and each
// linked guardian's channel for important entries.
func (s *DefaultActivityService) channelsFor(ctx context.Context, act models.Activity) []string {
	channels := []string{realtime.UserChannel(act.UserID)}
	if act.ClassroomID != "" {
		channels = append(channels, realtime.ClassroomChannel(act.ClassroomID))
	}
	if act.Important && s.Guardians != nil {
		guardianIDs, err := s.Guardians.GuardiansOf(ctx, act.UserID)
		if err != nil {
			utils.GetLogger().Warn("Failed to resolve guardians for activity fan-out",
				zap.String("learnerID", act.UserID), zap.Error(err))
		}
		for _, id := range guardianIDs {
			channels = append(channels, realtime.UserChannel(id))
		}
	}
	return channels
}

// Recent returns the newest entries visible to the user, most recent first.
func (s *DefaultActivityService) Recent(ctx context.Context, userID string, classroomIDs []string, limit int64) ([]models.Activity, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	entries, err := s.Repo.RecentForUser(ctx, userID, classroomIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	if entries == nil {
		entries = []models.Activity{}
	}
	return entries, nil
}

func (s *DefaultActivityService) MarkRead(ctx context.Context, id, userID string) error {
	return s.Repo.MarkRead(ctx, id, userID)
}

func (s *DefaultActivityService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.Repo.MarkAllRead(ctx, userID)
}

func (s *DefaultActivityService) Delete(ctx context.Context, id, userID string) error {
	return s.Repo.DeleteByID(ctx, id, userID)
}
