// File: questly/services/dashboard/admin.go
package dashboard

import (
	"context"
	"fmt"
	"time"

	"questly/models"
	"questly/utils"

	"go.uber.org/zap"
)

func (s *DefaultDashboardService) buildAdmin(ctx context.Context, overview *models.DashboardOverview) error {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	metrics := &models.PlatformMetrics{GeneratedAt: now.UTC()}

	var err error
	if metrics.TotalLearners, err = s.Users.CountByRole(models.RoleLearner); err != nil {
		return fmt.Errorf("failed to count learners: %w", err)
	}
	if metrics.TotalEducators, err = s.Users.CountByRole(models.RoleEducator); err != nil {
		return fmt.Errorf("failed to count educators: %w", err)
	}
	if metrics.TotalGuardians, err = s.Users.CountByRole(models.RoleGuardian); err != nil {
		return fmt.Errorf("failed to count guardians: %w", err)
	}
	if metrics.TotalClassrooms, err = s.Classrooms.Count(ctx); err != nil {
		return fmt.Errorf("failed to count classrooms: %w", err)
	}
	if metrics.ActiveToday, err = s.Progress.CountByLastActiveDay(ctx, now.UTC().Format("2006-01-02")); err != nil {
		return fmt.Errorf("failed to count active learners: %w", err)
	}
	if metrics.MissionsToday, err = s.Progress.CountMissionsCompletedSince(ctx, midnight); err != nil {
		return fmt.Errorf("failed to count missions: %w", err)
	}
	if metrics.RedemptionsToday, err = s.Progress.CountRedemptionsSince(ctx, midnight); err != nil {
		return fmt.Errorf("failed to count redemptions: %w", err)
	}

	// Queue depth is best-effort; a worker outage should not hide the
	// rest of the metrics.
	if s.Inspector != nil {
		if info, err := s.Inspector.GetQueueInfo("default"); err == nil {
			metrics.QueueDepth = int64(info.Size)
		} else {
			utils.GetLogger().Warn("Queue inspection failed", zap.Error(err))
		}
	}

	overview.Platform = metrics
	overview.KPIs = []models.KPI{
		{Key: "learners", Label: "Learners", Value: fmt.Sprintf("%d", metrics.TotalLearners)},
		{Key: "active_today", Label: "Active today", Value: fmt.Sprintf("%d", metrics.ActiveToday), Trend: trendOf(metrics.ActiveToday)},
		{Key: "missions_today", Label: "Missions today", Value: fmt.Sprintf("%d", metrics.MissionsToday)},
		{Key: "queue_depth", Label: "Queue depth", Value: fmt.Sprintf("%d", metrics.QueueDepth)},
	}
	return nil
}
