// File: questly/services/dashboard/service.go
package dashboard

import (
	"context"
	"fmt"
	"time"

	"questly/models"
	"questly/utils"

	"go.uber.org/zap"
)

const (
	recentActivityLimit = 10
	upcomingEventsDays  = 7
)

// Overview returns the role-scoped aggregate, serving from cache when fresh.
// Build failures degrade instead of erroring: last-good cache first, then
// the zero-valued fallback.
func (s *DefaultDashboardService) Overview(ctx context.Context, userID string, role models.Role) (*models.DashboardOverview, error) {
	logger := utils.GetLogger()

	if cached, err := s.Cache.GetFresh(ctx, role, userID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		logger.Warn("Dashboard cache read failed", zap.String("userID", userID), zap.Error(err))
	}

	overview, err := s.build(ctx, userID, role)
	if err != nil {
		logger.Error("Dashboard build failed, entering degraded mode",
			zap.String("userID", userID), zap.String("role", string(role)), zap.Error(err))

		if stale, cacheErr := s.Cache.GetLastGood(ctx, role, userID); cacheErr == nil && stale != nil {
			stale.Degraded = true
			return stale, nil
		}
		fallback := models.NewFallbackOverview(role)
		return &fallback, nil
	}

	if err := s.Cache.Store(ctx, role, userID, overview); err != nil {
		logger.Warn("Dashboard cache write failed", zap.String("userID", userID), zap.Error(err))
	}
	return overview, nil
}

// Refresh drops the fresh cache entry so the next Overview rebuilds.
func (s *DefaultDashboardService) Refresh(ctx context.Context, userID string, role models.Role) error {
	return s.Cache.Invalidate(ctx, role, userID)
}

func (s *DefaultDashboardService) build(ctx context.Context, userID string, role models.Role) (*models.DashboardOverview, error) {
	usr, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	overview := &models.DashboardOverview{
		Role:           role,
		GeneratedAt:    time.Now().UTC(),
		KPIs:           []models.KPI{},
		RecentActivity: []models.Activity{},
		UpcomingEvents: []models.Event{},
	}

	switch role {
	case models.RoleLearner:
		err = s.buildLearner(ctx, usr, overview)
	case models.RoleEducator:
		err = s.buildEducator(ctx, usr, overview)
	case models.RoleGuardian:
		err = s.buildGuardian(ctx, usr, overview)
	case models.RoleAdmin:
		err = s.buildAdmin(ctx, overview)
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachShared(ctx, usr, overview); err != nil {
		return nil, err
	}
	return overview, nil
}

// attachShared fills the sections every role gets: recent activity and
// upcoming events.
func (s *DefaultDashboardService) attachShared(ctx context.Context, usr *models.User, overview *models.DashboardOverview) error {
	recent, err := s.Activities.RecentForUser(ctx, usr.ID, usr.ClassroomIDs, recentActivityLimit)
	if err != nil {
		return fmt.Errorf("failed to load recent activity: %w", err)
	}
	if recent != nil {
		overview.RecentActivity = recent
	}

	until := time.Now().AddDate(0, 0, upcomingEventsDays)
	events, err := s.Events.Upcoming(ctx, usr.ClassroomIDs, until)
	if err != nil {
		return fmt.Errorf("failed to load upcoming events: %w", err)
	}
	if events != nil {
		overview.UpcomingEvents = events
	}
	return nil
}
