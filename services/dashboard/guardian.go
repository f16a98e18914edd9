// File: questly/services/dashboard/guardian.go
package dashboard

import (
	"context"
	"fmt"
	"time"

	"questly/models"
)

func (s *DefaultDashboardService) buildGuardian(ctx context.Context, usr *models.User, overview *models.DashboardOverview) error {
	overview.Learners = []models.GuardianSection{}
	if len(usr.LearnerIDs) == 0 {
		overview.KPIs = []models.KPI{
			{Key: "children", Label: "Linked learners", Value: "0"},
		}
		return nil
	}

	learners, err := s.Users.GetManyByIDs(usr.LearnerIDs)
	if err != nil {
		return fmt.Errorf("failed to load linked learners: %w", err)
	}
	states, err := s.Progress.StatesByIDs(ctx, usr.LearnerIDs)
	if err != nil {
		return fmt.Errorf("failed to load learner states: %w", err)
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	spent, err := s.Progress.CoinsSpentSince(ctx, usr.LearnerIDs, weekAgo)
	if err != nil {
		return fmt.Errorf("failed to sum coins spent: %w", err)
	}
	pending, err := s.Progress.CountPendingApprovals(ctx, usr.LearnerIDs)
	if err != nil {
		return fmt.Errorf("failed to count pending approvals: %w", err)
	}

	stateByID := make(map[string]models.LearnerState, len(states))
	for _, state := range states {
		stateByID[state.LearnerID] = state
	}

	totalPending := 0
	sections := make([]models.GuardianSection, 0, len(learners))
	for _, learner := range learners {
		state := stateByID[learner.ID]
		section := models.GuardianSection{
			LearnerID:        learner.ID,
			LearnerName:      learner.DisplayName,
			Level:            state.Level,
			StreakDays:       state.StreakDays,
			CoinsSpentWeek:   spent[learner.ID],
			PendingApprovals: pending[learner.ID],
			LastActive:       state.UpdatedAt,
		}
		if section.Level == 0 {
			section.Level = 1
		}
		totalPending += section.PendingApprovals
		sections = append(sections, section)
	}

	overview.Learners = sections
	overview.KPIs = []models.KPI{
		{Key: "children", Label: "Linked learners", Value: fmt.Sprintf("%d", len(sections))},
		{Key: "approvals", Label: "Pending approvals", Value: fmt.Sprintf("%d", totalPending)},
	}
	return nil
}
