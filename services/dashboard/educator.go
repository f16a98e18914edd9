// File: questly/services/dashboard/educator.go
package dashboard

import (
	"context"
	"fmt"
	"time"

	"questly/models"
)

func (s *DefaultDashboardService) buildEducator(ctx context.Context, usr *models.User, overview *models.DashboardOverview) error {
	classrooms, err := s.Classrooms.GetByEducatorID(ctx, usr.ID)
	if err != nil {
		return fmt.Errorf("failed to load classrooms: %w", err)
	}

	now := time.Now()
	today := now.UTC().Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7)

	sections := make([]models.EducatorSection, 0, len(classrooms))
	totalLearners := 0
	totalActiveToday := 0

	for _, classroom := range classrooms {
		section := models.EducatorSection{
			ClassroomID:   classroom.ID,
			ClassroomName: classroom.Name,
			LearnerCount:  len(classroom.LearnerIDs),
		}

		if len(classroom.LearnerIDs) > 0 {
			states, err := s.Progress.StatesByIDs(ctx, classroom.LearnerIDs)
			if err != nil {
				return fmt.Errorf("failed to load states for classroom %s: %w", classroom.ID, err)
			}

			var streakSum int
			for _, state := range states {
				if state.LastActiveDay == today {
					section.ActiveToday++
				}
				streakSum += state.StreakDays
			}
			if len(states) > 0 {
				section.AvgStreakDays = float64(streakSum) / float64(len(states))
			}

			completed, err := s.Progress.CountMissionsCompletedSinceBy(ctx, classroom.LearnerIDs, weekAgo)
			if err != nil {
				return fmt.Errorf("failed to count missions for classroom %s: %w", classroom.ID, err)
			}
			section.MissionsPerDay = float64(completed) / 7
		}

		totalLearners += section.LearnerCount
		totalActiveToday += section.ActiveToday
		sections = append(sections, section)
	}

	overview.Classrooms = sections
	overview.KPIs = []models.KPI{
		{Key: "classrooms", Label: "Classrooms", Value: fmt.Sprintf("%d", len(sections))},
		{Key: "learners", Label: "Learners", Value: fmt.Sprintf("%d", totalLearners)},
		{Key: "active_today", Label: "Active today", Value: fmt.Sprintf("%d", totalActiveToday), Trend: trendOf(int64(totalActiveToday))},
	}
	return nil
}
