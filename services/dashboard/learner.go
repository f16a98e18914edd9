// File: questly/services/dashboard/learner.go
package dashboard

import (
	"context"
	"fmt"
	"time"

	"questly/models"
	"questly/utils"

	"go.uber.org/zap"
)

func (s *DefaultDashboardService) buildLearner(ctx context.Context, usr *models.User, overview *models.DashboardOverview) error {
	state, err := s.Progress.GetState(ctx, usr.ID)
	if err != nil {
		return fmt.Errorf("failed to load learner state: %w", err)
	}

	now := time.Now()
	cycleKeys := []string{
		now.UTC().Format("2006-01-02"),
		weekKeyOf(now),
		"",
	}
	runs, err := s.Progress.ListMissionProgress(ctx, usr.ID, cycleKeys)
	if err != nil {
		return fmt.Errorf("failed to load mission runs: %w", err)
	}
	inFlight := 0
	for _, run := range runs {
		if !run.Completed {
			inFlight++
		}
	}

	// Rank is decoration; a Redis hiccup should not degrade the page.
	rank, err := s.Leaderboard.WeeklyRank(ctx, usr.ID)
	if err != nil {
		utils.GetLogger().Warn("Weekly rank lookup failed", zap.String("userID", usr.ID), zap.Error(err))
	}

	levelFloor := models.LevelThreshold(state.Level)
	overview.Learner = &models.LearnerSection{
		XP:             state.XP,
		Level:          state.Level,
		XPIntoLevel:    state.XP - levelFloor,
		XPForNextLevel: models.LevelThreshold(state.Level+1) - levelFloor,
		Coins:          state.Coins,
		Gems:           state.Gems,
		StreakDays:     state.StreakDays,
		Badges:         state.Badges,
		ActiveMissions: inFlight,
		LeaderboardPos: rank,
	}

	var weekXP int64
	for i := 0; i < 7; i++ {
		weekXP += state.DailyXP[now.UTC().AddDate(0, 0, -i).Format("2006-01-02")]
	}

	overview.KPIs = []models.KPI{
		{Key: "xp_week", Label: "XP this week", Value: fmt.Sprintf("%d", weekXP), Trend: trendOf(weekXP)},
		{Key: "streak", Label: "Day streak", Value: fmt.Sprintf("%d", state.StreakDays)},
		{Key: "coins", Label: "Coins", Value: fmt.Sprintf("%d", state.Coins)},
		{Key: "missions", Label: "Missions in flight", Value: fmt.Sprintf("%d", inFlight)},
	}
	return nil
}

func weekKeyOf(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func trendOf(v int64) string {
	if v > 0 {
		return "up"
	}
	return ""
}
