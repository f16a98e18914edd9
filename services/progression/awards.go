// File: questly/services/progression/awards.go
package progression

import (
	"context"
	"fmt"
	"time"

	"questly/models"
	"questly/services/realtime"
	"questly/utils"

	"go.uber.org/zap"
)

// State returns the learner's progression state.
func (s *DefaultProgressionService) State(ctx context.Context, learnerID string) (*models.LearnerState, error) {
	return s.Progress.GetState(ctx, learnerID)
}

// AwardXP is the single place XP enters the system. It keeps the streak
// alive, recomputes level and badges, saves the state, feeds the
// leaderboards and ticks challenge runs. Feed entries and toasts for
// level-ups and milestones ride along; their failures never fail the award.
func (s *DefaultProgressionService) AwardXP(ctx context.Context, learnerID string, xp, coins int64) (*models.LearnerState, error) {
	if xp < 0 || coins < 0 {
		return nil, fmt.Errorf("xp and coins must be non-negative")
	}

	state, err := s.Progress.GetState(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	today := DayKey(now)
	yesterday := DayKey(now.AddDate(0, 0, -1))

	prevLevel := state.Level
	prevStreak := state.StreakDays

	// Streak: today extends nothing, yesterday extends by one, anything
	// older starts over at one.
	switch state.LastActiveDay {
	case today:
		// already counted
	case yesterday:
		state.StreakDays++
	default:
		state.StreakDays = 1
	}
	state.LastActiveDay = today

	state.XP += xp
	state.Coins += coins
	state.DailyXP[today] += xp
	state.Level = models.LevelForXP(state.XP)

	var newBadges []string
	for _, threshold := range models.BadgeThresholds {
		if state.XP >= threshold.XP && !models.HasBadge(state, threshold.Badge) {
			state.Badges = append(state.Badges, threshold.Badge)
			newBadges = append(newBadges, threshold.Badge)
		}
	}

	if err := s.Progress.SaveState(ctx, state); err != nil {
		return nil, err
	}

	usr, err := s.Users.GetByID(learnerID)
	if err != nil {
		utils.GetLogger().Warn("AwardXP: failed to load learner account",
			zap.String("learnerID", learnerID), zap.Error(err))
		usr = &models.User{ID: learnerID, DisplayName: "A learner"}
	}

	if err := s.Leaderboard.RecordXP(ctx, learnerID, usr.ClassroomIDs, xp); err != nil {
		utils.GetLogger().Warn("AwardXP: leaderboard update failed",
			zap.String("learnerID", learnerID), zap.Error(err))
	}

	s.announceProgress(ctx, usr, state, prevLevel, prevStreak, newBadges)
	s.tickChallenges(ctx, learnerID, state, today, yesterday)

	return state, nil
}

// announceProgress records level-up, streak and badge feed entries plus a
// toast to the learner's own channel.
func (s *DefaultProgressionService) announceProgress(ctx context.Context, usr *models.User, state *models.LearnerState, prevLevel, prevStreak int, newBadges []string) {
	classroomID := ""
	if len(usr.ClassroomIDs) > 0 {
		classroomID = usr.ClassroomIDs[0]
	}

	record := func(activityType models.ActivityType, description string, important bool) {
		_, err := s.Activity.Record(ctx, models.Activity{
			Type:        activityType,
			Description: description,
			Actor:       usr.DisplayName,
			UserID:      usr.ID,
			ClassroomID: classroomID,
			Important:   important,
		})
		if err != nil {
			utils.GetLogger().Warn("Failed to record progression activity",
				zap.String("type", string(activityType)), zap.Error(err))
		}
	}

	if state.Level > prevLevel {
		record(models.ActivityLevelUp,
			fmt.Sprintf("%s reached level %d!", usr.DisplayName, state.Level), true)
		if err := s.Notifier.Toast(ctx, realtime.UserChannel(usr.ID), models.SeveritySuccess,
			fmt.Sprintf("Level up! You are now level %d", state.Level), 5000); err != nil {
			utils.GetLogger().Warn("Level-up toast failed", zap.Error(err))
		}
	}

	if state.StreakDays > prevStreak && streakMilestones[state.StreakDays] {
		record(models.ActivityStreakMilestone,
			fmt.Sprintf("%s is on a %d-day streak!", usr.DisplayName, state.StreakDays), true)
	}

	for _, badge := range newBadges {
		record(models.ActivityBadgeEarned,
			fmt.Sprintf("%s earned the %s badge", usr.DisplayName, badge), true)
	}
}

// tickChallenges advances every active challenge run whose daily XP bar was
// crossed today. Each day counts at most once per challenge.
func (s *DefaultProgressionService) tickChallenges(ctx context.Context, learnerID string, state *models.LearnerState, today, yesterday string) {
	challenges, err := s.Catalog.ActiveChallenges(ctx)
	if err != nil {
		utils.GetLogger().Warn("Failed to load challenges for tick",
			zap.String("learnerID", learnerID), zap.Error(err))
		return
	}

	for _, challenge := range challenges {
		if state.DailyXP[today] < challenge.MinXPPerDay {
			continue
		}

		run, err := s.Progress.GetChallengeProgress(ctx, learnerID, challenge.ID)
		if err != nil {
			utils.GetLogger().Warn("Failed to load challenge run",
				zap.String("challengeID", challenge.ID), zap.Error(err))
			continue
		}
		if run == nil {
			run = &models.ChallengeProgress{
				ChallengeID: challenge.ID,
				LearnerID:   learnerID,
			}
		}
		if run.Claimed || run.LastDayMet == today {
			continue
		}

		if run.LastDayMet == yesterday {
			run.DaysMet++
		} else {
			run.DaysMet = 1
		}
		run.LastDayMet = today

		if err := s.Progress.UpsertChallengeProgress(ctx, run); err != nil {
			utils.GetLogger().Warn("Failed to save challenge run",
				zap.String("challengeID", challenge.ID), zap.Error(err))
		}
	}
}

// CreditCoins adds purchased coins to the wallet. Purchases do not earn XP
// and do not touch the streak.
func (s *DefaultProgressionService) CreditCoins(ctx context.Context, learnerID string, coins int64) error {
	if coins <= 0 {
		return fmt.Errorf("coin credit must be positive")
	}
	state, err := s.Progress.GetState(ctx, learnerID)
	if err != nil {
		return err
	}
	state.Coins += coins
	return s.Progress.SaveState(ctx, state)
}
