// File: questly/services/progression/challenges.go
package progression

import (
	"context"
	"fmt"

	"questly/models"
	"questly/utils"

	"go.uber.org/zap"
)

// ChallengeBoard returns every active challenge paired with the learner's
// streak run.
func (s *DefaultProgressionService) ChallengeBoard(ctx context.Context, learnerID string) ([]ChallengeBoardEntry, error) {
	challenges, err := s.Catalog.ActiveChallenges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenges: %w", err)
	}

	runs, err := s.Progress.ListChallengeProgress(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenge runs: %w", err)
	}
	runByChallenge := make(map[string]models.ChallengeProgress, len(runs))
	for _, run := range runs {
		runByChallenge[run.ChallengeID] = run
	}

	board := make([]ChallengeBoardEntry, 0, len(challenges))
	for _, challenge := range challenges {
		entry := ChallengeBoardEntry{Challenge: challenge}
		if run, ok := runByChallenge[challenge.ID]; ok {
			entry.DaysMet = run.DaysMet
			entry.Claimed = run.Claimed
			entry.Claimable = !run.Claimed && run.DaysMet >= challenge.DaysRequired
		}
		board = append(board, entry)
	}
	return board, nil
}

// ClaimChallenge pays out a met run. The repository transaction guards
// against double claims and unmet runs.
func (s *DefaultProgressionService) ClaimChallenge(ctx context.Context, learnerID, challengeID string) (*models.ChallengeProgress, error) {
	challenge, err := s.Catalog.GetChallenge(ctx, challengeID)
	if err != nil {
		return nil, ErrNotClaimable
	}
	if !challenge.Active {
		return nil, ErrNotClaimable
	}

	run, err := s.Progress.ClaimChallenge(ctx, learnerID, challenge)
	if err != nil {
		return nil, err
	}

	usr, err := s.Users.GetByID(learnerID)
	actor := "A learner"
	classroomID := ""
	if err == nil {
		actor = usr.DisplayName
		if len(usr.ClassroomIDs) > 0 {
			classroomID = usr.ClassroomIDs[0]
		}
	}
	if _, err := s.Activity.Record(ctx, models.Activity{
		Type:        models.ActivityChallengeClaimed,
		Description: fmt.Sprintf("%s claimed %q (+%d gems)", actor, challenge.Title, challenge.GemReward),
		Actor:       actor,
		UserID:      learnerID,
		ClassroomID: classroomID,
		Important:   true,
	}); err != nil {
		utils.GetLogger().Warn("Failed to record challenge claim",
			zap.String("challengeID", challengeID), zap.Error(err))
	}

	return run, nil
}
