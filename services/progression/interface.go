// File: questly/services/progression/interface.go
package progression

import (
	"context"

	catalogRepo "questly/database/repository/catalog"
	progressRepo "questly/database/repository/progress"
	userRepo "questly/database/repository/user"
	"questly/models"
	"questly/services/activity"
	"questly/services/leaderboard"
	"questly/services/notification"
)

// MissionBoardEntry pairs a catalog mission with the learner's run in the
// current cycle.
type MissionBoardEntry struct {
	Mission   models.Mission `json:"mission"`
	Progress  int            `json:"progress"`
	Completed bool           `json:"completed"`
}

// ChallengeBoardEntry pairs a challenge with the learner's streak run.
type ChallengeBoardEntry struct {
	Challenge models.Challenge `json:"challenge"`
	DaysMet   int              `json:"daysMet"`
	Claimed   bool             `json:"claimed"`
	Claimable bool             `json:"claimable"`
}

// ProgressionService is the gamification engine: XP, levels, coins, gems,
// streaks, missions, challenges and the reward shop.
type ProgressionService interface {
	State(ctx context.Context, learnerID string) (*models.LearnerState, error)

	MissionBoard(ctx context.Context, learnerID string) ([]MissionBoardEntry, error)
	// AdvanceMission bumps the learner's run by delta and, on crossing
	// the target, awards the mission's XP and coins exactly once.
	AdvanceMission(ctx context.Context, learnerID, missionID string, delta int) (*MissionBoardEntry, error)

	ChallengeBoard(ctx context.Context, learnerID string) ([]ChallengeBoardEntry, error)
	ClaimChallenge(ctx context.Context, learnerID, challengeID string) (*models.ChallengeProgress, error)

	Shop(ctx context.Context, learnerID string) ([]models.Reward, error)
	// Redeem debits the coin wallet, decrements stock and records the
	// redemption. Approval-gated rewards park as pending and mail the
	// guardian a code.
	Redeem(ctx context.Context, learnerID, rewardID string) (*models.Redemption, error)
	// ApproveRedemption releases a pending redemption with the code the
	// guardian received.
	ApproveRedemption(ctx context.Context, learnerID, redemptionID, code string) (*models.Redemption, error)
	Redemptions(ctx context.Context, learnerID string) ([]models.Redemption, error)

	// AwardXP credits xp and coins, keeps the streak alive, recomputes
	// level and badges, feeds the leaderboards and ticks challenge runs.
	AwardXP(ctx context.Context, learnerID string, xp, coins int64) (*models.LearnerState, error)
	// CreditCoins adds purchased coins without touching XP or streaks.
	CreditCoins(ctx context.Context, learnerID string, coins int64) error
}

// DefaultProgressionService is the production implementation.
type DefaultProgressionService struct {
	Progress    progressRepo.ProgressRepository
	Catalog     catalogRepo.CatalogRepository
	Users       userRepo.UserRepository
	Activity    activity.ActivityService
	Notifier    notification.NotificationService
	Leaderboard leaderboard.LeaderboardService
}
