package progressRepo

import (
	"context"
	"errors"
	"questly/database"
	"questly/models"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrInsufficientCoins means the learner's balance cannot cover the cost.
	ErrInsufficientCoins = errors.New("insufficient coins")
	// ErrOutOfStock means the reward has no units left.
	ErrOutOfStock = errors.New("reward out of stock")
	// ErrNotClaimable means the challenge run is unmet or already claimed.
	ErrNotClaimable = errors.New("challenge not claimable")
)

// ProgressRepository persists everything a learner accumulates: the state
// document, per-cycle mission runs, challenge runs and redemptions.
type ProgressRepository interface {
	// GetState returns the learner's state. Missing documents come back as a
	// fresh level-1 state that has not been persisted yet.
	GetState(ctx context.Context, learnerID string) (*models.LearnerState, error)
	SaveState(ctx context.Context, state *models.LearnerState) error
	StatesByIDs(ctx context.Context, learnerIDs []string) ([]models.LearnerState, error)
	CountByLastActiveDay(ctx context.Context, day string) (int64, error)

	GetMissionProgress(ctx context.Context, learnerID, missionID, cycleKey string) (*models.MissionProgress, error)
	ListMissionProgress(ctx context.Context, learnerID string, cycleKeys []string) ([]models.MissionProgress, error)
	IncrementMissionProgress(ctx context.Context, learnerID, missionID, cycleKey string, delta int) (*models.MissionProgress, error)
	// MarkMissionRewarded flips completed exactly once; the second caller
	// gets false back and must not award again.
	MarkMissionRewarded(ctx context.Context, progressID string) (bool, error)
	CountMissionsCompletedSince(ctx context.Context, since time.Time) (int64, error)
	CountMissionsCompletedSinceBy(ctx context.Context, learnerIDs []string, since time.Time) (int64, error)
	DeleteMissionProgressBefore(ctx context.Context, cutoff time.Time) (int64, error)

	GetChallengeProgress(ctx context.Context, learnerID, challengeID string) (*models.ChallengeProgress, error)
	ListChallengeProgress(ctx context.Context, learnerID string) ([]models.ChallengeProgress, error)
	UpsertChallengeProgress(ctx context.Context, progress *models.ChallengeProgress) error
	// ResetBrokenRuns zeroes unclaimed runs whose last qualifying day is
	// before yesterday. Returns how many runs were reset.
	ResetBrokenRuns(ctx context.Context, todayKey, yesterdayKey string) (int64, error)

	ListRedemptions(ctx context.Context, learnerID string, limit int64) ([]models.Redemption, error)
	GetRedemption(ctx context.Context, id string) (*models.Redemption, error)
	// SetRedemptionStatus flips a pending redemption exactly once; false
	// means it was not pending.
	SetRedemptionStatus(ctx context.Context, id, from, to string) (bool, error)
	CountRedemptionsSince(ctx context.Context, since time.Time) (int64, error)
	CountPendingApprovals(ctx context.Context, learnerIDs []string) (map[string]int, error)
	// CoinsSpentSince sums redemption cost per learner after since.
	CoinsSpentSince(ctx context.Context, learnerIDs []string, since time.Time) (map[string]int64, error)

	// RedeemReward spends coins, decrements stock and records the redemption
	// in one transaction.
	RedeemReward(ctx context.Context, learnerID string, reward *models.Reward, status string) (*models.Redemption, error)
	// ClaimChallenge marks a met run claimed and credits the gem reward in
	// one transaction.
	ClaimChallenge(ctx context.Context, learnerID string, challenge *models.Challenge) (*models.ChallengeProgress, error)
}

// MongoProgressRepo implements ProgressRepository using MongoDB. It also
// holds the rewards collection so redemption can debit stock in the same
// transaction.
type MongoProgressRepo struct {
	states        *mongo.Collection
	missionProg   *mongo.Collection
	challengeProg *mongo.Collection
	redemptions   *mongo.Collection
	rewards       *mongo.Collection
}

// NewMongoProgressRepo returns a new ProgressRepository instance using MongoDB.
func NewMongoProgressRepo() ProgressRepository {
	db := database.MongoClient.Database(database.DBName)
	repo := &MongoProgressRepo{
		states:        db.Collection("learner_states"),
		missionProg:   db.Collection("mission_progress"),
		challengeProg: db.Collection("challenge_progress"),
		redemptions:   db.Collection("redemptions"),
		rewards:       db.Collection("rewards"),
	}
	repo.ensureIndexes()
	return repo
}
