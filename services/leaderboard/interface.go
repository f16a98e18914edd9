// File: questly/services/leaderboard/interface.go
package leaderboard

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// Standing is one row of a leaderboard page.
type Standing struct {
	LearnerID string `json:"learnerId"`
	Rank      int64  `json:"rank"` // 1-based
	XP        int64  `json:"xp"`
}

// LeaderboardService keeps weekly and all-time XP standings. Weekly boards
// exist globally and per classroom; the weekly ones are wiped by cron every
// Monday.
type LeaderboardService interface {
	// RecordXP adds xp to the learner on the global boards and on each
	// listed classroom's weekly board.
	RecordXP(ctx context.Context, learnerID string, classroomIDs []string, xp int64) error
	TopWeekly(ctx context.Context, classroomID string, n int64) ([]Standing, error)
	TopAllTime(ctx context.Context, n int64) ([]Standing, error)
	// WeeklyRank returns the learner's 1-based global weekly rank, or 0
	// when the learner has no score yet.
	WeeklyRank(ctx context.Context, learnerID string) (int64, error)
	// ResetWeekly clears every weekly board and returns how many keys
	// were removed.
	ResetWeekly(ctx context.Context) (int64, error)
}

// RedisLeaderboard implements LeaderboardService on Redis sorted sets.
type RedisLeaderboard struct {
	client *redis.Client
}

func NewRedisLeaderboard(client *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{client: client}
}
