// File: questly/services/leaderboard/service.go
package leaderboard

import (
	"context"
	"fmt"

	"questly/utils"

	"github.com/go-redis/redis/v8"
)

func weeklyKey(classroomID string) string {
	if classroomID == "" {
		return utils.LeaderboardWeeklyKey
	}
	return utils.LeaderboardWeeklyKey + ":classroom:" + classroomID
}

// RecordXP adds xp on the global weekly board, the all-time board and each
// classroom's weekly board.
func (l *RedisLeaderboard) RecordXP(ctx context.Context, learnerID string, classroomIDs []string, xp int64) error {
	if xp <= 0 {
		return nil
	}

	pipe := l.client.Pipeline()
	pipe.ZIncrBy(ctx, utils.LeaderboardWeeklyKey, float64(xp), learnerID)
	pipe.ZIncrBy(ctx, utils.LeaderboardAllTimeKey, float64(xp), learnerID)
	for _, id := range classroomIDs {
		pipe.ZIncrBy(ctx, weeklyKey(id), float64(xp), learnerID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record leaderboard xp: %w", err)
	}
	return nil
}

// TopWeekly returns the top n standings. Empty classroomID means the global
// board.
func (l *RedisLeaderboard) TopWeekly(ctx context.Context, classroomID string, n int64) ([]Standing, error) {
	return l.top(ctx, weeklyKey(classroomID), n)
}

func (l *RedisLeaderboard) TopAllTime(ctx context.Context, n int64) ([]Standing, error) {
	return l.top(ctx, utils.LeaderboardAllTimeKey, n)
}

func (l *RedisLeaderboard) top(ctx context.Context, key string, n int64) ([]Standing, error) {
	if n <= 0 || n > 100 {
		n = 10
	}
	rows, err := l.client.ZRevRangeWithScores(ctx, key, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard %s: %w", key, err)
	}

	standings := make([]Standing, 0, len(rows))
	for i, row := range rows {
		learnerID, _ := row.Member.(string)
		standings = append(standings, Standing{
			LearnerID: learnerID,
			Rank:      int64(i + 1),
			XP:        int64(row.Score),
		})
	}
	return standings, nil
}

// WeeklyRank returns the learner's 1-based global weekly rank, or 0 when the
// learner has not scored this week.
func (l *RedisLeaderboard) WeeklyRank(ctx context.Context, learnerID string) (int64, error) {
	rank, err := l.client.ZRevRank(ctx, utils.LeaderboardWeeklyKey, learnerID).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read leaderboard rank: %w", err)
	}
	return rank + 1, nil
}

// ResetWeekly removes the global weekly board and every classroom board.
// The all-time board is never reset.
func (l *RedisLeaderboard) ResetWeekly(ctx context.Context) (int64, error) {
	keys := []string{utils.LeaderboardWeeklyKey}

	iter := l.client.Scan(ctx, 0, utils.LeaderboardWeeklyKey+":classroom:*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan weekly boards: %w", err)
	}

	removed, err := l.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to reset weekly boards: %w", err)
	}
	return removed, nil
}
