// File: questly/services/tutor/contextStore.go
package tutor

import (
	"context"
	"encoding/json"
	"time"

	"questly/models"
	"questly/utils"

	"github.com/go-redis/redis/v8"
)

type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, learnerID string) (*models.TutorContext, error) {
	key := utils.TutorContextPrefix + learnerID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &models.TutorContext{LearnerID: learnerID}, nil
	}
	if err != nil {
		return nil, err
	}
	var tc models.TutorContext
	if err := json.Unmarshal([]byte(data), &tc); err != nil {
		return nil, err
	}
	return &tc, nil
}

func (s *RedisContextStore) Set(ctx context.Context, learnerID string, tc *models.TutorContext) error {
	key := utils.TutorContextPrefix + learnerID
	b, err := json.Marshal(tc)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, learnerID string) error {
	return s.client.Del(ctx, utils.TutorContextPrefix+learnerID).Err()
}

// IncrementQuota bumps today's counter. The key carries the day so the cap
// resets itself at midnight UTC without a sweeper.
func (s *RedisContextStore) IncrementQuota(ctx context.Context, learnerID string) (int64, error) {
	key := utils.TutorHintQuotaPrefix + learnerID + ":" + time.Now().UTC().Format("2006-01-02")

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = s.client.Expire(ctx, key, 25*time.Hour).Err()
	}
	return count, nil
}
