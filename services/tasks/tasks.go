// File: questly/services/tasks/tasks.go
package tasks

import (
	"encoding/json"
	"time"

	"questly/config"
	"questly/models"

	"github.com/hibiken/asynq"
)

// Task type names shared by the enqueueing services and the cron worker.
const (
	TypeEventReminder        = "event:reminder"
	TypeMissionResetDaily    = "mission:reset_daily"
	TypeStreakSweep          = "streak:sweep"
	TypeLeaderboardResetWeek = "leaderboard:reset_weekly"
)

// QueueRedisOpt builds the asynq connection options from the app config. The
// queue lives on its own Redis DB so flushing the cache never drops tasks.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewEventReminderTask builds a delayed task that fires at the reminder time.
func NewEventReminderTask(payload models.EventReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeEventReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.MaxRetry(3)}

	return task, opts, nil
}
