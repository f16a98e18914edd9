package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	classroomRepo "questly/database/repository/classroom"
	eventRepo "questly/database/repository/event"
	progressRepo "questly/database/repository/progress"
	"questly/models"
	"questly/services/leaderboard"
	"questly/services/notification"
	"questly/services/progression"
	"questly/services/realtime"
	"questly/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// Deps carries everything the background worker touches.
type Deps struct {
	Events      eventRepo.EventRepository
	Classrooms  classroomRepo.ClassroomRepository
	Progress    progressRepo.ProgressRepository
	Leaderboard leaderboard.LeaderboardService
	Notifier    notification.NotificationService
}

// InitWorker runs the asynq worker and its cron scheduler in background.
func InitWorker(deps Deps) {
	redisOpts := tasks.QueueRedisOpt()

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEventReminder, handleEventReminder(deps))
	mux.HandleFunc(tasks.TypeMissionResetDaily, handleMissionResetDaily(deps))
	mux.HandleFunc(tasks.TypeStreakSweep, handleStreakSweep(deps))
	mux.HandleFunc(tasks.TypeLeaderboardResetWeek, handleLeaderboardReset(deps))

	// Start Redis health monitor
	go monitorRedisConnection(redisOpts)

	go runScheduler(redisOpts)

	// Start async worker with retry logic
	go func() {
		log.Println("[Worker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// runScheduler registers the recurring maintenance tasks. Cron specs are UTC.
func runScheduler(redisOpts asynq.RedisClientOpt) {
	loc := time.UTC
	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: loc})

	entries := []struct {
		spec string
		task *asynq.Task
	}{
		{"0 0 * * *", asynq.NewTask(tasks.TypeMissionResetDaily, nil)},
		{"0 * * * *", asynq.NewTask(tasks.TypeStreakSweep, nil)},
		{"0 0 * * 1", asynq.NewTask(tasks.TypeLeaderboardResetWeek, nil)},
	}
	for _, e := range entries {
		if _, err := scheduler.Register(e.spec, e.task); err != nil {
			log.Printf("[Scheduler] ❌ Failed to register %s: %v", e.task.Type(), err)
		}
	}

	if err := scheduler.Run(); err != nil {
		log.Printf("[Scheduler] ❌ Scheduler stopped: %v", err)
	}
}

// handleEventReminder fires the T-15m push for a scheduled event. The
// reminder-sent flag flips exactly once, so a retried task is a no-op.
func handleEventReminder(deps Deps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.EventReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[EventReminder] 🔴 Invalid payload: %v", err)
			return err
		}

		event, err := deps.Events.GetByID(ctx, p.EventID)
		if err != nil {
			log.Printf("[EventReminder] ⚠️ Event %s not found, dropping reminder: %v", p.EventID, err)
			return nil
		}

		first, err := deps.Events.MarkReminderSent(ctx, event.ID)
		if err != nil {
			return err
		}
		if !first {
			return nil
		}

		body := event.Title + " starts in 15 minutes!"
		data := map[string]string{"eventId": event.ID, "startsAt": event.StartsAt.Format(time.RFC3339)}

		if event.ClassroomID == "" {
			// Platform-wide events only toast; there is no member list to push to.
			if err := deps.Notifier.Toast(ctx, realtime.RoleChannel(models.RoleLearner), models.SeverityInfo, body, 0); err != nil {
				log.Printf("[EventReminder] ❌ Broadcast toast failed: %v", err)
			}
			return nil
		}

		room, err := deps.Classrooms.GetByID(ctx, event.ClassroomID)
		if err != nil {
			log.Printf("[EventReminder] ⚠️ Classroom %s not found: %v", event.ClassroomID, err)
			return nil
		}
		for _, learnerID := range room.LearnerIDs {
			if err := deps.Notifier.Notify(ctx, learnerID, "event_reminder", "Starting soon", body, data); err != nil {
				log.Printf("[EventReminder] ❌ Push to %s failed: %v", learnerID, err)
			}
		}
		if err := deps.Notifier.Toast(ctx, realtime.ClassroomChannel(event.ClassroomID), models.SeverityInfo, body, 0); err != nil {
			log.Printf("[EventReminder] ❌ Classroom toast failed: %v", err)
		}
		return nil
	}
}

// handleMissionResetDaily prunes mission runs from cycles old enough that no
// dashboard or board will ever read them again.
func handleMissionResetDaily(deps Deps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		cutoff := time.Now().UTC().AddDate(0, 0, -30)
		pruned, err := deps.Progress.DeleteMissionProgressBefore(ctx, cutoff)
		if err != nil {
			log.Printf("[MissionReset] ❌ Prune failed: %v", err)
			return err
		}
		log.Printf("[MissionReset] 🧹 Pruned %d stale mission runs", pruned)
		return nil
	}
}

// handleStreakSweep zeroes challenge runs whose last qualifying day has
// slipped past yesterday.
func handleStreakSweep(deps Deps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		now := time.Now().UTC()
		today := progression.DayKey(now)
		yesterday := progression.DayKey(now.AddDate(0, 0, -1))

		reset, err := deps.Progress.ResetBrokenRuns(ctx, today, yesterday)
		if err != nil {
			log.Printf("[StreakSweep] ❌ Sweep failed: %v", err)
			return err
		}
		if reset > 0 {
			log.Printf("[StreakSweep] 💤 Reset %d broken challenge runs", reset)
		}
		return nil
	}
}

func handleLeaderboardReset(deps Deps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		cleared, err := deps.Leaderboard.ResetWeekly(ctx)
		if err != nil {
			log.Printf("[LeaderboardReset] ❌ Reset failed: %v", err)
			return err
		}
		log.Printf("[LeaderboardReset] 🏁 Cleared %d weekly boards", cleared)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(opts asynq.RedisClientOpt) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[Worker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
