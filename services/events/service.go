// File: questly/services/events/service.go
package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"questly/models"
	"questly/services/tasks"
	"questly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const reminderLead = 15 * time.Minute

type NotOwnerError struct {
	ClassroomID string
}

func (e NotOwnerError) Error() string {
	return fmt.Sprintf("classroom %s does not belong to this educator", e.ClassroomID)
}

func (s *DefaultEventService) Create(ctx context.Context, educatorID string, event models.Event) (*models.Event, error) {
	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return nil, fmt.Errorf("event needs a title")
	}
	if event.StartsAt.Before(time.Now()) {
		return nil, fmt.Errorf("event must start in the future")
	}
	if event.DurationMin <= 0 {
		event.DurationMin = 30
	}

	if event.ClassroomID != "" {
		room, err := s.Classrooms.GetByID(ctx, event.ClassroomID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch classroom %s: %w", event.ClassroomID, err)
		}
		if room.EducatorID != educatorID {
			return nil, NotOwnerError{ClassroomID: event.ClassroomID}
		}
	}

	event.ID = uuid.New().String()
	event.CreatedBy = educatorID
	event.CreatedAt = time.Now()
	event.ReminderSent = false

	if _, err := s.Events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to store event: %w", err)
	}

	s.scheduleReminder(event)
	return &event, nil
}

// scheduleReminder enqueues the delayed reminder task. A lost reminder is an
// annoyance, not corruption, so failures only log.
func (s *DefaultEventService) scheduleReminder(event models.Event) {
	if s.Queue == nil {
		return
	}
	fireAt := event.StartsAt.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return
	}
	task, opts, err := tasks.NewEventReminderTask(models.EventReminderPayload{EventID: event.ID}, fireAt)
	if err != nil {
		utils.GetLogger().Warn("failed to build event reminder task",
			zap.String("eventID", event.ID), zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Warn("failed to enqueue event reminder",
			zap.String("eventID", event.ID), zap.Error(err))
	}
}

func (s *DefaultEventService) Upcoming(ctx context.Context, classroomIDs []string, windowDays int) ([]models.Event, error) {
	if windowDays <= 0 {
		windowDays = 7
	}
	until := time.Now().AddDate(0, 0, windowDays)
	evts, err := s.Events.Upcoming(ctx, classroomIDs, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	if evts == nil {
		evts = []models.Event{}
	}
	return evts, nil
}

func (s *DefaultEventService) Delete(ctx context.Context, educatorID, eventID string) error {
	event, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}
	if event.CreatedBy != educatorID {
		return fmt.Errorf("event %s was not created by this educator", eventID)
	}
	return s.Events.DeleteByID(ctx, eventID)
}
