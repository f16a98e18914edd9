// File: questly/services/events/interface.go
package events

import (
	"context"

	classroomRepo "questly/database/repository/classroom"
	eventRepo "questly/database/repository/event"
	"questly/models"

	"github.com/hibiken/asynq"
)

// EventService lets educators schedule classroom happenings and keeps the
// reminder tasks in step with them.
type EventService interface {
	// Create stores the event and enqueues a reminder task fifteen minutes
	// before it starts.
	Create(ctx context.Context, educatorID string, event models.Event) (*models.Event, error)
	// Upcoming returns events visible to the user within the window in days.
	Upcoming(ctx context.Context, classroomIDs []string, windowDays int) ([]models.Event, error)
	Delete(ctx context.Context, educatorID, eventID string) error
}

// DefaultEventService is the production implementation.
type DefaultEventService struct {
	Events     eventRepo.EventRepository
	Classrooms classroomRepo.ClassroomRepository
	Queue      *asynq.Client
}
