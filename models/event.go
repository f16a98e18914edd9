package models

import "time"

// Event is a scheduled classroom happening (quiz, live session, fair).
type Event struct {
	ID           string    `bson:"id" json:"id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	ClassroomID  string    `bson:"classroomId,omitempty" json:"classroomId,omitempty"`
	CreatedBy    string    `bson:"createdBy" json:"createdBy"`
	StartsAt     time.Time `bson:"startsAt" json:"startsAt"`
	DurationMin  int       `bson:"durationMin" json:"durationMin"`
	ReminderSent bool      `bson:"reminderSent" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// EventReminderPayload is the asynq task body for event:reminder.
type EventReminderPayload struct {
	EventID string `json:"eventId"`
}
