// File: questly/services/realtime/interface.go
package realtime

import (
	"context"
	"fmt"

	"questly/models"
)

// Event is the envelope carried on the feed wire between server instances
// and out to subscribed clients. Exactly one of Activity or Toast is set,
// selected by Kind.
type Event struct {
	Kind     string            `json:"kind"` // "activity" or "toast"
	Activity *models.Activity  `json:"activity,omitempty"`
	Toast    *models.Toast     `json:"toast,omitempty"`
}

const (
	EventKindActivity = "activity"
	EventKindToast    = "toast"
)

// Publisher pushes feed events toward subscribed clients. Services hold this
// interface so tests can capture events without Redis.
type Publisher interface {
	PublishActivity(ctx context.Context, channel string, activity models.Activity) error
	PublishToast(ctx context.Context, channel string, toast models.Toast) error
}

// Authorizer decides whether a connected user may subscribe to a channel.
type Authorizer interface {
	CanSubscribe(ctx context.Context, userID, role, channel string) (bool, error)
}

// UserChannel returns the private channel for one account.
func UserChannel(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}

// ClassroomChannel returns the shared channel for a classroom.
func ClassroomChannel(classroomID string) string {
	return fmt.Sprintf("classroom:%s", classroomID)
}

// RoleChannel returns the broadcast channel for a whole role.
func RoleChannel(role models.Role) string {
	return fmt.Sprintf("role:%s", role)
}
