// File: questly/services/notification/interface.go
package notification

import (
	"context"

	notificationRepo "questly/database/repository/notification"
	userRepo "questly/database/repository/user"
	"questly/models"
	"questly/services/realtime"
)

// NotificationService persists notifications, pushes them to the user's
// devices over FCM and mirrors transient toasts onto realtime channels.
type NotificationService interface {
	// Notify stores the notification and attempts an FCM push to every
	// device the user has registered. The stored copy survives a failed
	// push.
	Notify(ctx context.Context, userID, ntype, title, body string, data map[string]string) error
	// Toast sends a transient banner to a realtime channel. Toasts are
	// never persisted; a client that is offline simply misses it.
	Toast(ctx context.Context, channel string, severity models.Severity, message string, autoDismissMs int) error
	ListForUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo      notificationRepo.NotificationRepository
	Users     userRepo.UserRepository
	Publisher realtime.Publisher
}
