// File: questly/services/notification/push.go
package notification

import (
	"context"
	"fmt"

	"questly/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// push sends an FCM message to every device token the user has registered.
// With push disabled (no Firebase credentials) this is a silent no-op.
func (s *DefaultNotificationService) push(ctx context.Context, userID, ntype, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		return nil
	}

	usr, err := s.Users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("could not find user %s: %w", userID, err)
	}

	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["type"]; !ok {
		data["type"] = ntype
	}

	var tokens []string
	for _, d := range usr.Devices {
		if d.FCMToken != "" {
			tokens = append(tokens, d.FCMToken)
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	var lastErr error
	for _, token := range tokens {
		msg := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
		}
		if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
			utils.GetLogger().Warn("FCM send failed",
				zap.String("userID", userID), zap.Error(err))
			lastErr = err
		}
	}
	return lastErr
}
