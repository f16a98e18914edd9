// File: questly/services/notification/service.go
package notification

import (
	"context"
	"fmt"
	"time"

	"questly/models"
	"questly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notify stores the notification first, then pushes. A push failure is
// logged and swallowed so the stored copy still shows up on the next fetch.
func (s *DefaultNotificationService) Notify(ctx context.Context, userID, ntype, title, body string, data map[string]string) error {
	record := models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      ntype,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if len(data) > 0 {
		record.Data = make(map[string]any, len(data))
		for k, v := range data {
			record.Data[k] = v
		}
	}

	if _, err := s.Repo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	if err := s.push(ctx, userID, ntype, title, body, data); err != nil {
		utils.GetLogger().Warn("Push delivery failed",
			zap.String("userID", userID), zap.String("type", ntype), zap.Error(err))
		return nil
	}

	if err := s.Repo.MarkSent(ctx, record.ID); err != nil {
		utils.GetLogger().Warn("Failed to mark notification sent",
			zap.String("notificationID", record.ID), zap.Error(err))
	}
	return nil
}

// Toast mirrors a transient banner onto a realtime channel.
func (s *DefaultNotificationService) Toast(ctx context.Context, channel string, severity models.Severity, message string, autoDismissMs int) error {
	toast := models.Toast{
		ID:            uuid.New().String(),
		Severity:      severity,
		Message:       message,
		AutoDismissMs: autoDismissMs,
	}
	if err := s.Publisher.PublishToast(ctx, channel, toast); err != nil {
		return fmt.Errorf("failed to publish toast: %w", err)
	}
	return nil
}

func (s *DefaultNotificationService) ListForUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	notifications, err := s.Repo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

func (s *DefaultNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.Repo.CountUnread(ctx, userID)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.Repo.MarkRead(ctx, id, userID)
}

func (s *DefaultNotificationService) Delete(ctx context.Context, id, userID string) error {
	return s.Repo.DeleteByID(ctx, id, userID)
}
