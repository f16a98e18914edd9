package notificationRepo

import (
	"context"
	"errors"
	"questly/models"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new notification and returns its ID.
func (r *mongoNotificationRepo) Create(ctx context.Context, notification models.Notification) (string, error) {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()
	notification.UpdatedAt = notification.CreatedAt

	_, err := r.coll.InsertOne(ctx, notification)
	if err != nil {
		return "", err
	}
	return notification.ID, nil
}

// GetByUserID returns the user's notifications, newest first.
func (r *mongoNotificationRepo) GetByUserID(ctx context.Context, userID string, limit int64) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkSent records successful push delivery.
func (r *mongoNotificationRepo) MarkSent(ctx context.Context, id string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"sent": true, "updatedAt": time.Now()}},
	)
	return err
}

// MarkRead flips the read flag. Scoped by user so nobody reads someone
// else's mail.
func (r *mongoNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "userId": userID},
		bson.M{"$set": bson.M{"read": true, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("notification not found")
	}
	return nil
}

// CountUnread counts the user's unread notifications.
func (r *mongoNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"userId": userID, "read": false})
}

// DeleteByID removes one of the user's notifications.
func (r *mongoNotificationRepo) DeleteByID(ctx context.Context, id, userID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("notification not found")
	}
	return nil
}
