package notificationRepo

import (
	"context"
	"questly/database"
	"questly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification models.Notification) (string, error)
	GetByUserID(ctx context.Context, userID string, limit int64) ([]models.Notification, error)
	MarkSent(ctx context.Context, id string) error
	MarkRead(ctx context.Context, id, userID string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
	DeleteByID(ctx context.Context, id, userID string) error
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo returns a new NotificationRepository instance using MongoDB.
func NewMongoNotificationRepo() NotificationRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoNotificationRepo{
		coll: db.Collection("notifications"),
	}
}
