package activityRepo

import (
	"context"
	"questly/database"
	"questly/models"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity models.Activity) (string, error)
	GetByID(ctx context.Context, id string) (*models.Activity, error)
	// RecentForUser returns the newest entries visible to the user, most
	// recent first.
	RecentForUser(ctx context.Context, userID string, classroomIDs []string, limit int64) ([]models.Activity, error)
	RecentForClassroom(ctx context.Context, classroomID string, limit int64) ([]models.Activity, error)
	CountSince(ctx context.Context, types []models.ActivityType, since time.Time) (int64, error)
	DistinctActorsSince(ctx context.Context, since time.Time) (int64, error)
	// MarkRead flips the read flag. Marking an already-read entry is a
	// no-op, not an error.
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	DeleteByID(ctx context.Context, id, userID string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type mongoActivityRepo struct {
	coll *mongo.Collection
}

// NewMongoActivityRepo returns a new ActivityRepository instance using MongoDB.
func NewMongoActivityRepo() ActivityRepository {
	db := database.MongoClient.Database(database.DBName)
	repo := &mongoActivityRepo{
		coll: db.Collection("activities"),
	}
	repo.ensureIndexes()
	return repo
}
