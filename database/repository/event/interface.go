package eventRepo

import (
	"context"
	"questly/database"
	"questly/models"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

type EventRepository interface {
	Create(ctx context.Context, event models.Event) (string, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	// Upcoming returns events starting within the window, soonest first.
	// Pass nil classroomIDs for platform-wide events only.
	Upcoming(ctx context.Context, classroomIDs []string, until time.Time) ([]models.Event, error)
	// MarkReminderSent flips the flag exactly once; false means another
	// worker already sent it.
	MarkReminderSent(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}

type mongoEventRepo struct {
	coll *mongo.Collection
}

// NewMongoEventRepo returns a new EventRepository instance using MongoDB.
func NewMongoEventRepo() EventRepository {
	db := database.MongoClient.Database(database.DBName)
	repo := &mongoEventRepo{
		coll: db.Collection("events"),
	}
	repo.ensureIndexes()
	return repo
}
