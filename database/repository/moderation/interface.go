package moderationRepo

import (
	"context"
	"questly/database"
	"questly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ModerationRepository interface {
	Create(ctx context.Context, flag models.ModerationFlag) (string, error)
	GetByID(ctx context.Context, id string) (*models.ModerationFlag, error)
	ListOpen(ctx context.Context) ([]models.ModerationFlag, error)
	Resolve(ctx context.Context, id string) error
	DeleteByID(ctx context.Context, id string) error
}

type mongoModerationRepo struct {
	coll *mongo.Collection
}

// NewMongoModerationRepo returns a new ModerationRepository instance using MongoDB.
func NewMongoModerationRepo() ModerationRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoModerationRepo{
		coll: db.Collection("moderation_flags"),
	}
}
