package catalogRepo

import (
	"context"
	"questly/database"
	"questly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository holds the content catalog: missions, rewards, challenges
// and reading passages. Entries are authored by educators and admins and read
// by every learner, so the collections are small and query-heavy.
type CatalogRepository interface {
	CreateMission(ctx context.Context, mission models.Mission) (string, error)
	GetMission(ctx context.Context, id string) (*models.Mission, error)
	ActiveMissions(ctx context.Context, kind models.MissionKind) ([]models.Mission, error)
	UpdateMission(ctx context.Context, mission models.Mission) error

	CreateReward(ctx context.Context, reward models.Reward) (string, error)
	GetReward(ctx context.Context, id string) (*models.Reward, error)
	ActiveRewards(ctx context.Context) ([]models.Reward, error)
	UpdateReward(ctx context.Context, reward models.Reward) error

	CreateChallenge(ctx context.Context, challenge models.Challenge) (string, error)
	GetChallenge(ctx context.Context, id string) (*models.Challenge, error)
	ActiveChallenges(ctx context.Context) ([]models.Challenge, error)

	CreatePassage(ctx context.Context, passage models.VoicePassage) (string, error)
	GetPassage(ctx context.Context, id string) (*models.VoicePassage, error)
	ActivePassages(ctx context.Context, maxLevel int) ([]models.VoicePassage, error)
}

type mongoCatalogRepo struct {
	missions   *mongo.Collection
	rewards    *mongo.Collection
	challenges *mongo.Collection
	passages   *mongo.Collection
}

// NewMongoCatalogRepo returns a new CatalogRepository instance using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database(database.DBName)
	repo := &mongoCatalogRepo{
		missions:   db.Collection("missions"),
		rewards:    db.Collection("rewards"),
		challenges: db.Collection("challenges"),
		passages:   db.Collection("voice_passages"),
	}
	repo.ensureIndexes()
	return repo
}
