package classroomRepo

import (
	"context"
	"questly/database"
	"questly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ClassroomRepository interface {
	Create(ctx context.Context, classroom models.Classroom) (string, error)
	GetByID(ctx context.Context, id string) (*models.Classroom, error)
	GetByJoinCode(ctx context.Context, code string) (*models.Classroom, error)
	GetByEducatorID(ctx context.Context, educatorID string) ([]models.Classroom, error)
	AddLearner(ctx context.Context, classroomID, learnerID string) error
	RemoveLearner(ctx context.Context, classroomID, learnerID string) error
	Count(ctx context.Context) (int64, error)
	DeleteByID(ctx context.Context, id string) error
}

type mongoClassroomRepo struct {
	coll *mongo.Collection
}

// NewMongoClassroomRepo returns a new ClassroomRepository instance using MongoDB.
func NewMongoClassroomRepo() ClassroomRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoClassroomRepo{
		coll: db.Collection("classrooms"),
	}
}
