package classroomRepo

import (
	"context"
	"errors"
	"questly/models"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new classroom and returns its ID.
func (r *mongoClassroomRepo) Create(ctx context.Context, classroom models.Classroom) (string, error) {
	if classroom.ID == "" {
		classroom.ID = uuid.New().String()
	}
	classroom.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, classroom)
	if err != nil {
		return "", err
	}
	return classroom.ID, nil
}

// GetByID returns a classroom by its ID.
func (r *mongoClassroomRepo) GetByID(ctx context.Context, id string) (*models.Classroom, error) {
	var classroom models.Classroom
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&classroom)
	if err != nil {
		return nil, err
	}
	return &classroom, nil
}

// GetByJoinCode returns the classroom carrying the given join code.
func (r *mongoClassroomRepo) GetByJoinCode(ctx context.Context, code string) (*models.Classroom, error) {
	var classroom models.Classroom
	err := r.coll.FindOne(ctx, bson.M{"joinCode": code}).Decode(&classroom)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("no classroom with that join code")
		}
		return nil, err
	}
	return &classroom, nil
}

// GetByEducatorID fetches all classrooms run by a specific educator.
func (r *mongoClassroomRepo) GetByEducatorID(ctx context.Context, educatorID string) ([]models.Classroom, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"educatorId": educatorID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var classrooms []models.Classroom
	if err := cursor.All(ctx, &classrooms); err != nil {
		return nil, err
	}
	return classrooms, nil
}

// AddLearner records a learner joining the classroom.
func (r *mongoClassroomRepo) AddLearner(ctx context.Context, classroomID, learnerID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": classroomID},
		bson.M{"$addToSet": bson.M{"learnerIds": learnerID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("classroom not found")
	}
	return nil
}

// RemoveLearner drops a learner from the classroom roster.
func (r *mongoClassroomRepo) RemoveLearner(ctx context.Context, classroomID, learnerID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": classroomID},
		bson.M{"$pull": bson.M{"learnerIds": learnerID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("classroom not found")
	}
	return nil
}

// Count returns the total number of classrooms.
func (r *mongoClassroomRepo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

// DeleteByID removes a classroom by ID.
func (r *mongoClassroomRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("classroom not found")
	}
	return nil
}
