package progressRepo

import (
	"context"
	"fmt"
	"questly/models"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetState returns the learner's state. Missing documents come back as a
// fresh level-1 state that has not been persisted yet.
func (r *MongoProgressRepo) GetState(ctx context.Context, learnerID string) (*models.LearnerState, error) {
	var state models.LearnerState
	err := r.states.FindOne(ctx, bson.M{"learnerId": learnerID}).Decode(&state)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.LearnerState{
				LearnerID: learnerID,
				Level:     1,
				Badges:    []string{},
				DailyXP:   map[string]int64{},
			}, nil
		}
		return nil, fmt.Errorf("failed to fetch state for learner %s: %w", learnerID, err)
	}
	if state.Badges == nil {
		state.Badges = []string{}
	}
	if state.DailyXP == nil {
		state.DailyXP = map[string]int64{}
	}
	return &state, nil
}

// SaveState upserts the learner's state document.
func (r *MongoProgressRepo) SaveState(ctx context.Context, state *models.LearnerState) error {
	state.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	_, err := r.states.ReplaceOne(ctx, bson.M{"learnerId": state.LearnerID}, state, opts)
	if err != nil {
		return fmt.Errorf("failed to save state for learner %s: %w", state.LearnerID, err)
	}
	return nil
}

// StatesByIDs fetches states for the listed learners. Learners without a
// state document are simply absent from the result.
func (r *MongoProgressRepo) StatesByIDs(ctx context.Context, learnerIDs []string) ([]models.LearnerState, error) {
	cursor, err := r.states.Find(ctx, bson.M{"learnerId": bson.M{"$in": learnerIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var states []models.LearnerState
	if err := cursor.All(ctx, &states); err != nil {
		return nil, err
	}
	return states, nil
}

// CountByLastActiveDay counts learners whose last active day matches day.
func (r *MongoProgressRepo) CountByLastActiveDay(ctx context.Context, day string) (int64, error) {
	return r.states.CountDocuments(ctx, bson.M{"lastActiveDay": day})
}
