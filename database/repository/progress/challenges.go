package progressRepo

import (
	"context"
	"questly/models"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetChallengeProgress returns one run, or nil when the learner has not
// started the challenge.
func (r *MongoProgressRepo) GetChallengeProgress(ctx context.Context, learnerID, challengeID string) (*models.ChallengeProgress, error) {
	var progress models.ChallengeProgress
	err := r.challengeProg.FindOne(ctx, bson.M{
		"learnerId":   learnerID,
		"challengeId": challengeID,
	}).Decode(&progress)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

// ListChallengeProgress returns all of the learner's challenge runs.
func (r *MongoProgressRepo) ListChallengeProgress(ctx context.Context, learnerID string) ([]models.ChallengeProgress, error) {
	cursor, err := r.challengeProg.Find(ctx, bson.M{"learnerId": learnerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []models.ChallengeProgress
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// UpsertChallengeProgress writes the run keyed by learner and challenge.
func (r *MongoProgressRepo) UpsertChallengeProgress(ctx context.Context, progress *models.ChallengeProgress) error {
	if progress.ID == "" {
		progress.ID = uuid.New().String()
	}
	progress.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	_, err := r.challengeProg.ReplaceOne(ctx, bson.M{
		"learnerId":   progress.LearnerID,
		"challengeId": progress.ChallengeID,
	}, progress, opts)
	return err
}

// ResetBrokenRuns zeroes unclaimed runs whose last qualifying day is before
// yesterday. Runs touched today or yesterday are still alive.
func (r *MongoProgressRepo) ResetBrokenRuns(ctx context.Context, todayKey, yesterdayKey string) (int64, error) {
	res, err := r.challengeProg.UpdateMany(ctx,
		bson.M{
			"claimed":    false,
			"daysMet":    bson.M{"$gt": 0},
			"lastDayMet": bson.M{"$nin": []string{todayKey, yesterdayKey}},
		},
		bson.M{"$set": bson.M{
			"daysMet":   0,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
