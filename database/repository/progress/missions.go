package progressRepo

import (
	"context"
	"fmt"
	"questly/models"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetMissionProgress returns one run, or nil when the learner has not started
// the mission this cycle.
func (r *MongoProgressRepo) GetMissionProgress(ctx context.Context, learnerID, missionID, cycleKey string) (*models.MissionProgress, error) {
	var progress models.MissionProgress
	err := r.missionProg.FindOne(ctx, bson.M{
		"learnerId": learnerID,
		"missionId": missionID,
		"cycleKey":  cycleKey,
	}).Decode(&progress)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

// ListMissionProgress returns the learner's runs for the given cycles. Story
// missions use an empty cycle key, so include "" to fetch those too.
func (r *MongoProgressRepo) ListMissionProgress(ctx context.Context, learnerID string, cycleKeys []string) ([]models.MissionProgress, error) {
	cursor, err := r.missionProg.Find(ctx, bson.M{
		"learnerId": learnerID,
		"cycleKey":  bson.M{"$in": cycleKeys},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []models.MissionProgress
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// IncrementMissionProgress bumps the run's counter, creating the run if this
// is the learner's first qualifying action in the cycle. Returns the updated
// run.
func (r *MongoProgressRepo) IncrementMissionProgress(ctx context.Context, learnerID, missionID, cycleKey string, delta int) (*models.MissionProgress, error) {
	filter := bson.M{
		"learnerId": learnerID,
		"missionId": missionID,
		"cycleKey":  cycleKey,
	}
	update := bson.M{
		"$inc": bson.M{"progress": delta},
		"$set": bson.M{"updatedAt": time.Now()},
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"completed": false,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var progress models.MissionProgress
	if err := r.missionProg.FindOneAndUpdate(ctx, filter, update, opts).Decode(&progress); err != nil {
		return nil, fmt.Errorf("failed to increment mission progress: %w", err)
	}
	return &progress, nil
}

// MarkMissionRewarded flips completed exactly once; the second caller gets
// false back and must not award again.
func (r *MongoProgressRepo) MarkMissionRewarded(ctx context.Context, progressID string) (bool, error) {
	now := time.Now()
	res, err := r.missionProg.UpdateOne(ctx,
		bson.M{"id": progressID, "completed": false},
		bson.M{"$set": bson.M{
			"completed":  true,
			"rewardedAt": now,
			"updatedAt":  now,
		}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// CountMissionsCompletedSince counts runs rewarded after since.
func (r *MongoProgressRepo) CountMissionsCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	return r.missionProg.CountDocuments(ctx, bson.M{"rewardedAt": bson.M{"$gte": since}})
}

// CountMissionsCompletedSinceBy counts runs rewarded after since for the
// listed learners.
func (r *MongoProgressRepo) CountMissionsCompletedSinceBy(ctx context.Context, learnerIDs []string, since time.Time) (int64, error) {
	return r.missionProg.CountDocuments(ctx, bson.M{
		"learnerId":  bson.M{"$in": learnerIDs},
		"rewardedAt": bson.M{"$gte": since},
	})
}

// DeleteMissionProgressBefore prunes stale cycle runs last touched before
// cutoff.
func (r *MongoProgressRepo) DeleteMissionProgressBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.missionProg.DeleteMany(ctx, bson.M{
		"updatedAt": bson.M{"$lt": cutoff},
		"cycleKey":  bson.M{"$ne": ""},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
