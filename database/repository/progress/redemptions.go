package progressRepo

import (
	"context"
	"questly/models"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListRedemptions returns the learner's redemptions, newest first.
func (r *MongoProgressRepo) ListRedemptions(ctx context.Context, learnerID string, limit int64) ([]models.Redemption, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.redemptions.Find(ctx, bson.M{"learnerId": learnerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var redemptions []models.Redemption
	if err := cursor.All(ctx, &redemptions); err != nil {
		return nil, err
	}
	return redemptions, nil
}

// CoinsSpentSince sums redemption cost per learner after since, using a
// $group pipeline so one round trip covers a guardian's whole family.
func (r *MongoProgressRepo) CoinsSpentSince(ctx context.Context, learnerIDs []string, since time.Time) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"learnerId": bson.M{"$in": learnerIDs},
			"createdAt": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$learnerId",
			"spent": bson.M{"$sum": "$cost"},
		}}},
	}

	cursor, err := r.redemptions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	spent := make(map[string]int64, len(learnerIDs))
	for cursor.Next(ctx) {
		var row struct {
			LearnerID string `bson:"_id"`
			Spent     int64  `bson:"spent"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		spent[row.LearnerID] = row.Spent
	}
	return spent, cursor.Err()
}

// GetRedemption returns one redemption by ID, or nil when it does not exist.
func (r *MongoProgressRepo) GetRedemption(ctx context.Context, id string) (*models.Redemption, error) {
	var redemption models.Redemption
	err := r.redemptions.FindOne(ctx, bson.M{"id": id}).Decode(&redemption)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &redemption, nil
}

// SetRedemptionStatus flips a redemption from one status to another exactly
// once. A second caller sees false and must not act on it again.
func (r *MongoProgressRepo) SetRedemptionStatus(ctx context.Context, id, from, to string) (bool, error) {
	res, err := r.redemptions.UpdateOne(ctx,
		bson.M{"id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// CountRedemptionsSince counts redemptions recorded after since.
func (r *MongoProgressRepo) CountRedemptionsSince(ctx context.Context, since time.Time) (int64, error) {
	return r.redemptions.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": since}})
}

// CountPendingApprovals returns, per learner, how many redemptions are
// parked awaiting a guardian code.
func (r *MongoProgressRepo) CountPendingApprovals(ctx context.Context, learnerIDs []string) (map[string]int, error) {
	cursor, err := r.redemptions.Find(ctx, bson.M{
		"learnerId": bson.M{"$in": learnerIDs},
		"status":    models.RedemptionPendingApproval,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int, len(learnerIDs))
	for cursor.Next(ctx) {
		var redemption models.Redemption
		if err := cursor.Decode(&redemption); err != nil {
			return nil, err
		}
		counts[redemption.LearnerID]++
	}
	return counts, cursor.Err()
}
