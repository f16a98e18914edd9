package progressRepo

import (
	"context"
	"fmt"
	"questly/models"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoProgressRepo) withTransaction(ctx context.Context, txnFn func(sc mongo.SessionContext) error) error {
	client := r.states.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// RedeemReward spends coins, decrements stock and records the redemption
// atomically. The guarded filters catch double-spends: a balance or stock
// that moved under us aborts the whole transaction.
func (r *MongoProgressRepo) RedeemReward(ctx context.Context, learnerID string, reward *models.Reward, status string) (*models.Redemption, error) {
	redemption := &models.Redemption{
		ID:         uuid.New().String(),
		RewardID:   reward.ID,
		RewardName: reward.Name,
		LearnerID:  learnerID,
		Cost:       reward.Cost,
		Status:     status,
		CreatedAt:  time.Now(),
	}

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.states.UpdateOne(sc,
			bson.M{"learnerId": learnerID, "coins": bson.M{"$gte": reward.Cost}},
			bson.M{"$inc": bson.M{"coins": -reward.Cost}, "$set": bson.M{"updatedAt": time.Now()}},
		)
		if err != nil {
			return fmt.Errorf("debit coins failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrInsufficientCoins
		}

		if reward.Stock >= 0 {
			res, err := r.rewards.UpdateOne(sc,
				bson.M{"id": reward.ID, "stock": bson.M{"$gt": 0}},
				bson.M{"$inc": bson.M{"stock": -1}},
			)
			if err != nil {
				return fmt.Errorf("decrement stock failed: %w", err)
			}
			if res.MatchedCount == 0 {
				return ErrOutOfStock
			}
		}

		if _, err := r.redemptions.InsertOne(sc, redemption); err != nil {
			return fmt.Errorf("insert redemption failed: %w", err)
		}
		return nil
	}

	if err := r.withTransaction(ctx, txnFn); err != nil {
		return nil, err
	}
	return redemption, nil
}

// ClaimChallenge marks a met run claimed and credits the gem reward
// atomically. Claiming twice is a no-op error, not a double credit.
func (r *MongoProgressRepo) ClaimChallenge(ctx context.Context, learnerID string, challenge *models.Challenge) (*models.ChallengeProgress, error) {
	now := time.Now()

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.challengeProg.UpdateOne(sc,
			bson.M{
				"learnerId":   learnerID,
				"challengeId": challenge.ID,
				"claimed":     false,
				"daysMet":     bson.M{"$gte": challenge.DaysRequired},
			},
			bson.M{"$set": bson.M{
				"claimed":   true,
				"claimedAt": now,
				"updatedAt": now,
			}},
		)
		if err != nil {
			return fmt.Errorf("mark claimed failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotClaimable
		}

		update := bson.M{
			"$inc": bson.M{"gems": challenge.GemReward},
			"$set": bson.M{"updatedAt": now},
		}
		if challenge.Badge != "" {
			update["$addToSet"] = bson.M{"badges": challenge.Badge}
		}
		if _, err := r.states.UpdateOne(sc, bson.M{"learnerId": learnerID}, update); err != nil {
			return fmt.Errorf("credit gems failed: %w", err)
		}
		return nil
	}

	if err := r.withTransaction(ctx, txnFn); err != nil {
		return nil, err
	}
	return r.GetChallengeProgress(ctx, learnerID, challenge.ID)
}
