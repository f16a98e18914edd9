package progressRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoProgressRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	create := func(coll *mongo.Collection, indexModels []mongo.IndexModel) {
		if _, err := coll.Indexes().CreateMany(ctx, indexModels); err != nil {
			fmt.Printf("failed to create %s indexes: %v\n", coll.Name(), err)
		}
	}

	create(r.states, []mongo.IndexModel{
		{Keys: bson.D{{Key: "learnerId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "lastActiveDay", Value: 1}}},
	})

	create(r.missionProg, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "learnerId", Value: 1},
			{Key: "missionId", Value: 1},
			{Key: "cycleKey", Value: 1},
		}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "rewardedAt", Value: 1}}},
	})

	create(r.challengeProg, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "learnerId", Value: 1},
			{Key: "challengeId", Value: 1},
		}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "claimed", Value: 1}, {Key: "lastDayMet", Value: 1}}},
	})

	create(r.redemptions, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "learnerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
}
