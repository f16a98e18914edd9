package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoCatalogRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	for _, coll := range []*mongo.Collection{r.missions, r.rewards, r.challenges, r.passages} {
		indexModels := []mongo.IndexModel{
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "active", Value: 1}}},
		}
		if _, err := coll.Indexes().CreateMany(ctx, indexModels); err != nil {
			fmt.Printf("failed to create %s indexes: %v\n", coll.Name(), err)
		}
	}
}
