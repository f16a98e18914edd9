package moderationRepo

import (
	"context"
	"errors"
	"questly/models"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new moderation flag and returns its ID.
func (r *mongoModerationRepo) Create(ctx context.Context, flag models.ModerationFlag) (string, error) {
	if flag.ID == "" {
		flag.ID = uuid.New().String()
	}
	flag.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, flag)
	if err != nil {
		return "", err
	}
	return flag.ID, nil
}

// GetByID returns a moderation flag by its ID.
func (r *mongoModerationRepo) GetByID(ctx context.Context, id string) (*models.ModerationFlag, error) {
	var flag models.ModerationFlag
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&flag)
	if err != nil {
		return nil, err
	}
	return &flag, nil
}

// ListOpen fetches all unresolved flags.
func (r *mongoModerationRepo) ListOpen(ctx context.Context) ([]models.ModerationFlag, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"resolved": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var flags []models.ModerationFlag
	if err := cursor.All(ctx, &flags); err != nil {
		return nil, err
	}
	return flags, nil
}

// Resolve closes a flag.
func (r *mongoModerationRepo) Resolve(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"resolved": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("flag not found")
	}
	return nil
}

// DeleteByID removes a moderation flag by ID.
func (r *mongoModerationRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("flag not found")
	}
	return nil
}
