package activityRepo

import (
	"context"
	"questly/models"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new activity entry and returns its ID.
func (r *mongoActivityRepo) Create(ctx context.Context, activity models.Activity) (string, error) {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	if activity.Timestamp.IsZero() {
		activity.Timestamp = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, activity)
	if err != nil {
		return "", err
	}
	return activity.ID, nil
}

// GetByID returns an activity entry by its ID.
func (r *mongoActivityRepo) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	var activity models.Activity
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&activity)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// RecentForUser returns the newest entries addressed to the user directly or
// to any of their classrooms, most recent first.
func (r *mongoActivityRepo) RecentForUser(ctx context.Context, userID string, classroomIDs []string, limit int64) ([]models.Activity, error) {
	or := []bson.M{{"userId": userID}}
	if len(classroomIDs) > 0 {
		or = append(or, bson.M{"classroomId": bson.M{"$in": classroomIDs}})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"$or": or}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// RecentForClassroom returns the classroom's newest entries, most recent first.
func (r *mongoActivityRepo) RecentForClassroom(ctx context.Context, classroomID string, limit int64) ([]models.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"classroomId": classroomID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// CountSince counts entries of the given types created after since. Pass an
// empty slice to count all types.
func (r *mongoActivityRepo) CountSince(ctx context.Context, types []models.ActivityType, since time.Time) (int64, error) {
	filter := bson.M{"timestamp": bson.M{"$gte": since}}
	if len(types) > 0 {
		filter["type"] = bson.M{"$in": types}
	}
	return r.coll.CountDocuments(ctx, filter)
}

// DistinctActorsSince counts how many distinct users generated entries after
// since.
func (r *mongoActivityRepo) DistinctActorsSince(ctx context.Context, since time.Time) (int64, error) {
	values, err := r.coll.Distinct(ctx, "userId", bson.M{"timestamp": bson.M{"$gte": since}})
	if err != nil {
		return 0, err
	}
	return int64(len(values)), nil
}

// MarkRead flips the read flag. The userID filter stops accounts marking
// entries that are not addressed to them.
func (r *mongoActivityRepo) MarkRead(ctx context.Context, id, userID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "userId": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

// MarkAllRead marks every unread entry addressed to the user and returns the
// count flipped.
func (r *mongoActivityRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"userId": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// DeleteByID removes one entry addressed to the user.
func (r *mongoActivityRepo) DeleteByID(ctx context.Context, id, userID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "userId": userID})
	return err
}

// DeleteOlderThan prunes entries older than cutoff and returns the count
// removed.
func (r *mongoActivityRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
