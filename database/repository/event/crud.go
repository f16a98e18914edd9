package eventRepo

import (
	"context"
	"errors"
	"fmt"
	"questly/models"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new event and returns its ID.
func (r *mongoEventRepo) Create(ctx context.Context, event models.Event) (string, error) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, event)
	if err != nil {
		return "", err
	}
	return event.ID, nil
}

// GetByID returns an event by its ID.
func (r *mongoEventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&event)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Upcoming returns events starting within the window, soonest first. Events
// with no classroom are platform-wide and always included.
func (r *mongoEventRepo) Upcoming(ctx context.Context, classroomIDs []string, until time.Time) ([]models.Event, error) {
	or := []bson.M{{"classroomId": ""}}
	if len(classroomIDs) > 0 {
		or = append(or, bson.M{"classroomId": bson.M{"$in": classroomIDs}})
	}

	filter := bson.M{
		"startsAt": bson.M{"$gte": time.Now(), "$lte": until},
		"$or":      or,
	}
	opts := options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// MarkReminderSent flips the flag exactly once; false means another worker
// already sent it.
func (r *mongoEventRepo) MarkReminderSent(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "reminderSent": false},
		bson.M{"$set": bson.M{"reminderSent": true}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder sent for event %s: %w", id, err)
	}
	return res.ModifiedCount == 1, nil
}

// DeleteByID removes an event by ID.
func (r *mongoEventRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("event not found")
	}
	return nil
}

func (r *mongoEventRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "startsAt", Value: 1}}},
		{Keys: bson.D{{Key: "classroomId", Value: 1}, {Key: "startsAt", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		fmt.Printf("failed to create event indexes: %v\n", err)
	}
}
