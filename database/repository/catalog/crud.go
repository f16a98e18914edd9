package catalogRepo

import (
	"context"
	"errors"
	"questly/models"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// --- Missions ---

func (r *mongoCatalogRepo) CreateMission(ctx context.Context, mission models.Mission) (string, error) {
	if mission.ID == "" {
		mission.ID = uuid.New().String()
	}
	mission.CreatedAt = time.Now()

	_, err := r.missions.InsertOne(ctx, mission)
	if err != nil {
		return "", err
	}
	return mission.ID, nil
}

func (r *mongoCatalogRepo) GetMission(ctx context.Context, id string) (*models.Mission, error) {
	var mission models.Mission
	if err := r.missions.FindOne(ctx, bson.M{"id": id}).Decode(&mission); err != nil {
		return nil, err
	}
	return &mission, nil
}

// ActiveMissions lists active missions, optionally limited to one kind.
func (r *mongoCatalogRepo) ActiveMissions(ctx context.Context, kind models.MissionKind) ([]models.Mission, error) {
	filter := bson.M{"active": true}
	if kind != "" {
		filter["kind"] = kind
	}

	cursor, err := r.missions.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var missions []models.Mission
	if err := cursor.All(ctx, &missions); err != nil {
		return nil, err
	}
	return missions, nil
}

func (r *mongoCatalogRepo) UpdateMission(ctx context.Context, mission models.Mission) error {
	res, err := r.missions.UpdateOne(ctx, bson.M{"id": mission.ID}, bson.M{"$set": mission})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("mission not found")
	}
	return nil
}

// --- Rewards ---

func (r *mongoCatalogRepo) CreateReward(ctx context.Context, reward models.Reward) (string, error) {
	if reward.ID == "" {
		reward.ID = uuid.New().String()
	}
	reward.CreatedAt = time.Now()

	_, err := r.rewards.InsertOne(ctx, reward)
	if err != nil {
		return "", err
	}
	return reward.ID, nil
}

func (r *mongoCatalogRepo) GetReward(ctx context.Context, id string) (*models.Reward, error) {
	var reward models.Reward
	if err := r.rewards.FindOne(ctx, bson.M{"id": id}).Decode(&reward); err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *mongoCatalogRepo) ActiveRewards(ctx context.Context) ([]models.Reward, error) {
	cursor, err := r.rewards.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rewards []models.Reward
	if err := cursor.All(ctx, &rewards); err != nil {
		return nil, err
	}
	return rewards, nil
}

func (r *mongoCatalogRepo) UpdateReward(ctx context.Context, reward models.Reward) error {
	res, err := r.rewards.UpdateOne(ctx, bson.M{"id": reward.ID}, bson.M{"$set": reward})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("reward not found")
	}
	return nil
}

// --- Challenges ---

func (r *mongoCatalogRepo) CreateChallenge(ctx context.Context, challenge models.Challenge) (string, error) {
	if challenge.ID == "" {
		challenge.ID = uuid.New().String()
	}
	challenge.CreatedAt = time.Now()

	_, err := r.challenges.InsertOne(ctx, challenge)
	if err != nil {
		return "", err
	}
	return challenge.ID, nil
}

func (r *mongoCatalogRepo) GetChallenge(ctx context.Context, id string) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := r.challenges.FindOne(ctx, bson.M{"id": id}).Decode(&challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *mongoCatalogRepo) ActiveChallenges(ctx context.Context) ([]models.Challenge, error) {
	cursor, err := r.challenges.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var challenges []models.Challenge
	if err := cursor.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

// --- Passages ---

func (r *mongoCatalogRepo) CreatePassage(ctx context.Context, passage models.VoicePassage) (string, error) {
	if passage.ID == "" {
		passage.ID = uuid.New().String()
	}

	_, err := r.passages.InsertOne(ctx, passage)
	if err != nil {
		return "", err
	}
	return passage.ID, nil
}

func (r *mongoCatalogRepo) GetPassage(ctx context.Context, id string) (*models.VoicePassage, error) {
	var passage models.VoicePassage
	if err := r.passages.FindOne(ctx, bson.M{"id": id}).Decode(&passage); err != nil {
		return nil, err
	}
	return &passage, nil
}

// ActivePassages lists active passages at or below maxLevel.
func (r *mongoCatalogRepo) ActivePassages(ctx context.Context, maxLevel int) ([]models.VoicePassage, error) {
	cursor, err := r.passages.Find(ctx, bson.M{
		"active":   true,
		"minLevel": bson.M{"$lte": maxLevel},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var passages []models.VoicePassage
	if err := cursor.All(ctx, &passages); err != nil {
		return nil, err
	}
	return passages, nil
}
