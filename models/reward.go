package models

import "time"

// Reward is a shop item learners redeem coins for. Stock < 0 means
// unlimited. RequiresApproval gates redemption behind a guardian code.
type Reward struct {
	ID               string    `bson:"id" json:"id"`
	Name             string    `bson:"name" json:"name"`
	Description      string    `bson:"description" json:"description"`
	Cost             int64     `bson:"cost" json:"cost"`
	Rarity           Rarity    `bson:"rarity" json:"rarity"`
	Stock            int       `bson:"stock" json:"stock"`
	MinLevel         int       `bson:"minLevel" json:"minLevel"`
	RequiresApproval bool      `bson:"requiresApproval" json:"requiresApproval"`
	ImageURL         string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Active           bool      `bson:"active" json:"active"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}

// Redemption records a learner spending coins on a reward.
type Redemption struct {
	ID         string    `bson:"id" json:"id"`
	RewardID   string    `bson:"rewardId" json:"rewardId"`
	RewardName string    `bson:"rewardName" json:"rewardName"`
	LearnerID  string    `bson:"learnerId" json:"learnerId"`
	Cost       int64     `bson:"cost" json:"cost"`
	Status     string    `bson:"status" json:"status"` // "granted" or "pending_approval"
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

const (
	RedemptionGranted         = "granted"
	RedemptionPendingApproval = "pending_approval"
)
