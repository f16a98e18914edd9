// File: questly/models/mission.go
package models

import "time"

type MissionKind string

const (
	MissionDaily  MissionKind = "daily"
	MissionWeekly MissionKind = "weekly"
	MissionStory  MissionKind = "story"
)

// Mission is a catalog entry. Target is the number of qualifying actions
// needed before the mission can be completed within its cycle.
type Mission struct {
	ID          string      `bson:"id" json:"id"`
	Title       string      `bson:"title" json:"title"`
	Description string      `bson:"description" json:"description"`
	Kind        MissionKind `bson:"kind" json:"kind"`
	Subject     string      `bson:"subject,omitempty" json:"subject,omitempty"`
	Target      int         `bson:"target" json:"target"`
	XPReward    int64       `bson:"xpReward" json:"xpReward"`
	CoinReward  int64       `bson:"coinReward" json:"coinReward"`
	MinLevel    int         `bson:"minLevel" json:"minLevel"`
	Active      bool        `bson:"active" json:"active"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
}

// MissionProgress tracks one learner's run at a mission within a cycle.
// CycleKey is the day (2006-01-02) for daily missions, the ISO week
// (2006-W02) for weekly ones, and empty for story missions.
type MissionProgress struct {
	ID         string     `bson:"id" json:"id"`
	MissionID  string     `bson:"missionId" json:"missionId"`
	LearnerID  string     `bson:"learnerId" json:"learnerId"`
	CycleKey   string     `bson:"cycleKey" json:"cycleKey"`
	Progress   int        `bson:"progress" json:"progress"`
	Completed  bool       `bson:"completed" json:"completed"`
	RewardedAt *time.Time `bson:"rewardedAt,omitempty" json:"rewardedAt,omitempty"`
	UpdatedAt  time.Time  `bson:"updatedAt" json:"updatedAt"`
}
