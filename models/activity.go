// File: questly/models/activity.go
package models

import "time"

type ActivityType string

const (
	ActivityMissionCompleted ActivityType = "mission_completed"
	ActivityRewardRedeemed   ActivityType = "reward_redeemed"
	ActivityChallengeClaimed ActivityType = "challenge_claimed"
	ActivityLevelUp          ActivityType = "level_up"
	ActivityStreakMilestone  ActivityType = "streak_milestone"
	ActivityBadgeEarned      ActivityType = "badge_earned"
	ActivityEventReminder    ActivityType = "event_reminder"
	ActivityVoicePractice    ActivityType = "voice_practice"
	ActivitySystem           ActivityType = "system"
)

func ValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityMissionCompleted, ActivityRewardRedeemed, ActivityChallengeClaimed,
		ActivityLevelUp, ActivityStreakMilestone, ActivityBadgeEarned,
		ActivityEventReminder, ActivityVoicePractice, ActivitySystem:
		return true
	}
	return false
}

// Activity is one feed entry. Actor carries a display name, never an email,
// since entries are shown to classmates.
type Activity struct {
	ID          string       `bson:"id" json:"id"`
	Type        ActivityType `bson:"type" json:"type"`
	Description string       `bson:"description" json:"description"`
	Actor       string       `bson:"actor" json:"actor"`
	UserID      string       `bson:"userId" json:"-"`
	ClassroomID string       `bson:"classroomId,omitempty" json:"-"`
	Timestamp   time.Time    `bson:"timestamp" json:"timestamp"`
	Important   bool         `bson:"important" json:"important"`
	Read        bool         `bson:"read" json:"read"`
}
