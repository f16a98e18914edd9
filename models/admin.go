package models

import "time"

// PlatformMetrics is the admin dashboard aggregate.
type PlatformMetrics struct {
	TotalLearners    int64     `json:"totalLearners"`
	TotalEducators   int64     `json:"totalEducators"`
	TotalGuardians   int64     `json:"totalGuardians"`
	TotalClassrooms  int64     `json:"totalClassrooms"`
	ActiveToday      int64     `json:"activeToday"`
	MissionsToday    int64     `json:"missionsToday"`
	RedemptionsToday int64     `json:"redemptionsToday"`
	QueueDepth       int64     `json:"queueDepth"`
	GeneratedAt      time.Time `json:"generatedAt"`
}

// ModerationFlag marks content an admin should review before it reaches
// learners.
type ModerationFlag struct {
	ID        string    `bson:"id" json:"id"`
	Kind      string    `bson:"kind" json:"kind"` // e.g., "avatar", "displayName"
	SubjectID string    `bson:"subjectId" json:"subjectId"`
	Reason    string    `bson:"reason" json:"reason"`
	Resolved  bool      `bson:"resolved" json:"resolved"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
