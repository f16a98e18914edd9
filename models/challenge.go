// File: questly/models/challenge.go
package models

import "time"

// Challenge asks a learner to show up DaysRequired days in a row with at
// least MinXPPerDay earned each day. Claiming is manual once the run is met.
type Challenge struct {
	ID           string    `bson:"id" json:"id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description" json:"description"`
	DaysRequired int       `bson:"daysRequired" json:"daysRequired"`
	MinXPPerDay  int64     `bson:"minXpPerDay" json:"minXpPerDay"`
	GemReward    int64     `bson:"gemReward" json:"gemReward"`
	Badge        string    `bson:"badge,omitempty" json:"badge,omitempty"`
	Active       bool      `bson:"active" json:"active"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// ChallengeProgress counts consecutive qualifying days. A missed day resets
// DaysMet to zero on the next sweep.
type ChallengeProgress struct {
	ID          string     `bson:"id" json:"id"`
	ChallengeID string     `bson:"challengeId" json:"challengeId"`
	LearnerID   string     `bson:"learnerId" json:"learnerId"`
	DaysMet     int        `bson:"daysMet" json:"daysMet"`
	LastDayMet  string     `bson:"lastDayMet,omitempty" json:"lastDayMet,omitempty"` // 2006-01-02
	Claimed     bool       `bson:"claimed" json:"claimed"`
	ClaimedAt   *time.Time `bson:"claimedAt,omitempty" json:"claimedAt,omitempty"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}
