// File: questly/models/state.go
package models

import "time"

// LearnerState is the single progression document per learner. DailyXP keys
// are days (2006-01-02); the streak sweep prunes entries older than the
// longest active challenge window.
type LearnerState struct {
	LearnerID     string           `bson:"learnerId" json:"learnerId"`
	XP            int64            `bson:"xp" json:"xp"`
	Level         int              `bson:"level" json:"level"`
	Coins         int64            `bson:"coins" json:"coins"`
	Gems          int64            `bson:"gems" json:"gems"`
	StreakDays    int              `bson:"streakDays" json:"streakDays"`
	LastActiveDay string           `bson:"lastActiveDay,omitempty" json:"lastActiveDay,omitempty"` // 2006-01-02
	Badges        []string         `bson:"badges" json:"badges"`
	DailyXP       map[string]int64 `bson:"dailyXp,omitempty" json:"-"`
	UpdatedAt     time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// LevelForXP maps cumulative XP to a level. Each level L needs 100*(L-1)
// more XP than the one before, so the cumulative threshold for level L is
// 100 * L * (L-1) / 2.
func LevelForXP(xp int64) int {
	level := 1
	for xp >= LevelThreshold(level+1) {
		level++
	}
	return level
}

// LevelThreshold returns the cumulative XP required to reach level.
func LevelThreshold(level int) int64 {
	if level <= 1 {
		return 0
	}
	l := int64(level)
	return 100 * l * (l - 1) / 2
}

// Badge thresholds awarded on cumulative XP.
var BadgeThresholds = []struct {
	XP    int64
	Badge string
}{
	{500, "bronze_scholar"},
	{1500, "silver_scholar"},
	{4000, "gold_scholar"},
	{10000, "diamond_scholar"},
}

func HasBadge(s *LearnerState, badge string) bool {
	for _, b := range s.Badges {
		if b == badge {
			return true
		}
	}
	return false
}
