// File: questly/models/dashboard.go
package models

import "time"

// KPI is a single headline stat tile.
type KPI struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
	Trend string `json:"trend,omitempty"` // "up", "down" or empty
}

// LearnerSection is the dashboard slice only learners see.
type LearnerSection struct {
	XP             int64    `json:"xp"`
	Level          int      `json:"level"`
	XPIntoLevel    int64    `json:"xpIntoLevel"`
	XPForNextLevel int64    `json:"xpForNextLevel"`
	Coins          int64    `json:"coins"`
	Gems           int64    `json:"gems"`
	StreakDays     int      `json:"streakDays"`
	Badges         []string `json:"badges"`
	ActiveMissions int      `json:"activeMissions"`
	LeaderboardPos int64    `json:"leaderboardPos"`
}

// EducatorSection aggregates a classroom for its educator.
type EducatorSection struct {
	ClassroomID    string  `json:"classroomId"`
	ClassroomName  string  `json:"classroomName"`
	LearnerCount   int     `json:"learnerCount"`
	ActiveToday    int     `json:"activeToday"`
	AvgStreakDays  float64 `json:"avgStreakDays"`
	MissionsPerDay float64 `json:"missionsPerDay"`
}

// GuardianSection summarises one linked learner for their guardian.
type GuardianSection struct {
	LearnerID        string    `json:"learnerId"`
	LearnerName      string    `json:"learnerName"`
	Level            int       `json:"level"`
	StreakDays       int       `json:"streakDays"`
	CoinsSpentWeek   int64     `json:"coinsSpentWeek"`
	PendingApprovals int       `json:"pendingApprovals"`
	LastActive       time.Time `json:"lastActive"`
}

// DashboardOverview is the role-scoped aggregate behind GET /dashboard.
// Degraded is set when any source failed and its section fell back to zero
// values; the endpoint still returns 200.
type DashboardOverview struct {
	Role           Role               `json:"role"`
	GeneratedAt    time.Time          `json:"generatedAt"`
	Degraded       bool               `json:"degraded"`
	KPIs           []KPI              `json:"kpis"`
	RecentActivity []Activity         `json:"recentActivity"`
	UpcomingEvents []Event            `json:"upcomingEvents"`
	Learner        *LearnerSection    `json:"learner,omitempty"`
	Classrooms     []EducatorSection  `json:"classrooms,omitempty"`
	Learners       []GuardianSection  `json:"learners,omitempty"`
	Platform       *PlatformMetrics   `json:"platform,omitempty"`
}

// NewFallbackOverview returns the zero-valued overview for a role. Slices are
// allocated so clients always render empty lists rather than null.
func NewFallbackOverview(role Role) DashboardOverview {
	ov := DashboardOverview{
		Role:           role,
		GeneratedAt:    time.Now().UTC(),
		Degraded:       true,
		KPIs:           []KPI{},
		RecentActivity: []Activity{},
		UpcomingEvents: []Event{},
	}
	switch role {
	case RoleLearner:
		ov.Learner = &LearnerSection{Level: 1, Badges: []string{}}
	case RoleEducator:
		ov.Classrooms = []EducatorSection{}
	case RoleGuardian:
		ov.Learners = []GuardianSection{}
	case RoleAdmin:
		ov.Platform = &PlatformMetrics{GeneratedAt: time.Now().UTC()}
	}
	return ov
}
