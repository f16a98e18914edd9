// File: questly/services/progression/cycle.go
package progression

import (
	"fmt"
	"time"

	"questly/models"
)

// DayKey formats t as the daily cycle key. All cycles run on UTC so a
// learner cannot stretch a streak by hopping timezones.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WeekKey formats t as the ISO-week cycle key, e.g. "2026-W35".
func WeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// CycleKeyFor returns the cycle key a mission run is filed under. Story
// missions have one run ever, keyed by the empty string.
func CycleKeyFor(kind models.MissionKind, t time.Time) string {
	switch kind {
	case models.MissionDaily:
		return DayKey(t)
	case models.MissionWeekly:
		return WeekKey(t)
	default:
		return ""
	}
}

// streakMilestones are the runs worth announcing on the feed.
var streakMilestones = map[int]bool{3: true, 7: true, 14: true, 30: true, 60: true, 100: true}
