// File: questly/services/progression/cycle_test.go
package progression

import (
	"testing"
	"time"

	"questly/models"

	"github.com/stretchr/testify/assert"
)

func TestCycleKeys(t *testing.T) {
	at := time.Date(2026, 8, 29, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-08-29", DayKey(at))
	assert.Equal(t, "2026-W35", WeekKey(at))

	assert.Equal(t, "2026-08-29", CycleKeyFor(models.MissionDaily, at))
	assert.Equal(t, "2026-W35", CycleKeyFor(models.MissionWeekly, at))
	assert.Equal(t, "", CycleKeyFor(models.MissionStory, at))
}

func TestDayKeyIsUTC(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	at := time.Date(2026, 8, 29, 23, 30, 0, 0, loc)
	assert.Equal(t, "2026-08-30", DayKey(at))
}
