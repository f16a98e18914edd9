package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp    int64
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},  // level 2 at 100
		{299, 2},
		{300, 3},  // +200
		{600, 4},  // +300
		{1000, 5}, // +400
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, LevelForXP(tc.xp), "xp=%d", tc.xp)
	}
}

func TestLevelThresholdMatchesLevelForXP(t *testing.T) {
	for level := 2; level <= 20; level++ {
		threshold := LevelThreshold(level)
		assert.Equal(t, level, LevelForXP(threshold))
		assert.Equal(t, level-1, LevelForXP(threshold-1))
	}
}

func TestHasBadge(t *testing.T) {
	s := &LearnerState{Badges: []string{"bronze_scholar"}}
	assert.True(t, HasBadge(s, "bronze_scholar"))
	assert.False(t, HasBadge(s, "gold_scholar"))
}
