// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// DashboardCachePrefix is the prefix for cached dashboard aggregates.
const DashboardCachePrefix = "dashboard:"

// FeedChannelPrefix is the Redis pub/sub prefix for realtime feed channels.
const FeedChannelPrefix = "feed:"

// LeaderboardWeeklyKey is the ZSET holding this week's XP standings.
const LeaderboardWeeklyKey = "leaderboard:weekly"

// LeaderboardAllTimeKey is the ZSET holding all-time XP standings.
const LeaderboardAllTimeKey = "leaderboard:alltime"

// TutorContextPrefix keys each learner's rolling tutor context.
const TutorContextPrefix = "tutor:ctx:"

// TutorHintQuotaPrefix keys the per-day hint counter.
const TutorHintQuotaPrefix = "tutor:quota:"
