package cache

import (
	"time"

	"github.com/google/uuid"

	"github.com/habitloop/habitloop-backend/internal/tracking"
)

// Derived-view TTLs. Explicit invalidation on writes is the fast path; these
// bound staleness when an invalidation is missed or the writer crashes
// between commit and Del.
const (
	StreakTTL    = 5 * time.Minute
	DashboardTTL = 30 * time.Second
	AnalyticsTTL = 5 * time.Minute
)

func StreakKey(kind tracking.Kind, entityID uuid.UUID) string {
	return "streak:" + string(kind) + ":" + entityID.String()
}

func DashboardKey(userID uuid.UUID) string {
	return "dashboard:" + userID.String()
}

func AnalyticsKey(userID uuid.UUID) string {
	return "analytics:" + userID.String()
}

func StatsKey(userID uuid.UUID) string {
	return "stats:" + userID.String()
}

func ChartDataKey(userID uuid.UUID) string {
	return "chartdata:" + userID.String()
}

// UserKeys lists every derived-view key scoped to one user.
func UserKeys(userID uuid.UUID) []string {
	return []string{
		DashboardKey(userID),
		AnalyticsKey(userID),
		StatsKey(userID),
		ChartDataKey(userID),
	}
}
