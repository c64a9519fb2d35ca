package repos

import (
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
)

// conn resolves the handle a repo call should run on: the caller's
// transaction when one is open, the base connection otherwise.
func conn(db *gorm.DB, dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return db.WithContext(dbc.Ctx)
}

// DayCount is one day's done-completion total for a user, used by the
// analytics chart series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ActivityStats aggregates a user's recent completion activity.
type ActivityStats struct {
	ActiveDays       int `json:"active_days"`
	TotalCompletions int `json:"total_completions"`
}
