package repos

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/tracking"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type HabitLogRepo interface {
	// ToggleForDate flips the habit's completion record for the given day.
	// Missing record becomes "done"; an existing record flips between "done"
	// and "not done". Returns the resulting status and whether the day was
	// marked done before the call.
	ToggleForDate(dbc dbctx.Context, habitID uuid.UUID, date time.Time) (string, bool, error)
	DoneDatesDesc(dbc dbctx.Context, habitID uuid.UUID) ([]time.Time, error)
	DoneOn(dbc dbctx.Context, habitID uuid.UUID, date time.Time) (bool, error)
	DailyDoneCounts(dbc dbctx.Context, userID uuid.UUID, from time.Time) ([]DayCount, error)
	ActiveStats(dbc dbctx.Context, userID uuid.UUID, since time.Time) (ActivityStats, error)
}

type habitLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHabitLogRepo(db *gorm.DB, baseLog *logger.Logger) HabitLogRepo {
	return &habitLogRepo{db: db, log: baseLog.With("repo", "HabitLogRepo")}
}

func (hlr *habitLogRepo) ToggleForDate(dbc dbctx.Context, habitID uuid.UUID, date time.Time) (string, bool, error) {
	day := tracking.DateOf(date)
	entry := types.HabitLog{
		ID:      uuid.New(),
		HabitID: habitID,
		Date:    day,
		Status:  types.LogDone,
	}
	res := conn(hlr.db, dbc).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "habit_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(&entry)
	if res.Error != nil {
		return "", false, res.Error
	}
	if res.RowsAffected == 1 {
		return types.LogDone, false, nil
	}

	// A record for the day already exists; flip it.
	var existing types.HabitLog
	if err := conn(hlr.db, dbc).
		Where("habit_id = ? AND date = ?", habitID, day).
		First(&existing).Error; err != nil {
		return "", false, err
	}
	wasDone := existing.Status == types.LogDone
	next := types.LogDone
	if wasDone {
		next = types.LogNotDone
	}
	if err := conn(hlr.db, dbc).
		Model(&types.HabitLog{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"status":     next,
			"updated_at": time.Now().UTC(),
		}).Error; err != nil {
		return "", false, err
	}
	return next, wasDone, nil
}

func (hlr *habitLogRepo) DoneDatesDesc(dbc dbctx.Context, habitID uuid.UUID) ([]time.Time, error) {
	var dates []time.Time
	if err := conn(hlr.db, dbc).
		Model(&types.HabitLog{}).
		Where("habit_id = ? AND status = ?", habitID, types.LogDone).
		Order("date DESC").
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

func (hlr *habitLogRepo) DoneOn(dbc dbctx.Context, habitID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	if err := conn(hlr.db, dbc).
		Model(&types.HabitLog{}).
		Where("habit_id = ? AND date = ? AND status = ?", habitID, tracking.DateOf(date), types.LogDone).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (hlr *habitLogRepo) DailyDoneCounts(dbc dbctx.Context, userID uuid.UUID, from time.Time) ([]DayCount, error) {
	var rows []struct {
		Date  time.Time
		Count int
	}
	if err := conn(hlr.db, dbc).
		Model(&types.HabitLog{}).
		Select("habit_logs.date AS date, COUNT(*) AS count").
		Joins("JOIN habits ON habits.id = habit_logs.habit_id").
		Where("habits.user_id = ? AND habit_logs.status = ? AND habit_logs.date >= ?", userID, types.LogDone, tracking.DateOf(from)).
		Group("habit_logs.date").
		Order("habit_logs.date ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make([]DayCount, 0, len(rows))
	for _, r := range rows {
		counts = append(counts, DayCount{Date: tracking.FormatDate(r.Date), Count: r.Count})
	}
	return counts, nil
}

func (hlr *habitLogRepo) ActiveStats(dbc dbctx.Context, userID uuid.UUID, since time.Time) (ActivityStats, error) {
	var row struct {
		ActiveDays       int
		TotalCompletions int
	}
	if err := conn(hlr.db, dbc).
		Model(&types.HabitLog{}).
		Select("COUNT(DISTINCT habit_logs.date) AS active_days, COUNT(*) AS total_completions").
		Joins("JOIN habits ON habits.id = habit_logs.habit_id").
		Where("habits.user_id = ? AND habit_logs.status = ? AND habit_logs.date >= ?", userID, types.LogDone, tracking.DateOf(since)).
		Scan(&row).Error; err != nil {
		return ActivityStats{}, err
	}
	return ActivityStats{ActiveDays: row.ActiveDays, TotalCompletions: row.TotalCompletions}, nil
}
