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

type ChallengeLogRepo interface {
	ToggleForDate(dbc dbctx.Context, userChallengeID uuid.UUID, date time.Time) (string, bool, error)
	DoneDatesDesc(dbc dbctx.Context, userChallengeID uuid.UUID) ([]time.Time, error)
	DoneOn(dbc dbctx.Context, userChallengeID uuid.UUID, date time.Time) (bool, error)
	DailyDoneCounts(dbc dbctx.Context, userID uuid.UUID, from time.Time) ([]DayCount, error)
	ActiveStats(dbc dbctx.Context, userID uuid.UUID, since time.Time) (ActivityStats, error)
}

type challengeLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChallengeLogRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeLogRepo {
	return &challengeLogRepo{db: db, log: baseLog.With("repo", "ChallengeLogRepo")}
}

func (clr *challengeLogRepo) ToggleForDate(dbc dbctx.Context, userChallengeID uuid.UUID, date time.Time) (string, bool, error) {
	day := tracking.DateOf(date)
	entry := types.ChallengeLog{
		ID:              uuid.New(),
		UserChallengeID: userChallengeID,
		Date:            day,
		Status:          types.LogDone,
	}
	res := conn(clr.db, dbc).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_challenge_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(&entry)
	if res.Error != nil {
		return "", false, res.Error
	}
	if res.RowsAffected == 1 {
		return types.LogDone, false, nil
	}

	var existing types.ChallengeLog
	if err := conn(clr.db, dbc).
		Where("user_challenge_id = ? AND date = ?", userChallengeID, day).
		First(&existing).Error; err != nil {
		return "", false, err
	}
	wasDone := existing.Status == types.LogDone
	next := types.LogDone
	if wasDone {
		next = types.LogNotDone
	}
	if err := conn(clr.db, dbc).
		Model(&types.ChallengeLog{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"status":     next,
			"updated_at": time.Now().UTC(),
		}).Error; err != nil {
		return "", false, err
	}
	return next, wasDone, nil
}

func (clr *challengeLogRepo) DoneDatesDesc(dbc dbctx.Context, userChallengeID uuid.UUID) ([]time.Time, error) {
	var dates []time.Time
	if err := conn(clr.db, dbc).
		Model(&types.ChallengeLog{}).
		Where("user_challenge_id = ? AND status = ?", userChallengeID, types.LogDone).
		Order("date DESC").
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

func (clr *challengeLogRepo) DoneOn(dbc dbctx.Context, userChallengeID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	if err := conn(clr.db, dbc).
		Model(&types.ChallengeLog{}).
		Where("user_challenge_id = ? AND date = ? AND status = ?", userChallengeID, tracking.DateOf(date), types.LogDone).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (clr *challengeLogRepo) DailyDoneCounts(dbc dbctx.Context, userID uuid.UUID, from time.Time) ([]DayCount, error) {
	var rows []struct {
		Date  time.Time
		Count int
	}
	if err := conn(clr.db, dbc).
		Model(&types.ChallengeLog{}).
		Select("challenge_logs.date AS date, COUNT(*) AS count").
		Joins("JOIN user_challenges ON user_challenges.id = challenge_logs.user_challenge_id").
		Where("user_challenges.user_id = ? AND challenge_logs.status = ? AND challenge_logs.date >= ?", userID, types.LogDone, tracking.DateOf(from)).
		Group("challenge_logs.date").
		Order("challenge_logs.date ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make([]DayCount, 0, len(rows))
	for _, r := range rows {
		counts = append(counts, DayCount{Date: tracking.FormatDate(r.Date), Count: r.Count})
	}
	return counts, nil
}

func (clr *challengeLogRepo) ActiveStats(dbc dbctx.Context, userID uuid.UUID, since time.Time) (ActivityStats, error) {
	var row struct {
		ActiveDays       int
		TotalCompletions int
	}
	if err := conn(clr.db, dbc).
		Model(&types.ChallengeLog{}).
		Select("COUNT(DISTINCT challenge_logs.date) AS active_days, COUNT(*) AS total_completions").
		Joins("JOIN user_challenges ON user_challenges.id = challenge_logs.user_challenge_id").
		Where("user_challenges.user_id = ? AND challenge_logs.status = ? AND challenge_logs.date >= ?", userID, types.LogDone, tracking.DateOf(since)).
		Scan(&row).Error; err != nil {
		return ActivityStats{}, err
	}
	return ActivityStats{ActiveDays: row.ActiveDays, TotalCompletions: row.TotalCompletions}, nil
}
