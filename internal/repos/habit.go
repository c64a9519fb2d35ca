package repos

import (
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/pkg/errors"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/tracking"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type HabitRepo interface {
	Create(dbc dbctx.Context, habit *types.Habit) error
	GetByID(dbc dbctx.Context, habitID uuid.UUID) (*types.Habit, error)
	GetForUser(dbc dbctx.Context, userID uuid.UUID, status *tracking.Status) ([]*types.Habit, error)
	Update(dbc dbctx.Context, habitID uuid.UUID, name, category string, targetDays int) error
	Delete(dbc dbctx.Context, habitID uuid.UUID) error
	// SetStatus stamps a lifecycle transition. completedAt and endDate may be
	// nil to clear the corresponding column (admin reopen).
	SetStatus(dbc dbctx.Context, habitID uuid.UUID, status tracking.Status, completedAt, endDate *time.Time) error
}

type habitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHabitRepo(db *gorm.DB, baseLog *logger.Logger) HabitRepo {
	return &habitRepo{db: db, log: baseLog.With("repo", "HabitRepo")}
}

func (hr *habitRepo) Create(dbc dbctx.Context, habit *types.Habit) error {
	return conn(hr.db, dbc).Create(habit).Error
}

func (hr *habitRepo) GetByID(dbc dbctx.Context, habitID uuid.UUID) (*types.Habit, error) {
	var habit types.Habit
	if err := conn(hr.db, dbc).Where("id = ?", habitID).First(&habit).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &habit, nil
}

func (hr *habitRepo) GetForUser(dbc dbctx.Context, userID uuid.UUID, status *tracking.Status) ([]*types.Habit, error) {
	var habits []*types.Habit
	q := conn(hr.db, dbc).Where("user_id = ?", userID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("created_at ASC").Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

func (hr *habitRepo) Update(dbc dbctx.Context, habitID uuid.UUID, name, category string, targetDays int) error {
	res := conn(hr.db, dbc).
		Model(&types.Habit{}).
		Where("id = ?", habitID).
		Updates(map[string]any{
			"name":        name,
			"category":    category,
			"target_days": targetDays,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (hr *habitRepo) Delete(dbc dbctx.Context, habitID uuid.UUID) error {
	res := conn(hr.db, dbc).Where("id = ?", habitID).Delete(&types.Habit{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (hr *habitRepo) SetStatus(dbc dbctx.Context, habitID uuid.UUID, status tracking.Status, completedAt, endDate *time.Time) error {
	res := conn(hr.db, dbc).
		Model(&types.Habit{}).
		Where("id = ?", habitID).
		Updates(map[string]any{
			"status":       status,
			"completed_at": completedAt,
			"end_date":     endDate,
			"updated_at":   time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.ErrNotFound
	}
	return nil
}
