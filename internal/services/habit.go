package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/cache"
	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/pkg/errors"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/tracking"
	"github.com/habitloop/habitloop-backend/internal/types"
)

// DefaultTargetDays is the habit target when the creator does not pick one.
const DefaultTargetDays = 21

type CreateHabitInput struct {
	Name       string `json:"name" binding:"required"`
	Category   string `json:"category"`
	TargetDays int    `json:"target_days"`
}

type UpdateHabitInput struct {
	Name       string `json:"name" binding:"required"`
	Category   string `json:"category"`
	TargetDays int    `json:"target_days"`
}

type HabitService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateHabitInput) (*types.Habit, error)
	List(ctx context.Context, userID uuid.UUID, status *tracking.Status) ([]*types.Habit, error)
	Get(ctx context.Context, userID, habitID uuid.UUID) (*types.Habit, error)
	Update(ctx context.Context, userID, habitID uuid.UUID, input UpdateHabitInput) (*types.Habit, error)
	Delete(ctx context.Context, userID, habitID uuid.UUID) error
}

type habitService struct {
	db          *gorm.DB
	habits      repos.HabitRepo
	invalidator *cache.Invalidator
	log         *logger.Logger
}

func NewHabitService(db *gorm.DB, habits repos.HabitRepo, invalidator *cache.Invalidator, baseLog *logger.Logger) HabitService {
	return &habitService{
		db:          db,
		habits:      habits,
		invalidator: invalidator,
		log:         baseLog.With("service", "HabitService"),
	}
}

func (hs *habitService) Create(ctx context.Context, userID uuid.UUID, input CreateHabitInput) (*types.Habit, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.ErrInvalidArgument
	}
	targetDays := input.TargetDays
	if targetDays == 0 {
		targetDays = DefaultTargetDays
	}
	if targetDays < 1 {
		return nil, errors.ErrInvalidArgument
	}

	habit := &types.Habit{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       name,
		Category:   strings.TrimSpace(input.Category),
		TargetDays: targetDays,
		Status:     tracking.StatusInProgress,
	}
	if err := hs.habits.Create(dbctx.Context{Ctx: ctx}, habit); err != nil {
		return nil, err
	}

	hs.invalidator.User(ctx, userID)
	hs.log.Info("Habit created", "habit_id", habit.ID, "user_id", userID, "target_days", targetDays)
	return habit, nil
}

func (hs *habitService) List(ctx context.Context, userID uuid.UUID, status *tracking.Status) ([]*types.Habit, error) {
	return hs.habits.GetForUser(dbctx.Context{Ctx: ctx}, userID, status)
}

func (hs *habitService) Get(ctx context.Context, userID, habitID uuid.UUID) (*types.Habit, error) {
	habit, err := hs.habits.GetByID(dbctx.Context{Ctx: ctx}, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, errors.ErrNotFound
	}
	return habit, nil
}

func (hs *habitService) Update(ctx context.Context, userID, habitID uuid.UUID, input UpdateHabitInput) (*types.Habit, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.TargetDays < 1 {
		return nil, errors.ErrInvalidArgument
	}

	dbc := dbctx.Context{Ctx: ctx}
	habit, err := hs.habits.GetByID(dbc, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, errors.ErrNotFound
	}
	if err := hs.habits.Update(dbc, habitID, name, strings.TrimSpace(input.Category), input.TargetDays); err != nil {
		return nil, err
	}

	hs.invalidator.Entity(ctx, tracking.KindHabit, habitID, userID)
	return hs.habits.GetByID(dbc, habitID)
}

func (hs *habitService) Delete(ctx context.Context, userID, habitID uuid.UUID) error {
	dbc := dbctx.Context{Ctx: ctx}
	habit, err := hs.habits.GetByID(dbc, habitID)
	if err != nil {
		return err
	}
	if habit.UserID != userID {
		return errors.ErrNotFound
	}
	if err := hs.habits.Delete(dbc, habitID); err != nil {
		return err
	}

	hs.invalidator.Entity(ctx, tracking.KindHabit, habitID, userID)
	hs.log.Info("Habit deleted", "habit_id", habitID, "user_id", userID)
	return nil
}
