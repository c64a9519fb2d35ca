package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/habitloop/habitloop-backend/internal/cache"
	"github.com/habitloop/habitloop-backend/internal/clients/redis"
	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/pkg/errors"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/tracking"
)

// StreakResult is the read-model for one entity's current streak.
type StreakResult struct {
	Kind     tracking.Kind `json:"kind"`
	EntityID uuid.UUID     `json:"entity_id"`
	Streak   int           `json:"streak"`
	Target   int           `json:"target"`
}

type StreakService interface {
	// GetStreak serves the streak read path, cache-first. The caller must
	// own the entity.
	GetStreak(ctx context.Context, userID uuid.UUID, kind tracking.Kind, entityID uuid.UUID) (*StreakResult, error)
	// Compute derives the streak from the log table, uncached. Used inside
	// write transactions where the cache would be stale by definition.
	Compute(dbc dbctx.Context, e tracking.Entity) (int, error)
}

type streakService struct {
	store *entityStore
	cache redis.Cache
	now   Clock
	log   *logger.Logger
}

func NewStreakService(
	habits repos.HabitRepo,
	enrollments repos.UserChallengeRepo,
	habitLogs repos.HabitLogRepo,
	challengeLogs repos.ChallengeLogRepo,
	c redis.Cache,
	now Clock,
	baseLog *logger.Logger,
) StreakService {
	return &streakService{
		store: &entityStore{
			habits:        habits,
			enrollments:   enrollments,
			habitLogs:     habitLogs,
			challengeLogs: challengeLogs,
		},
		cache: c,
		now:   now,
		log:   baseLog.With("service", "StreakService"),
	}
}

func (ss *streakService) GetStreak(ctx context.Context, userID uuid.UUID, kind tracking.Kind, entityID uuid.UUID) (*StreakResult, error) {
	dbc := dbctx.Context{Ctx: ctx}
	e, err := ss.store.Load(dbc, kind, entityID)
	if err != nil {
		return nil, err
	}
	if e.OwnerID != userID {
		return nil, errors.ErrNotFound
	}

	key := cache.StreakKey(kind, entityID)
	streak, err := cache.GetOrFetch(ctx, ss.cache, ss.log, key, cache.StreakTTL, func() (int, error) {
		return ss.Compute(dbc, e)
	})
	if err != nil {
		return nil, err
	}
	return &StreakResult{Kind: kind, EntityID: entityID, Streak: streak, Target: e.TargetDays}, nil
}

func (ss *streakService) Compute(dbc dbctx.Context, e tracking.Entity) (int, error) {
	dates, err := ss.store.DoneDatesDesc(dbc, e.Kind, e.ID)
	if err != nil {
		return 0, err
	}
	today := ss.now()
	streak := tracking.Streak(dates, today)
	return tracking.CapStreak(streak, e.StartDate, today, e.TargetDays), nil
}
