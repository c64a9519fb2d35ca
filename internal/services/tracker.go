package services

import (
	"context"

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

// ToggleResult reports everything one toggle did: the log flip, the XP
// movement, any badge minted, and the status verdict re-run after the flip.
type ToggleResult struct {
	Kind       tracking.Kind    `json:"kind"`
	EntityID   uuid.UUID        `json:"entity_id"`
	Date       string           `json:"date"`
	LogStatus  string           `json:"log_status"`
	Streak     int              `json:"streak"`
	XPDelta    int              `json:"xp_delta"`
	Multiplier float64          `json:"multiplier,omitempty"`
	Badge      *BadgeReward     `json:"badge,omitempty"`
	Verdict    tracking.Verdict `json:"verdict"`
}

// TrackerService is the single write path for daily completion marks. One
// toggle runs entirely inside one transaction: the log flip, the XP grant or
// reversal, any badges, and the finalization check all land together or not
// at all.
type TrackerService interface {
	Toggle(ctx context.Context, userID uuid.UUID, kind tracking.Kind, entityID uuid.UUID) (*ToggleResult, error)
}

type trackerService struct {
	db          *gorm.DB
	store       *entityStore
	streaks     StreakService
	rewards     RewardService
	completions CompletionService
	invalidator *cache.Invalidator
	now         Clock
	log         *logger.Logger
}

func NewTrackerService(
	db *gorm.DB,
	habits repos.HabitRepo,
	enrollments repos.UserChallengeRepo,
	habitLogs repos.HabitLogRepo,
	challengeLogs repos.ChallengeLogRepo,
	streaks StreakService,
	rewards RewardService,
	completions CompletionService,
	invalidator *cache.Invalidator,
	now Clock,
	baseLog *logger.Logger,
) TrackerService {
	return &trackerService{
		db: db,
		store: &entityStore{
			habits:        habits,
			enrollments:   enrollments,
			habitLogs:     habitLogs,
			challengeLogs: challengeLogs,
		},
		streaks:     streaks,
		rewards:     rewards,
		completions: completions,
		invalidator: invalidator,
		now:         now,
		log:         baseLog.With("service", "TrackerService"),
	}
}

func (ts *trackerService) Toggle(ctx context.Context, userID uuid.UUID, kind tracking.Kind, entityID uuid.UUID) (*ToggleResult, error) {
	var result ToggleResult
	var ownerID uuid.UUID

	err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		e, err := ts.store.Load(dbc, kind, entityID)
		if err != nil {
			return err
		}
		if e.OwnerID != userID {
			return errors.ErrNotFound
		}
		if e.Status != tracking.StatusInProgress {
			return errors.ErrEntityFinalized
		}
		ownerID = e.OwnerID

		today := ts.now()
		logStatus, wasDone, err := ts.store.ToggleForDate(dbc, kind, entityID, today)
		if err != nil {
			return err
		}

		// Streak with the flip applied; it keys the reward multiplier and
		// the milestone check.
		streak, err := ts.streaks.Compute(dbc, e)
		if err != nil {
			return err
		}

		result = ToggleResult{
			Kind:      kind,
			EntityID:  entityID,
			Date:      tracking.FormatDate(today),
			LogStatus: logStatus,
			Streak:    streak,
		}

		if logStatus == types.LogDone && !wasDone {
			grant, err := ts.rewards.Grant(dbc, userID, kind, streak)
			if err != nil {
				return err
			}
			result.XPDelta = grant.XPEarned
			result.Multiplier = grant.Multiplier
			result.Badge = grant.Badge
			if result.Badge != nil {
				result.XPDelta += result.Badge.BonusXP
			}
		} else if wasDone {
			delta, err := ts.rewards.Reverse(dbc, userID, kind)
			if err != nil {
				return err
			}
			result.XPDelta = delta
		}

		verdict, badge, err := ts.completions.EvaluateEntity(dbc, e, streak)
		if err != nil {
			return err
		}
		result.Verdict = verdict
		if badge != nil {
			result.XPDelta += badge.BonusXP
			if result.Badge == nil {
				result.Badge = badge
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ts.invalidator.Entity(ctx, kind, entityID, ownerID)
	ts.log.Info("Toggled completion",
		"kind", kind, "entity_id", entityID, "user_id", userID,
		"log_status", result.LogStatus, "streak", result.Streak, "xp_delta", result.XPDelta)
	return &result, nil
}
