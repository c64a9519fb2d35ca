package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/cache"
	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/pkg/errors"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/tracking"
	"github.com/habitloop/habitloop-backend/internal/types"
)

// CompletionService runs the success and failure checks that move an entity
// out of in_progress, together with every reward side effect the transition
// owes. Status is evaluated lazily, on reads and toggles, never by a timer.
type CompletionService interface {
	Evaluate(ctx context.Context, userID uuid.UUID, kind tracking.Kind, entityID uuid.UUID) (*tracking.Verdict, error)
	// EvaluateAllForUser sweeps the user's in-progress entities. Dashboard
	// and analytics reads call this first so overdue failures surface
	// without waiting for the next toggle.
	EvaluateAllForUser(ctx context.Context, userID uuid.UUID) error
	// EvaluateEntity applies one entity's verdict inside the caller's
	// transaction: status write, audit record, and the completion payout
	// for challenges. streak is the already-computed current streak.
	EvaluateEntity(dbc dbctx.Context, e tracking.Entity, streak int) (tracking.Verdict, *BadgeReward, error)
}

type completionService struct {
	db          *gorm.DB
	store       *entityStore
	streaks     StreakService
	rewards     RewardService
	transitions repos.StatusTransitionRepo
	invalidator *cache.Invalidator
	now         Clock
	log         *logger.Logger
}

func NewCompletionService(
	db *gorm.DB,
	habits repos.HabitRepo,
	enrollments repos.UserChallengeRepo,
	habitLogs repos.HabitLogRepo,
	challengeLogs repos.ChallengeLogRepo,
	streaks StreakService,
	rewards RewardService,
	transitions repos.StatusTransitionRepo,
	invalidator *cache.Invalidator,
	now Clock,
	baseLog *logger.Logger,
) CompletionService {
	return &completionService{
		db: db,
		store: &entityStore{
			habits:        habits,
			enrollments:   enrollments,
			habitLogs:     habitLogs,
			challengeLogs: challengeLogs,
		},
		streaks:     streaks,
		rewards:     rewards,
		transitions: transitions,
		invalidator: invalidator,
		now:         now,
		log:         baseLog.With("service", "CompletionService"),
	}
}

func (cs *completionService) Evaluate(ctx context.Context, userID uuid.UUID, kind tracking.Kind, entityID uuid.UUID) (*tracking.Verdict, error) {
	var verdict tracking.Verdict
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		e, err := cs.store.Load(dbc, kind, entityID)
		if err != nil {
			return err
		}
		if e.OwnerID != userID {
			return errors.ErrNotFound
		}
		streak, err := cs.streaks.Compute(dbc, e)
		if err != nil {
			return err
		}
		verdict, _, err = cs.EvaluateEntity(dbc, e, streak)
		return err
	})
	if err != nil {
		return nil, err
	}
	if verdict.Transitioned {
		cs.invalidator.Entity(ctx, kind, entityID, userID)
	}
	return &verdict, nil
}

func (cs *completionService) EvaluateAllForUser(ctx context.Context, userID uuid.UUID) error {
	inProgress := tracking.StatusInProgress
	transitioned := false
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		habits, err := cs.store.habits.GetForUser(dbc, userID, &inProgress)
		if err != nil {
			return err
		}
		entities := make([]tracking.Entity, 0, len(habits))
		for _, h := range habits {
			entities = append(entities, h.Entity())
		}

		enrollments, err := cs.store.enrollments.GetForUser(dbc, userID, &inProgress)
		if err != nil {
			return err
		}
		for _, uc := range enrollments {
			entities = append(entities, uc.Entity())
		}

		for _, e := range entities {
			streak, err := cs.streaks.Compute(dbc, e)
			if err != nil {
				return err
			}
			verdict, _, err := cs.EvaluateEntity(dbc, e, streak)
			if err != nil {
				return err
			}
			if verdict.Transitioned {
				transitioned = true
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if transitioned {
		cs.invalidator.User(ctx, userID)
	}
	return nil
}

func (cs *completionService) EvaluateEntity(dbc dbctx.Context, e tracking.Entity, streak int) (tracking.Verdict, *BadgeReward, error) {
	today := cs.now()
	verdict := tracking.Evaluate(e, streak, today)
	if !verdict.Transitioned {
		return verdict, nil, nil
	}

	if err := cs.store.SetStatus(dbc, e, verdict.Status, today); err != nil {
		return tracking.Verdict{}, nil, err
	}
	if err := cs.recordTransition(dbc, e, verdict, today, nil); err != nil {
		return tracking.Verdict{}, nil, err
	}

	var badge *BadgeReward
	if verdict.Status == tracking.StatusCompleted && e.Kind == tracking.KindChallenge {
		var err error
		badge, err = cs.rewards.AwardChampion(dbc, e.OwnerID, e.Title, e.XPReward)
		if err != nil {
			return tracking.Verdict{}, nil, err
		}
	}

	cs.log.Info("Entity finalized",
		"kind", e.Kind, "entity_id", e.ID, "user_id", e.OwnerID,
		"status", verdict.Status, "streak", verdict.Streak, "required", verdict.Required)
	return verdict, badge, nil
}

func (cs *completionService) recordTransition(dbc dbctx.Context, e tracking.Entity, verdict tracking.Verdict, today time.Time, actorID *uuid.UUID) error {
	details, err := json.Marshal(map[string]any{
		"streak":           verdict.Streak,
		"required":         verdict.Required,
		"days_since_start": tracking.DaysBetween(e.StartDate, today),
	})
	if err != nil {
		return err
	}
	return cs.transitions.Record(dbc, &types.StatusTransition{
		EntityKind: e.Kind,
		EntityID:   e.ID,
		FromStatus: e.Status,
		ToStatus:   verdict.Status,
		ActorID:    actorID,
		Details:    datatypes.JSON(details),
	})
}
