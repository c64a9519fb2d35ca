package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/cache"
	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/pkg/errors"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/requestdata"
	"github.com/habitloop/habitloop-backend/internal/tracking"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type AdminService interface {
	// Reopen moves a finalized entity back to in_progress and records who
	// did it and why. Admin only.
	Reopen(ctx context.Context, actor requestdata.RequestData, kind tracking.Kind, entityID uuid.UUID, reason string) error
}

type adminService struct {
	db          *gorm.DB
	store       *entityStore
	transitions repos.StatusTransitionRepo
	invalidator *cache.Invalidator
	now         Clock
	log         *logger.Logger
}

func NewAdminService(
	db *gorm.DB,
	habits repos.HabitRepo,
	enrollments repos.UserChallengeRepo,
	habitLogs repos.HabitLogRepo,
	challengeLogs repos.ChallengeLogRepo,
	transitions repos.StatusTransitionRepo,
	invalidator *cache.Invalidator,
	now Clock,
	baseLog *logger.Logger,
) AdminService {
	return &adminService{
		db: db,
		store: &entityStore{
			habits:        habits,
			enrollments:   enrollments,
			habitLogs:     habitLogs,
			challengeLogs: challengeLogs,
		},
		transitions: transitions,
		invalidator: invalidator,
		now:         now,
		log:         baseLog.With("service", "AdminService"),
	}
}

func (as *adminService) Reopen(ctx context.Context, actor requestdata.RequestData, kind tracking.Kind, entityID uuid.UUID, reason string) error {
	if !actor.IsAdmin {
		return errors.ErrUnauthorized
	}

	var ownerID uuid.UUID
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		e, err := as.store.Load(dbc, kind, entityID)
		if err != nil {
			return err
		}
		if e.Status == tracking.StatusInProgress {
			return errors.ErrInvalidArgument
		}
		ownerID = e.OwnerID

		if err := as.store.SetStatus(dbc, e, tracking.StatusInProgress, as.now()); err != nil {
			return err
		}

		details, err := json.Marshal(map[string]any{"reason": reason})
		if err != nil {
			return err
		}
		actorID := actor.UserID
		return as.transitions.Record(dbc, &types.StatusTransition{
			EntityKind: kind,
			EntityID:   entityID,
			FromStatus: e.Status,
			ToStatus:   tracking.StatusInProgress,
			ActorID:    &actorID,
			Details:    datatypes.JSON(details),
		})
	})
	if err != nil {
		return err
	}

	as.invalidator.Entity(ctx, kind, entityID, ownerID)
	as.log.Info("Entity reopened", "kind", kind, "entity_id", entityID, "actor_id", actor.UserID)
	return nil
}
