package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type StatusTransitionRepo interface {
	Record(dbc dbctx.Context, transition *types.StatusTransition) error
	ListForEntity(dbc dbctx.Context, entityID uuid.UUID) ([]*types.StatusTransition, error)
}

type statusTransitionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStatusTransitionRepo(db *gorm.DB, baseLog *logger.Logger) StatusTransitionRepo {
	return &statusTransitionRepo{db: db, log: baseLog.With("repo", "StatusTransitionRepo")}
}

func (str *statusTransitionRepo) Record(dbc dbctx.Context, transition *types.StatusTransition) error {
	if transition.ID == uuid.Nil {
		transition.ID = uuid.New()
	}
	return conn(str.db, dbc).Create(transition).Error
}

func (str *statusTransitionRepo) ListForEntity(dbc dbctx.Context, entityID uuid.UUID) ([]*types.StatusTransition, error) {
	var transitions []*types.StatusTransition
	if err := conn(str.db, dbc).
		Where("entity_id = ?", entityID).
		Order("created_at ASC").
		Find(&transitions).Error; err != nil {
		return nil, err
	}
	return transitions, nil
}
