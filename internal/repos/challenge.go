package repos

import (
	stderrors "errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/pkg/errors"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type ChallengeRepo interface {
	List(dbc dbctx.Context) ([]*types.Challenge, error)
	GetByID(dbc dbctx.Context, challengeID uuid.UUID) (*types.Challenge, error)
}

type challengeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChallengeRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeRepo {
	return &challengeRepo{db: db, log: baseLog.With("repo", "ChallengeRepo")}
}

func (cr *challengeRepo) List(dbc dbctx.Context) ([]*types.Challenge, error) {
	var challenges []*types.Challenge
	if err := conn(cr.db, dbc).
		Order("duration_days ASC, xp_reward ASC").
		Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (cr *challengeRepo) GetByID(dbc dbctx.Context, challengeID uuid.UUID) (*types.Challenge, error) {
	var challenge types.Challenge
	if err := conn(cr.db, dbc).Where("id = ?", challengeID).First(&challenge).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &challenge, nil
}
