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

type UserChallengeRepo interface {
	Create(dbc dbctx.Context, enrollment *types.UserChallenge) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.UserChallenge, error)
	GetByUserAndChallenge(dbc dbctx.Context, userID, challengeID uuid.UUID) (*types.UserChallenge, error)
	GetForUser(dbc dbctx.Context, userID uuid.UUID, status *tracking.Status) ([]*types.UserChallenge, error)
	SetStatus(dbc dbctx.Context, id uuid.UUID, status tracking.Status, completedAt, failedAt *time.Time) error
}

type userChallengeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserChallengeRepo(db *gorm.DB, baseLog *logger.Logger) UserChallengeRepo {
	return &userChallengeRepo{db: db, log: baseLog.With("repo", "UserChallengeRepo")}
}

func (ucr *userChallengeRepo) Create(dbc dbctx.Context, enrollment *types.UserChallenge) error {
	// The (user_id, challenge_id) unique index turns a double join into a
	// duplicate-key failure; surface it as a Conflict.
	existing, err := ucr.GetByUserAndChallenge(dbc, enrollment.UserID, enrollment.ChallengeID)
	if err != nil && !stderrors.Is(err, errors.ErrNotFound) {
		return err
	}
	if existing != nil {
		return errors.ErrConflict
	}
	if err := conn(ucr.db, dbc).Create(enrollment).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrConflict
		}
		return err
	}
	return nil
}

func (ucr *userChallengeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.UserChallenge, error) {
	var enrollment types.UserChallenge
	if err := conn(ucr.db, dbc).
		Preload("Challenge").
		Where("id = ?", id).
		First(&enrollment).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

func (ucr *userChallengeRepo) GetByUserAndChallenge(dbc dbctx.Context, userID, challengeID uuid.UUID) (*types.UserChallenge, error) {
	var enrollment types.UserChallenge
	if err := conn(ucr.db, dbc).
		Preload("Challenge").
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&enrollment).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

func (ucr *userChallengeRepo) GetForUser(dbc dbctx.Context, userID uuid.UUID, status *tracking.Status) ([]*types.UserChallenge, error) {
	var enrollments []*types.UserChallenge
	q := conn(ucr.db, dbc).Preload("Challenge").Where("user_id = ?", userID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("start_date DESC").Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (ucr *userChallengeRepo) SetStatus(dbc dbctx.Context, id uuid.UUID, status tracking.Status, completedAt, failedAt *time.Time) error {
	res := conn(ucr.db, dbc).
		Model(&types.UserChallenge{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       status,
			"completed_at": completedAt,
			"failed_at":    failedAt,
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
