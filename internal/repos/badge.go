package repos

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type BadgeRepo interface {
	// Award grants a badge once per (user, name). Returns true when this
	// call created the badge, false when it was already held.
	Award(dbc dbctx.Context, userID uuid.UUID, name string) (bool, error)
	ListForUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Badge, error)
	CountForUser(dbc dbctx.Context, userID uuid.UUID) (int64, error)
}

type badgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBadgeRepo(db *gorm.DB, baseLog *logger.Logger) BadgeRepo {
	return &badgeRepo{db: db, log: baseLog.With("repo", "BadgeRepo")}
}

func (br *badgeRepo) Award(dbc dbctx.Context, userID uuid.UUID, name string) (bool, error) {
	badge := types.Badge{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
	}
	res := conn(br.db, dbc).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(&badge)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (br *badgeRepo) ListForUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Badge, error) {
	var badges []*types.Badge
	if err := conn(br.db, dbc).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}

func (br *badgeRepo) CountForUser(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := conn(br.db, dbc).
		Model(&types.Badge{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
