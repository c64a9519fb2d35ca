package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/types"
)

// Profile is the authenticated user's own view: account plus earned badges.
type Profile struct {
	User   *types.User    `json:"user"`
	Badges []*types.Badge `json:"badges"`
}

type UserService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*Profile, error)
}

type userService struct {
	users  repos.UserRepo
	badges repos.BadgeRepo
	log    *logger.Logger
}

func NewUserService(users repos.UserRepo, badges repos.BadgeRepo, baseLog *logger.Logger) UserService {
	return &userService{
		users:  users,
		badges: badges,
		log:    baseLog.With("service", "UserService"),
	}
}

func (us *userService) GetMe(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	dbc := dbctx.Context{Ctx: ctx}
	user, err := us.users.GetByID(dbc, userID)
	if err != nil {
		return nil, err
	}
	badges, err := us.badges.ListForUser(dbc, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Badges: badges}, nil
}
