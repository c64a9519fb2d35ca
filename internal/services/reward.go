package services

import (
	"github.com/google/uuid"

	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/tracking"
)

// BadgeReward describes a badge minted by one trigger, with any bonus XP the
// badge carries.
type BadgeReward struct {
	Name    string `json:"name"`
	BonusXP int    `json:"bonus_xp,omitempty"`
}

// GrantOutcome is the XP and badge effect of marking one day done.
type GrantOutcome struct {
	XPEarned   int          `json:"xp_earned"`
	Multiplier float64      `json:"multiplier"`
	Badge      *BadgeReward `json:"badge,omitempty"`
}

// RewardService applies XP grants, reversals, and badge awards. Every method
// expects an open transaction in dbc; the caller owns atomicity.
type RewardService interface {
	// Grant pays out for a day flipped to done. streak is the streak with
	// today's completion already counted; it keys both the multiplier and
	// the milestone check.
	Grant(dbc dbctx.Context, userID uuid.UUID, kind tracking.Kind, streak int) (GrantOutcome, error)
	// Reverse takes back the base XP for a day flipped off. Milestone bonus
	// XP and badges are never revoked.
	Reverse(dbc dbctx.Context, userID uuid.UUID, kind tracking.Kind) (int, error)
	// AwardChampion mints the challenge-completion badge and pays the
	// challenge's XP reward. Idempotent per (user, challenge title).
	AwardChampion(dbc dbctx.Context, userID uuid.UUID, title string, xpReward int) (*BadgeReward, error)
}

type rewardService struct {
	users  repos.UserRepo
	badges repos.BadgeRepo
	log    *logger.Logger
}

func NewRewardService(users repos.UserRepo, badges repos.BadgeRepo, baseLog *logger.Logger) RewardService {
	return &rewardService{
		users:  users,
		badges: badges,
		log:    baseLog.With("service", "RewardService"),
	}
}

func (rs *rewardService) Grant(dbc dbctx.Context, userID uuid.UUID, kind tracking.Kind, streak int) (GrantOutcome, error) {
	outcome := GrantOutcome{
		XPEarned:   tracking.GrantXP(kind, streak),
		Multiplier: tracking.Multiplier(streak),
	}
	if err := rs.users.AddXP(dbc, userID, outcome.XPEarned); err != nil {
		return GrantOutcome{}, err
	}

	milestone, ok := tracking.MilestoneAt(streak)
	if !ok {
		return outcome, nil
	}
	created, err := rs.badges.Award(dbc, userID, milestone.Badge)
	if err != nil {
		return GrantOutcome{}, err
	}
	if !created {
		return outcome, nil
	}
	if err := rs.users.AddXP(dbc, userID, milestone.BonusXP); err != nil {
		return GrantOutcome{}, err
	}
	outcome.Badge = &BadgeReward{Name: milestone.Badge, BonusXP: milestone.BonusXP}
	rs.log.Info("Milestone badge awarded",
		"user_id", userID, "badge", milestone.Badge, "streak", streak, "bonus_xp", milestone.BonusXP)
	return outcome, nil
}

func (rs *rewardService) Reverse(dbc dbctx.Context, userID uuid.UUID, kind tracking.Kind) (int, error) {
	delta := -tracking.BaseXP(kind)
	if err := rs.users.AddXP(dbc, userID, delta); err != nil {
		return 0, err
	}
	return delta, nil
}

func (rs *rewardService) AwardChampion(dbc dbctx.Context, userID uuid.UUID, title string, xpReward int) (*BadgeReward, error) {
	name := tracking.ChampionBadge(title)
	created, err := rs.badges.Award(dbc, userID, name)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, nil
	}
	if err := rs.users.AddXP(dbc, userID, xpReward); err != nil {
		return nil, err
	}
	rs.log.Info("Challenge completed",
		"user_id", userID, "badge", name, "xp_reward", xpReward)
	return &BadgeReward{Name: name, BonusXP: xpReward}, nil
}
