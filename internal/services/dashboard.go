package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/cache"
	"github.com/habitloop/habitloop-backend/internal/clients/redis"
	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/tracking"
	"github.com/habitloop/habitloop-backend/internal/types"
)

// DashboardHabit is one active habit with its live streak and today's mark.
type DashboardHabit struct {
	Habit     *types.Habit `json:"habit"`
	Streak    int          `json:"streak"`
	DoneToday bool         `json:"done_today"`
}

// DashboardChallenge is one active enrollment with its live streak, today's
// mark, and the days left before the failure check fires.
type DashboardChallenge struct {
	Enrollment    *types.UserChallenge `json:"enrollment"`
	Streak        int                  `json:"streak"`
	DoneToday     bool                 `json:"done_today"`
	DaysRemaining int                  `json:"days_remaining"`
}

type Dashboard struct {
	XP         int                  `json:"xp"`
	BadgeCount int                  `json:"badge_count"`
	Badges     []*types.Badge       `json:"badges"`
	Habits     []DashboardHabit     `json:"habits"`
	Challenges []DashboardChallenge `json:"challenges"`
}

type DashboardService interface {
	GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
}

type dashboardService struct {
	db          *gorm.DB
	users       repos.UserRepo
	badges      repos.BadgeRepo
	habits      repos.HabitRepo
	enrollments repos.UserChallengeRepo
	habitLogs   repos.HabitLogRepo
	chalLogs    repos.ChallengeLogRepo
	streaks     StreakService
	completions CompletionService
	cache       redis.Cache
	now         Clock
	log         *logger.Logger
}

func NewDashboardService(
	db *gorm.DB,
	users repos.UserRepo,
	badges repos.BadgeRepo,
	habits repos.HabitRepo,
	enrollments repos.UserChallengeRepo,
	habitLogs repos.HabitLogRepo,
	chalLogs repos.ChallengeLogRepo,
	streaks StreakService,
	completions CompletionService,
	c redis.Cache,
	now Clock,
	baseLog *logger.Logger,
) DashboardService {
	return &dashboardService{
		db:          db,
		users:       users,
		badges:      badges,
		habits:      habits,
		enrollments: enrollments,
		habitLogs:   habitLogs,
		chalLogs:    chalLogs,
		streaks:     streaks,
		completions: completions,
		cache:       c,
		now:         now,
		log:         baseLog.With("service", "DashboardService"),
	}
}

func (ds *dashboardService) GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	// Surface overdue failures before building the view, so a user who
	// stopped toggling still sees the entity finalized.
	if err := ds.completions.EvaluateAllForUser(ctx, userID); err != nil {
		return nil, err
	}

	return cache.GetOrFetch(ctx, ds.cache, ds.log, cache.DashboardKey(userID), cache.DashboardTTL, func() (*Dashboard, error) {
		return ds.build(ctx, userID)
	})
}

func (ds *dashboardService) build(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	inProgress := tracking.StatusInProgress
	today := ds.now()

	var (
		user      *types.User
		badges    []*types.Badge
		habitRows []DashboardHabit
		chalRows  []DashboardChallenge
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		user, err = ds.users.GetByID(dbctx.Context{Ctx: gctx}, userID)
		return err
	})
	g.Go(func() error {
		var err error
		badges, err = ds.badges.ListForUser(dbctx.Context{Ctx: gctx}, userID)
		return err
	})
	g.Go(func() error {
		dbc := dbctx.Context{Ctx: gctx}
		habits, err := ds.habits.GetForUser(dbc, userID, &inProgress)
		if err != nil {
			return err
		}
		rows := make([]DashboardHabit, 0, len(habits))
		for _, h := range habits {
			streak, err := ds.streaks.Compute(dbc, h.Entity())
			if err != nil {
				return err
			}
			doneToday, err := ds.habitLogs.DoneOn(dbc, h.ID, today)
			if err != nil {
				return err
			}
			rows = append(rows, DashboardHabit{Habit: h, Streak: streak, DoneToday: doneToday})
		}
		habitRows = rows
		return nil
	})
	g.Go(func() error {
		dbc := dbctx.Context{Ctx: gctx}
		enrollments, err := ds.enrollments.GetForUser(dbc, userID, &inProgress)
		if err != nil {
			return err
		}
		rows := make([]DashboardChallenge, 0, len(enrollments))
		for _, uc := range enrollments {
			e := uc.Entity()
			streak, err := ds.streaks.Compute(dbc, e)
			if err != nil {
				return err
			}
			doneToday, err := ds.chalLogs.DoneOn(dbc, uc.ID, today)
			if err != nil {
				return err
			}
			remaining := e.TargetDays - tracking.DaysBetween(e.StartDate, today)
			if remaining < 0 {
				remaining = 0
			}
			rows = append(rows, DashboardChallenge{
				Enrollment:    uc,
				Streak:        streak,
				DoneToday:     doneToday,
				DaysRemaining: remaining,
			})
		}
		chalRows = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{
		XP:         user.XP,
		BadgeCount: len(badges),
		Badges:     badges,
		Habits:     habitRows,
		Challenges: chalRows,
	}, nil
}
