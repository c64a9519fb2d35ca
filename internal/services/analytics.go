package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/cache"
	"github.com/habitloop/habitloop-backend/internal/clients/redis"
	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/tracking"
)

// AnalyticsWindowDays is how far back the analytics view looks.
const AnalyticsWindowDays = 30

type Analytics struct {
	// Chart covers every day of the window, zero-filled, habit and
	// challenge completions summed per day.
	Chart               []repos.DayCount `json:"chart"`
	ActiveDays          int              `json:"active_days"`
	TotalCompletions    int              `json:"total_completions"`
	CompletedHabits     int              `json:"completed_habits"`
	CompletedChallenges int              `json:"completed_challenges"`
}

type AnalyticsService interface {
	GetAnalytics(ctx context.Context, userID uuid.UUID) (*Analytics, error)
}

type analyticsService struct {
	db          *gorm.DB
	habits      repos.HabitRepo
	enrollments repos.UserChallengeRepo
	habitLogs   repos.HabitLogRepo
	chalLogs    repos.ChallengeLogRepo
	completions CompletionService
	cache       redis.Cache
	now         Clock
	log         *logger.Logger
}

func NewAnalyticsService(
	db *gorm.DB,
	habits repos.HabitRepo,
	enrollments repos.UserChallengeRepo,
	habitLogs repos.HabitLogRepo,
	chalLogs repos.ChallengeLogRepo,
	completions CompletionService,
	c redis.Cache,
	now Clock,
	baseLog *logger.Logger,
) AnalyticsService {
	return &analyticsService{
		db:          db,
		habits:      habits,
		enrollments: enrollments,
		habitLogs:   habitLogs,
		chalLogs:    chalLogs,
		completions: completions,
		cache:       c,
		now:         now,
		log:         baseLog.With("service", "AnalyticsService"),
	}
}

func (as *analyticsService) GetAnalytics(ctx context.Context, userID uuid.UUID) (*Analytics, error) {
	if err := as.completions.EvaluateAllForUser(ctx, userID); err != nil {
		return nil, err
	}

	return cache.GetOrFetch(ctx, as.cache, as.log, cache.AnalyticsKey(userID), cache.AnalyticsTTL, func() (*Analytics, error) {
		return as.build(ctx, userID)
	})
}

func (as *analyticsService) build(ctx context.Context, userID uuid.UUID) (*Analytics, error) {
	today := tracking.DateOf(as.now())
	from := today.AddDate(0, 0, -(AnalyticsWindowDays - 1))
	completed := tracking.StatusCompleted

	var (
		habitCounts []repos.DayCount
		chalCounts  []repos.DayCount
		habitStats  repos.ActivityStats
		chalStats   repos.ActivityStats
		doneHabits  int
		doneChals   int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		habitCounts, err = as.habitLogs.DailyDoneCounts(dbctx.Context{Ctx: gctx}, userID, from)
		return err
	})
	g.Go(func() error {
		var err error
		chalCounts, err = as.chalLogs.DailyDoneCounts(dbctx.Context{Ctx: gctx}, userID, from)
		return err
	})
	g.Go(func() error {
		var err error
		habitStats, err = as.habitLogs.ActiveStats(dbctx.Context{Ctx: gctx}, userID, from)
		return err
	})
	g.Go(func() error {
		var err error
		chalStats, err = as.chalLogs.ActiveStats(dbctx.Context{Ctx: gctx}, userID, from)
		return err
	})
	g.Go(func() error {
		habits, err := as.habits.GetForUser(dbctx.Context{Ctx: gctx}, userID, &completed)
		if err != nil {
			return err
		}
		doneHabits = len(habits)
		return nil
	})
	g.Go(func() error {
		enrollments, err := as.enrollments.GetForUser(dbctx.Context{Ctx: gctx}, userID, &completed)
		if err != nil {
			return err
		}
		doneChals = len(enrollments)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	chart := mergeChart(from, today, habitCounts, chalCounts)
	activeDays := 0
	for _, dc := range chart {
		if dc.Count > 0 {
			activeDays++
		}
	}

	return &Analytics{
		Chart:               chart,
		ActiveDays:          activeDays,
		TotalCompletions:    habitStats.TotalCompletions + chalStats.TotalCompletions,
		CompletedHabits:     doneHabits,
		CompletedChallenges: doneChals,
	}, nil
}

// mergeChart sums the per-day series and zero-fills every day in the window
// so chart consumers never have to interpolate.
func mergeChart(from, to time.Time, series ...[]repos.DayCount) []repos.DayCount {
	totals := make(map[string]int)
	for _, s := range series {
		for _, dc := range s {
			totals[dc.Date] += dc.Count
		}
	}
	var chart []repos.DayCount
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		key := tracking.FormatDate(day)
		chart = append(chart, repos.DayCount{Date: key, Count: totals[key]})
	}
	return chart
}
