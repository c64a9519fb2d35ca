package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/cache"
	appdb "github.com/habitloop/habitloop-backend/internal/db"
	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/tracking"
	"github.com/habitloop/habitloop-backend/internal/types"
)

var testDBSeq atomic.Int64

func dbcBackground() dbctx.Context {
	return dbctx.Context{Ctx: context.Background()}
}

// testEnv wires the full service stack against an in-memory sqlite database
// with a pinned clock. Cache is nil, so every read takes the store path.
type testEnv struct {
	t   *testing.T
	db  *gorm.DB
	now time.Time

	users       repos.UserRepo
	habits      repos.HabitRepo
	challenges  repos.ChallengeRepo
	enrollments repos.UserChallengeRepo
	habitLogs   repos.HabitLogRepo
	chalLogs    repos.ChallengeLogRepo
	badges      repos.BadgeRepo
	transitions repos.StatusTransitionRepo

	streaks          StreakService
	rewards          RewardService
	completions      CompletionService
	tracker          TrackerService
	admin            AdminService
	auth             AuthService
	dashboard        DashboardService
	analytics        AnalyticsService
	habitService     HabitService
	challengeService ChallengeService
}

func (env *testEnv) habitSvc() HabitService         { return env.habitService }
func (env *testEnv) challengeSvc() ChallengeService { return env.challengeService }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", testDBSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(appdb.AllModels()...); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	env := &testEnv{
		t:   t,
		db:  gdb,
		now: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC),
	}
	clock := Clock(func() time.Time { return env.now })

	env.users = repos.NewUserRepo(gdb, log)
	env.habits = repos.NewHabitRepo(gdb, log)
	env.challenges = repos.NewChallengeRepo(gdb, log)
	env.enrollments = repos.NewUserChallengeRepo(gdb, log)
	env.habitLogs = repos.NewHabitLogRepo(gdb, log)
	env.chalLogs = repos.NewChallengeLogRepo(gdb, log)
	env.badges = repos.NewBadgeRepo(gdb, log)
	env.transitions = repos.NewStatusTransitionRepo(gdb, log)

	invalidator := cache.NewInvalidator(nil, log)
	env.streaks = NewStreakService(env.habits, env.enrollments, env.habitLogs, env.chalLogs, nil, clock, log)
	env.rewards = NewRewardService(env.users, env.badges, log)
	env.completions = NewCompletionService(
		gdb, env.habits, env.enrollments, env.habitLogs, env.chalLogs,
		env.streaks, env.rewards, env.transitions, invalidator, clock, log)
	env.tracker = NewTrackerService(
		gdb, env.habits, env.enrollments, env.habitLogs, env.chalLogs,
		env.streaks, env.rewards, env.completions, invalidator, clock, log)
	env.admin = NewAdminService(
		gdb, env.habits, env.enrollments, env.habitLogs, env.chalLogs,
		env.transitions, invalidator, clock, log)
	env.auth = NewAuthService(env.users, "test-secret", time.Hour, clock, log)
	env.dashboard = NewDashboardService(
		gdb, env.users, env.badges, env.habits, env.enrollments, env.habitLogs, env.chalLogs,
		env.streaks, env.completions, nil, clock, log)
	env.analytics = NewAnalyticsService(
		gdb, env.habits, env.enrollments, env.habitLogs, env.chalLogs,
		env.completions, nil, clock, log)
	env.habitService = NewHabitService(gdb, env.habits, invalidator, log)
	env.challengeService = NewChallengeService(
		gdb, env.challenges, env.enrollments, env.tracker, invalidator, clock, log)

	return env
}

func (env *testEnv) createUser() *types.User {
	env.t.Helper()
	user := &types.User{
		ID:       uuid.New(),
		Email:    fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		Username: "tester",
		Password: "irrelevant",
	}
	if err := env.db.Create(user).Error; err != nil {
		env.t.Fatalf("create user: %v", err)
	}
	return user
}

func (env *testEnv) createHabit(userID uuid.UUID, targetDays int, startDaysAgo int) *types.Habit {
	env.t.Helper()
	habit := &types.Habit{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       "Morning run",
		Category:   "fitness",
		TargetDays: targetDays,
		Status:     tracking.StatusInProgress,
		CreatedAt:  env.now.AddDate(0, 0, -startDaysAgo),
	}
	if err := env.db.Create(habit).Error; err != nil {
		env.t.Fatalf("create habit: %v", err)
	}
	return habit
}

func (env *testEnv) createChallenge(durationDays, xpReward int) *types.Challenge {
	env.t.Helper()
	challenge := &types.Challenge{
		ID:           uuid.New(),
		Title:        fmt.Sprintf("Challenge %s", uuid.NewString()[:8]),
		DurationDays: durationDays,
		XPReward:     xpReward,
	}
	if err := env.db.Create(challenge).Error; err != nil {
		env.t.Fatalf("create challenge: %v", err)
	}
	return challenge
}

func (env *testEnv) joinChallenge(userID uuid.UUID, challenge *types.Challenge, startDaysAgo int) *types.UserChallenge {
	env.t.Helper()
	enrollment := &types.UserChallenge{
		ID:          uuid.New(),
		UserID:      userID,
		ChallengeID: challenge.ID,
		StartDate:   tracking.DateOf(env.now.AddDate(0, 0, -startDaysAgo)),
		Status:      tracking.StatusInProgress,
	}
	if err := env.db.Create(enrollment).Error; err != nil {
		env.t.Fatalf("create enrollment: %v", err)
	}
	enrollment.Challenge = challenge
	return enrollment
}

func (env *testEnv) seedHabitDone(habitID uuid.UUID, daysAgo ...int) {
	env.t.Helper()
	for _, d := range daysAgo {
		entry := &types.HabitLog{
			ID:      uuid.New(),
			HabitID: habitID,
			Date:    tracking.DateOf(env.now.AddDate(0, 0, -d)),
			Status:  types.LogDone,
		}
		if err := env.db.Create(entry).Error; err != nil {
			env.t.Fatalf("seed habit log: %v", err)
		}
	}
}

func (env *testEnv) seedChallengeDone(enrollmentID uuid.UUID, daysAgo ...int) {
	env.t.Helper()
	for _, d := range daysAgo {
		entry := &types.ChallengeLog{
			ID:              uuid.New(),
			UserChallengeID: enrollmentID,
			Date:            tracking.DateOf(env.now.AddDate(0, 0, -d)),
			Status:          types.LogDone,
		}
		if err := env.db.Create(entry).Error; err != nil {
			env.t.Fatalf("seed challenge log: %v", err)
		}
	}
}

func (env *testEnv) userXP(userID uuid.UUID) int {
	env.t.Helper()
	var user types.User
	if err := env.db.First(&user, "id = ?", userID).Error; err != nil {
		env.t.Fatalf("load user: %v", err)
	}
	return user.XP
}
