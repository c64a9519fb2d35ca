package app

import (
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/cache"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	User       services.UserService
	Habit      services.HabitService
	Challenge  services.ChallengeService
	Streak     services.StreakService
	Reward     services.RewardService
	Completion services.CompletionService
	Tracker    services.TrackerService
	Dashboard  services.DashboardService
	Analytics  services.AnalyticsService
	Admin      services.AdminService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients) Services {
	invalidator := cache.NewInvalidator(c.Cache, log)
	now := services.Clock(services.UTCNow)

	streakService := services.NewStreakService(
		r.Habit, r.UserChallenge, r.HabitLog, r.ChallengeLog, c.Cache, now, log)
	rewardService := services.NewRewardService(r.User, r.Badge, log)
	completionService := services.NewCompletionService(
		db, r.Habit, r.UserChallenge, r.HabitLog, r.ChallengeLog,
		streakService, rewardService, r.StatusTransition, invalidator, now, log)
	trackerService := services.NewTrackerService(
		db, r.Habit, r.UserChallenge, r.HabitLog, r.ChallengeLog,
		streakService, rewardService, completionService, invalidator, now, log)

	return Services{
		Auth:       services.NewAuthService(r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL, now, log),
		User:       services.NewUserService(r.User, r.Badge, log),
		Habit:      services.NewHabitService(db, r.Habit, invalidator, log),
		Challenge:  services.NewChallengeService(db, r.Challenge, r.UserChallenge, trackerService, invalidator, now, log),
		Streak:     streakService,
		Reward:     rewardService,
		Completion: completionService,
		Tracker:    trackerService,
		Dashboard: services.NewDashboardService(
			db, r.User, r.Badge, r.Habit, r.UserChallenge, r.HabitLog, r.ChallengeLog,
			streakService, completionService, c.Cache, now, log),
		Analytics: services.NewAnalyticsService(
			db, r.Habit, r.UserChallenge, r.HabitLog, r.ChallengeLog,
			completionService, c.Cache, now, log),
		Admin: services.NewAdminService(
			db, r.Habit, r.UserChallenge, r.HabitLog, r.ChallengeLog,
			r.StatusTransition, invalidator, now, log),
	}
}
