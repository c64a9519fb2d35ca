package app

import (
	"github.com/habitloop/habitloop-backend/internal/handlers"
)

type Handlers struct {
	Healthcheck *handlers.HealthcheckHandler
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Habit       *handlers.HabitHandler
	Challenge   *handlers.ChallengeHandler
	Dashboard   *handlers.DashboardHandler
	Analytics   *handlers.AnalyticsHandler
	Streak      *handlers.StreakHandler
	Admin       *handlers.AdminHandler
}

func wireHandlers(s Services) Handlers {
	return Handlers{
		Healthcheck: handlers.NewHealthcheckHandler(),
		Auth:        handlers.NewAuthHandler(s.Auth),
		User:        handlers.NewUserHandler(s.User),
		Habit:       handlers.NewHabitHandler(s.Habit, s.Tracker),
		Challenge:   handlers.NewChallengeHandler(s.Challenge),
		Dashboard:   handlers.NewDashboardHandler(s.Dashboard),
		Analytics:   handlers.NewAnalyticsHandler(s.Analytics),
		Streak:      handlers.NewStreakHandler(s.Streak),
		Admin:       handlers.NewAdminHandler(s.Admin),
	}
}
