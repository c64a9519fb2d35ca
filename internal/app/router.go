package app

import (
	"github.com/gin-gonic/gin"

	"github.com/habitloop/habitloop-backend/internal/server"
)

func wireRouter(cfg Config, h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowOrigins:       cfg.AllowOrigins,
		AuthMiddleware:     m.Auth,
		HealthcheckHandler: h.Healthcheck,
		AuthHandler:        h.Auth,
		UserHandler:        h.User,
		HabitHandler:       h.Habit,
		ChallengeHandler:   h.Challenge,
		DashboardHandler:   h.Dashboard,
		AnalyticsHandler:   h.Analytics,
		StreakHandler:      h.Streak,
		AdminHandler:       h.Admin,
	})
}
