package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/habitloop/habitloop-backend/internal/handlers"
	"github.com/habitloop/habitloop-backend/internal/middleware"
)

type RouterConfig struct {
	AllowOrigins       []string
	AuthMiddleware     *middleware.AuthMiddleware
	HealthcheckHandler *handlers.HealthcheckHandler
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	HabitHandler       *handlers.HabitHandler
	ChallengeHandler   *handlers.ChallengeHandler
	DashboardHandler   *handlers.DashboardHandler
	AnalyticsHandler   *handlers.AnalyticsHandler
	StreakHandler      *handlers.StreakHandler
	AdminHandler       *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	// Habits
	protected.POST("/habits", cfg.HabitHandler.Create)
	protected.GET("/habits", cfg.HabitHandler.List)
	protected.GET("/habits/:id", cfg.HabitHandler.Get)
	protected.PUT("/habits/:id", cfg.HabitHandler.Update)
	protected.DELETE("/habits/:id", cfg.HabitHandler.Delete)
	protected.POST("/habits/:id/toggle", cfg.HabitHandler.Toggle)
	// Challenges
	protected.GET("/challenges", cfg.ChallengeHandler.List)
	protected.POST("/challenges/:id/join", cfg.ChallengeHandler.Join)
	protected.POST("/challenges/:id/toggle", cfg.ChallengeHandler.Toggle)
	// Derived views
	protected.GET("/dashboard", cfg.DashboardHandler.Get)
	protected.GET("/analytics", cfg.AnalyticsHandler.Get)
	protected.GET("/streaks/:kind/:id", cfg.StreakHandler.Get)

	// Admin
	admin := router.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
	admin.POST("/reopen/:kind/:id", cfg.AdminHandler.Reopen)

	return router
}
