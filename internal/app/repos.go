package app

import (
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
)

type Repos struct {
	User             repos.UserRepo
	Habit            repos.HabitRepo
	Challenge        repos.ChallengeRepo
	UserChallenge    repos.UserChallengeRepo
	HabitLog         repos.HabitLogRepo
	ChallengeLog     repos.ChallengeLogRepo
	Badge            repos.BadgeRepo
	StatusTransition repos.StatusTransitionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		User:             repos.NewUserRepo(db, log),
		Habit:            repos.NewHabitRepo(db, log),
		Challenge:        repos.NewChallengeRepo(db, log),
		UserChallenge:    repos.NewUserChallengeRepo(db, log),
		HabitLog:         repos.NewHabitLogRepo(db, log),
		ChallengeLog:     repos.NewChallengeLogRepo(db, log),
		Badge:            repos.NewBadgeRepo(db, log),
		StatusTransition: repos.NewStatusTransitionRepo(db, log),
	}
}
