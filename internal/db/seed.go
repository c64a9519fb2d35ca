package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/types"
)

var defaultChallenges = []types.Challenge{
	{Title: "7-Day Meditation", Description: "Meditate every day for a week.", DurationDays: 7, XPReward: 100},
	{Title: "14-Day Reading Sprint", Description: "Read at least 20 minutes a day for two weeks.", DurationDays: 14, XPReward: 250},
	{Title: "30-Day Fitness", Description: "Work out every day for a month.", DurationDays: 30, XPReward: 600},
	{Title: "30-Day Hydration", Description: "Drink eight glasses of water daily for a month.", DurationDays: 30, XPReward: 500},
	{Title: "60-Day Early Riser", Description: "Wake up before 7am for two months.", DurationDays: 60, XPReward: 1200},
}

// SeedChallenges inserts the default challenge catalog, skipping titles that
// already exist.
func SeedChallenges(theDB *gorm.DB, log *logger.Logger) error {
	now := time.Now().UTC()
	for i := range defaultChallenges {
		c := defaultChallenges[i]
		c.ID = uuid.New()
		c.CreatedAt = now
		if err := theDB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "title"}},
			DoNothing: true,
		}).Create(&c).Error; err != nil {
			log.Error("Failed to seed challenge", "title", c.Title, "error", err)
			return err
		}
	}
	log.Info("Challenge catalog seeded", "count", len(defaultChallenges))
	return nil
}
