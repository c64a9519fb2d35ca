package types

import (
	"time"

	"github.com/google/uuid"
)

type Challenge struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"uniqueIndex;not null;column:title" json:"title"`
	Description  string    `gorm:"column:description" json:"description"`
	DurationDays int       `gorm:"not null;column:duration_days" json:"duration_days"`
	XPReward     int       `gorm:"not null;column:xp_reward" json:"xp_reward"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (Challenge) TableName() string { return "challenges" }
