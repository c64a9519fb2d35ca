package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	LogDone    = "done"
	LogNotDone = "not done"
)

// HabitLog is one habit's completion record for one calendar day. Unique per
// (habit, date); the toggle protocol upserts against that constraint.
type HabitLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HabitID   uuid.UUID `gorm:"type:uuid;not null;index:idx_habit_log_day,unique" json:"habit_id"`
	Habit     *Habit    `gorm:"constraint:OnDelete:CASCADE;foreignKey:HabitID;references:ID" json:"habit,omitempty"`
	Date      time.Time `gorm:"not null;index:idx_habit_log_day,unique;column:date" json:"date"`
	Status    string    `gorm:"not null;column:status" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (HabitLog) TableName() string { return "habit_logs" }

// ChallengeLog is one enrollment's completion record for one calendar day.
type ChallengeLog struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserChallengeID uuid.UUID      `gorm:"type:uuid;not null;index:idx_challenge_log_day,unique" json:"user_challenge_id"`
	UserChallenge   *UserChallenge `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserChallengeID;references:ID" json:"user_challenge,omitempty"`
	Date            time.Time      `gorm:"not null;index:idx_challenge_log_day,unique;column:date" json:"date"`
	Status          string         `gorm:"not null;column:status" json:"status"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (ChallengeLog) TableName() string { return "challenge_logs" }
