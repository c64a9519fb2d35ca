package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/habitloop/habitloop-backend/internal/tracking"
)

type Habit struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name        string          `gorm:"not null;column:name" json:"name"`
	Category    string          `gorm:"column:category" json:"category"`
	TargetDays  int             `gorm:"not null;column:target_days" json:"target_days"`
	Status      tracking.Status `gorm:"not null;default:'in_progress';column:status" json:"status"`
	CompletedAt *time.Time      `gorm:"column:completed_at" json:"completed_at,omitempty"`
	EndDate     *time.Time      `gorm:"column:end_date" json:"end_date,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (Habit) TableName() string { return "habits" }

// Entity adapts the row to the tracking core. A habit's clock starts the day
// it was created.
func (h *Habit) Entity() tracking.Entity {
	return tracking.Entity{
		ID:         h.ID,
		OwnerID:    h.UserID,
		Kind:       tracking.KindHabit,
		Title:      h.Name,
		TargetDays: h.TargetDays,
		StartDate:  tracking.DateOf(h.CreatedAt),
		Status:     h.Status,
	}
}
