package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/habitloop/habitloop-backend/internal/tracking"
)

// UserChallenge is one user's enrollment in a challenge.
type UserChallenge struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_user_challenge,unique" json:"user_id"`
	User        *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ChallengeID uuid.UUID       `gorm:"type:uuid;not null;index:idx_user_challenge,unique" json:"challenge_id"`
	Challenge   *Challenge      `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChallengeID;references:ID" json:"challenge,omitempty"`
	StartDate   time.Time       `gorm:"not null;column:start_date" json:"start_date"`
	Status      tracking.Status `gorm:"not null;default:'in_progress';column:status" json:"status"`
	CompletedAt *time.Time      `gorm:"column:completed_at" json:"completed_at,omitempty"`
	FailedAt    *time.Time      `gorm:"column:failed_at" json:"failed_at,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (UserChallenge) TableName() string { return "user_challenges" }

// Entity adapts the enrollment to the tracking core. Requires Challenge to
// be preloaded.
func (uc *UserChallenge) Entity() tracking.Entity {
	e := tracking.Entity{
		ID:        uc.ID,
		OwnerID:   uc.UserID,
		Kind:      tracking.KindChallenge,
		StartDate: tracking.DateOf(uc.StartDate),
		Status:    uc.Status,
	}
	if uc.Challenge != nil {
		e.Title = uc.Challenge.Title
		e.TargetDays = uc.Challenge.DurationDays
		e.XPReward = uc.Challenge.XPReward
	}
	return e
}
