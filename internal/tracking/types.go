package tracking

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindHabit     Kind = "habit"
	KindChallenge Kind = "challenge"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Entity is the unit the evaluator tracks: a habit, or a user's enrollment
// in a challenge.
type Entity struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Kind       Kind
	Title      string
	TargetDays int
	StartDate  time.Time
	Status     Status
	// XPReward is the completion payout for challenge enrollments; zero for habits.
	XPReward int
}

// Verdict is the evaluator's decision for one entity.
type Verdict struct {
	Transitioned  bool   `json:"transitioned"`
	Status        Status `json:"status"`
	Streak        int    `json:"streak"`
	Required      int    `json:"required"`
	DaysRemaining int    `json:"days_remaining,omitempty"`
}
