package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/habitloop/habitloop-backend/internal/tracking"
)

// StatusTransition is the audit trail for entity finalizations and admin
// reopens. The evaluator only appends here; it never reads it back.
type StatusTransition struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	EntityKind tracking.Kind   `gorm:"not null;column:entity_kind" json:"entity_kind"`
	EntityID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"entity_id"`
	FromStatus tracking.Status `gorm:"not null;column:from_status" json:"from_status"`
	ToStatus   tracking.Status `gorm:"not null;column:to_status" json:"to_status"`
	ActorID    *uuid.UUID      `gorm:"type:uuid;column:actor_id" json:"actor_id,omitempty"`
	Details    datatypes.JSON  `gorm:"column:details" json:"details,omitempty"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
}

func (StatusTransition) TableName() string { return "status_transitions" }
