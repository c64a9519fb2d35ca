package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/pkg/errors"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/tracking"
)

// Clock supplies the current instant. Production wiring passes UTCNow;
// tests pin it to a fixed day so streak math is reproducible.
type Clock func() time.Time

func UTCNow() time.Time { return time.Now().UTC() }

// entityStore dispatches tracked-entity reads and writes to the habit or
// enrollment tables behind a single kind-keyed surface.
type entityStore struct {
	habits        repos.HabitRepo
	enrollments   repos.UserChallengeRepo
	habitLogs     repos.HabitLogRepo
	challengeLogs repos.ChallengeLogRepo
}

func (es *entityStore) Load(dbc dbctx.Context, kind tracking.Kind, entityID uuid.UUID) (tracking.Entity, error) {
	switch kind {
	case tracking.KindHabit:
		habit, err := es.habits.GetByID(dbc, entityID)
		if err != nil {
			return tracking.Entity{}, err
		}
		return habit.Entity(), nil
	case tracking.KindChallenge:
		enrollment, err := es.enrollments.GetByID(dbc, entityID)
		if err != nil {
			return tracking.Entity{}, err
		}
		return enrollment.Entity(), nil
	default:
		return tracking.Entity{}, errors.ErrInvalidArgument
	}
}

// SetStatus writes the entity's lifecycle columns for the transition. A move
// back to in_progress clears both stamps (admin reopen).
func (es *entityStore) SetStatus(dbc dbctx.Context, e tracking.Entity, to tracking.Status, now time.Time) error {
	var completedAt, otherAt *time.Time
	switch to {
	case tracking.StatusCompleted:
		completedAt = &now
		otherAt = &now
	case tracking.StatusFailed:
		otherAt = &now
	case tracking.StatusInProgress:
	default:
		return errors.ErrInvalidArgument
	}
	switch e.Kind {
	case tracking.KindHabit:
		return es.habits.SetStatus(dbc, e.ID, to, completedAt, otherAt)
	case tracking.KindChallenge:
		if to == tracking.StatusCompleted {
			return es.enrollments.SetStatus(dbc, e.ID, to, completedAt, nil)
		}
		return es.enrollments.SetStatus(dbc, e.ID, to, nil, otherAt)
	default:
		return errors.ErrInvalidArgument
	}
}

func (es *entityStore) DoneDatesDesc(dbc dbctx.Context, kind tracking.Kind, entityID uuid.UUID) ([]time.Time, error) {
	switch kind {
	case tracking.KindHabit:
		return es.habitLogs.DoneDatesDesc(dbc, entityID)
	case tracking.KindChallenge:
		return es.challengeLogs.DoneDatesDesc(dbc, entityID)
	default:
		return nil, errors.ErrInvalidArgument
	}
}

func (es *entityStore) ToggleForDate(dbc dbctx.Context, kind tracking.Kind, entityID uuid.UUID, date time.Time) (string, bool, error) {
	switch kind {
	case tracking.KindHabit:
		return es.habitLogs.ToggleForDate(dbc, entityID, date)
	case tracking.KindChallenge:
		return es.challengeLogs.ToggleForDate(dbc, entityID, date)
	default:
		return "", false, errors.ErrInvalidArgument
	}
}

func (es *entityStore) DoneOn(dbc dbctx.Context, kind tracking.Kind, entityID uuid.UUID, date time.Time) (bool, error) {
	switch kind {
	case tracking.KindHabit:
		return es.habitLogs.DoneOn(dbc, entityID, date)
	case tracking.KindChallenge:
		return es.challengeLogs.DoneOn(dbc, entityID, date)
	default:
		return false, errors.ErrInvalidArgument
	}
}
