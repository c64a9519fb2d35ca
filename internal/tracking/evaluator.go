package tracking

import "time"

// Evaluate decides whether an in-progress entity transitions to completed or
// failed. Success is checked before failure so a streak that reaches the
// target on its last eligible day counts as a completion even when the
// elapsed-days condition also holds.
func Evaluate(e Entity, streak int, today time.Time) Verdict {
	if e.Status != StatusInProgress {
		return Verdict{Status: e.Status, Streak: streak, Required: e.TargetDays}
	}

	daysSinceStart := DaysBetween(e.StartDate, today)

	if streak >= e.TargetDays {
		return Verdict{
			Transitioned: true,
			Status:       StatusCompleted,
			Streak:       streak,
			Required:     e.TargetDays,
		}
	}

	if daysSinceStart >= e.TargetDays {
		return Verdict{
			Transitioned: true,
			Status:       StatusFailed,
			Streak:       streak,
			Required:     e.TargetDays,
		}
	}

	remaining := e.TargetDays - daysSinceStart
	return Verdict{
		Status:        StatusInProgress,
		Streak:        streak,
		Required:      e.TargetDays,
		DaysRemaining: remaining,
	}
}
