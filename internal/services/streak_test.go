package services

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/habitloop/habitloop-backend/internal/pkg/errors"
	"github.com/habitloop/habitloop-backend/internal/tracking"
)

func TestGetStreakCountsConsecutiveDays(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	habit := env.createHabit(user.ID, 21, 5)
	env.seedHabitDone(habit.ID, 2, 1, 0)

	result, err := env.streaks.GetStreak(context.Background(), user.ID, tracking.KindHabit, habit.ID)
	if err != nil {
		t.Fatalf("get streak: %v", err)
	}
	if result.Streak != 3 {
		t.Fatalf("streak = %d, want 3", result.Streak)
	}
	if result.Target != 21 {
		t.Fatalf("target = %d, want 21", result.Target)
	}
}

func TestGetStreakToleratesMissingToday(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	habit := env.createHabit(user.ID, 21, 5)
	// Done yesterday and the day before, nothing today. The streak holds
	// through the grace window.
	env.seedHabitDone(habit.ID, 2, 1)

	result, err := env.streaks.GetStreak(context.Background(), user.ID, tracking.KindHabit, habit.ID)
	if err != nil {
		t.Fatalf("get streak: %v", err)
	}
	if result.Streak != 2 {
		t.Fatalf("streak = %d, want 2", result.Streak)
	}
}

func TestGetStreakBreaksAfterTwoDayGap(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	habit := env.createHabit(user.ID, 21, 10)
	env.seedHabitDone(habit.ID, 4, 3, 2)

	result, err := env.streaks.GetStreak(context.Background(), user.ID, tracking.KindHabit, habit.ID)
	if err != nil {
		t.Fatalf("get streak: %v", err)
	}
	if result.Streak != 0 {
		t.Fatalf("streak = %d, want 0", result.Streak)
	}
}

func TestGetStreakCapsAtDaysSinceStart(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	// Habit created today: even with stray earlier logs the streak can
	// never exceed one day of existence.
	habit := env.createHabit(user.ID, 21, 0)
	env.seedHabitDone(habit.ID, 1, 0)

	result, err := env.streaks.GetStreak(context.Background(), user.ID, tracking.KindHabit, habit.ID)
	if err != nil {
		t.Fatalf("get streak: %v", err)
	}
	if result.Streak != 1 {
		t.Fatalf("streak = %d, want capped at 1", result.Streak)
	}
}

func TestGetStreakHidesForeignEntities(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser()
	intruder := env.createUser()
	habit := env.createHabit(owner.ID, 21, 0)

	_, err := env.streaks.GetStreak(context.Background(), intruder.ID, tracking.KindHabit, habit.ID)
	if !stderrors.Is(err, errors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
