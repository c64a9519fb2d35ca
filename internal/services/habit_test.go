package services

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/habitloop/habitloop-backend/internal/pkg/errors"
	"github.com/habitloop/habitloop-backend/internal/tracking"
)

func TestCreateHabitDefaultsTargetDays(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()

	habit, err := env.habitSvc().Create(context.Background(), user.ID, CreateHabitInput{Name: "  Journal  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if habit.Name != "Journal" {
		t.Fatalf("name = %q, want trimmed", habit.Name)
	}
	if habit.TargetDays != DefaultTargetDays {
		t.Fatalf("target days = %d, want %d", habit.TargetDays, DefaultTargetDays)
	}
	if habit.Status != tracking.StatusInProgress {
		t.Fatalf("status = %q, want in_progress", habit.Status)
	}
}

func TestCreateHabitRejectsBlankName(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()

	_, err := env.habitSvc().Create(context.Background(), user.ID, CreateHabitInput{Name: "   "})
	if !stderrors.Is(err, errors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestUpdateHabitEnforcesOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser()
	intruder := env.createUser()
	habit := env.createHabit(owner.ID, 21, 0)

	_, err := env.habitSvc().Update(context.Background(), intruder.ID, habit.ID, UpdateHabitInput{
		Name: "Hijacked", TargetDays: 5,
	})
	if !stderrors.Is(err, errors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	updated, err := env.habitSvc().Update(context.Background(), owner.ID, habit.ID, UpdateHabitInput{
		Name: "Evening run", Category: "fitness", TargetDays: 14,
	})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Name != "Evening run" || updated.TargetDays != 14 {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestDeleteHabitRemovesIt(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	habit := env.createHabit(user.ID, 21, 0)

	if err := env.habitSvc().Delete(context.Background(), user.ID, habit.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err := env.habits.GetByID(dbcBackground(), habit.ID)
	if !stderrors.Is(err, errors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound after delete", err)
	}
}
