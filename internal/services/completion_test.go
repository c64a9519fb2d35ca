package services

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/habitloop/habitloop-backend/internal/pkg/errors"
	"github.com/habitloop/habitloop-backend/internal/requestdata"
	"github.com/habitloop/habitloop-backend/internal/tracking"
)

func TestEvaluateMarksOverdueEntityFailed(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	habit := env.createHabit(user.ID, 7, 10)
	env.seedHabitDone(habit.ID, 8)

	verdict, err := env.completions.Evaluate(context.Background(), user.ID, tracking.KindHabit, habit.ID)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !verdict.Transitioned || verdict.Status != tracking.StatusFailed {
		t.Fatalf("verdict = %+v, want failed transition", verdict)
	}

	reloaded, err := env.habits.GetByID(dbcBackground(), habit.ID)
	if err != nil {
		t.Fatalf("reload habit: %v", err)
	}
	if reloaded.Status != tracking.StatusFailed {
		t.Fatalf("habit status = %q, want failed", reloaded.Status)
	}
	if reloaded.CompletedAt != nil {
		t.Fatalf("failed habit has completed_at stamp")
	}
	if reloaded.EndDate == nil {
		t.Fatalf("failed habit missing end_date stamp")
	}

	transitions, err := env.transitions.ListForEntity(dbcBackground(), habit.ID)
	if err != nil {
		t.Fatalf("list transitions: %v", err)
	}
	if len(transitions) != 1 {
		t.Fatalf("transition count = %d, want 1", len(transitions))
	}
	if transitions[0].FromStatus != tracking.StatusInProgress || transitions[0].ToStatus != tracking.StatusFailed {
		t.Fatalf("transition = %s -> %s, want in_progress -> failed", transitions[0].FromStatus, transitions[0].ToStatus)
	}
	if transitions[0].ActorID != nil {
		t.Fatalf("evaluator transition should have no actor")
	}
}

func TestEvaluateSuccessWinsOverElapsedDeadline(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	// Both conditions hold on the same day: the streak reached the target
	// and the allotted days are up. Completion must win.
	habit := env.createHabit(user.ID, 3, 3)
	env.seedHabitDone(habit.ID, 2, 1, 0)

	verdict, err := env.completions.Evaluate(context.Background(), user.ID, tracking.KindHabit, habit.ID)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if verdict.Status != tracking.StatusCompleted {
		t.Fatalf("status = %q, want completed", verdict.Status)
	}
}

func TestEvaluateInProgressIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	habit := env.createHabit(user.ID, 21, 2)
	env.seedHabitDone(habit.ID, 1, 0)

	verdict, err := env.completions.Evaluate(context.Background(), user.ID, tracking.KindHabit, habit.ID)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if verdict.Transitioned {
		t.Fatalf("verdict = %+v, want no transition", verdict)
	}
	if verdict.Status != tracking.StatusInProgress {
		t.Fatalf("status = %q, want in_progress", verdict.Status)
	}

	transitions, err := env.transitions.ListForEntity(dbcBackground(), habit.ID)
	if err != nil {
		t.Fatalf("list transitions: %v", err)
	}
	if len(transitions) != 0 {
		t.Fatalf("no-op evaluation wrote %d transitions", len(transitions))
	}
}

func TestEvaluateAllFinalizesEveryOverdueEntity(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	staleHabit := env.createHabit(user.ID, 7, 9)
	liveHabit := env.createHabit(user.ID, 21, 1)
	challenge := env.createChallenge(7, 100)
	staleEnrollment := env.joinChallenge(user.ID, challenge, 12)

	if err := env.completions.EvaluateAllForUser(context.Background(), user.ID); err != nil {
		t.Fatalf("evaluate all: %v", err)
	}

	h1, _ := env.habits.GetByID(dbcBackground(), staleHabit.ID)
	if h1.Status != tracking.StatusFailed {
		t.Fatalf("stale habit status = %q, want failed", h1.Status)
	}
	h2, _ := env.habits.GetByID(dbcBackground(), liveHabit.ID)
	if h2.Status != tracking.StatusInProgress {
		t.Fatalf("live habit status = %q, want in_progress", h2.Status)
	}
	uc, _ := env.enrollments.GetByID(dbcBackground(), staleEnrollment.ID)
	if uc.Status != tracking.StatusFailed || uc.FailedAt == nil {
		t.Fatalf("stale enrollment = status %q failed_at %v, want failed with stamp", uc.Status, uc.FailedAt)
	}
}

func TestAdminReopenRestoresInProgress(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	adminUser := env.createUser()
	challenge := env.createChallenge(7, 100)
	enrollment := env.joinChallenge(user.ID, challenge, 12)

	if err := env.completions.EvaluateAllForUser(context.Background(), user.ID); err != nil {
		t.Fatalf("evaluate all: %v", err)
	}

	actor := requestdata.RequestData{UserID: adminUser.ID, IsAdmin: true}
	if err := env.admin.Reopen(context.Background(), actor, tracking.KindChallenge, enrollment.ID, "support ticket 4821"); err != nil {
		t.Fatalf("reopen: %v", err)
	}

	reloaded, err := env.enrollments.GetByID(dbcBackground(), enrollment.ID)
	if err != nil {
		t.Fatalf("reload enrollment: %v", err)
	}
	if reloaded.Status != tracking.StatusInProgress {
		t.Fatalf("status = %q, want in_progress", reloaded.Status)
	}
	if reloaded.FailedAt != nil || reloaded.CompletedAt != nil {
		t.Fatalf("reopened enrollment keeps stamps: %+v", reloaded)
	}

	transitions, err := env.transitions.ListForEntity(dbcBackground(), enrollment.ID)
	if err != nil {
		t.Fatalf("list transitions: %v", err)
	}
	if len(transitions) != 2 {
		t.Fatalf("transition count = %d, want failure + reopen", len(transitions))
	}
	reopen := transitions[1]
	if reopen.ActorID == nil || *reopen.ActorID != adminUser.ID {
		t.Fatalf("reopen actor = %v, want admin id", reopen.ActorID)
	}
}

func TestAdminReopenRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	habit := env.createHabit(user.ID, 7, 10)
	if err := env.completions.EvaluateAllForUser(context.Background(), user.ID); err != nil {
		t.Fatalf("evaluate all: %v", err)
	}

	actor := requestdata.RequestData{UserID: user.ID, IsAdmin: false}
	err := env.admin.Reopen(context.Background(), actor, tracking.KindHabit, habit.ID, "please")
	if !stderrors.Is(err, errors.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestAdminReopenRejectsInProgressEntity(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	adminUser := env.createUser()
	habit := env.createHabit(user.ID, 21, 0)

	actor := requestdata.RequestData{UserID: adminUser.ID, IsAdmin: true}
	err := env.admin.Reopen(context.Background(), actor, tracking.KindHabit, habit.ID, "nothing to reopen")
	if !stderrors.Is(err, errors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}
