package services

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/habitloop/habitloop-backend/internal/pkg/errors"
	"github.com/habitloop/habitloop-backend/internal/tracking"
	"github.com/habitloop/habitloop-backend/internal/types"
)

func TestJoinChallengeStartsToday(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	challenge := env.createChallenge(7, 100)

	enrollment, err := env.challengeSvc().Join(context.Background(), user.ID, challenge.ID)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if enrollment.Status != tracking.StatusInProgress {
		t.Fatalf("status = %q, want in_progress", enrollment.Status)
	}
	if !enrollment.StartDate.Equal(tracking.DateOf(env.now)) {
		t.Fatalf("start date = %v, want today", enrollment.StartDate)
	}
}

func TestJoinChallengeTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	challenge := env.createChallenge(7, 100)

	if _, err := env.challengeSvc().Join(context.Background(), user.ID, challenge.ID); err != nil {
		t.Fatalf("first join: %v", err)
	}
	_, err := env.challengeSvc().Join(context.Background(), user.ID, challenge.ID)
	if !stderrors.Is(err, errors.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestListChallengesAnnotatesParticipation(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	joined := env.createChallenge(7, 100)
	env.createChallenge(14, 250)
	if _, err := env.challengeSvc().Join(context.Background(), user.ID, joined.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	views, err := env.challengeSvc().List(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("view count = %d, want 2", len(views))
	}
	joinedCount := 0
	for _, v := range views {
		if v.Joined {
			joinedCount++
			if v.Challenge.ID != joined.ID {
				t.Fatalf("wrong challenge marked joined: %+v", v)
			}
			if v.Status != tracking.StatusInProgress {
				t.Fatalf("joined status = %q, want in_progress", v.Status)
			}
		}
	}
	if joinedCount != 1 {
		t.Fatalf("joined count = %d, want 1", joinedCount)
	}
}

func TestToggleDailyResolvesEnrollment(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	challenge := env.createChallenge(7, 100)
	if _, err := env.challengeSvc().Join(context.Background(), user.ID, challenge.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	result, err := env.challengeSvc().ToggleDaily(context.Background(), user.ID, challenge.ID)
	if err != nil {
		t.Fatalf("toggle daily: %v", err)
	}
	if result.Kind != tracking.KindChallenge {
		t.Fatalf("kind = %q, want challenge", result.Kind)
	}
	if result.LogStatus != types.LogDone {
		t.Fatalf("log status = %q, want done", result.LogStatus)
	}
	if result.XPDelta != 15 {
		t.Fatalf("xp delta = %d, want challenge base 15", result.XPDelta)
	}
}

func TestToggleDailyWithoutJoinNotFound(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser()
	challenge := env.createChallenge(7, 100)

	_, err := env.challengeSvc().ToggleDaily(context.Background(), user.ID, challenge.ID)
	if !stderrors.Is(err, errors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
