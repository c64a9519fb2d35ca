package services

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/habitloop/habitloop-backend/internal/pkg/errors"
)

func TestRegisterLoginRoundtrip(t *testing.T) {
	env := newTestEnv(t)

	registered, err := env.auth.Register(context.Background(), RegisterInput{
		Email:    "Runner@Example.com",
		Username: "runner",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.Token == "" {
		t.Fatalf("register returned empty token")
	}
	if registered.User.Email != "runner@example.com" {
		t.Fatalf("email = %q, want lowercased", registered.User.Email)
	}
	if registered.User.Password == "correct horse battery" {
		t.Fatalf("password stored in plaintext")
	}

	loggedIn, err := env.auth.Login(context.Background(), LoginInput{
		Email:    "runner@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	rd, err := env.auth.ParseToken(loggedIn.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if rd.UserID != registered.User.ID {
		t.Fatalf("token user = %s, want %s", rd.UserID, registered.User.ID)
	}
	if rd.IsAdmin {
		t.Fatalf("fresh user should not be admin")
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv(t)
	input := RegisterInput{Email: "dup@example.com", Username: "one", Password: "long enough pw"}

	if _, err := env.auth.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := env.auth.Register(context.Background(), input)
	if !stderrors.Is(err, errors.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.auth.Register(context.Background(), RegisterInput{
		Email: "who@example.com", Username: "who", Password: "the real password",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := env.auth.Login(context.Background(), LoginInput{Email: "who@example.com", Password: "a guess"})
	if !stderrors.Is(err, errors.ErrUnauthorized) {
		t.Fatalf("wrong password err = %v, want ErrUnauthorized", err)
	}
	_, err = env.auth.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"})
	if !stderrors.Is(err, errors.ErrUnauthorized) {
		t.Fatalf("unknown email err = %v, want ErrUnauthorized", err)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.auth.ParseToken("not.a.jwt"); !stderrors.Is(err, errors.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}
