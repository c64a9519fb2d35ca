package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/pkg/errors"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/requestdata"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResult carries the signed token and the authenticated user.
type AuthResult struct {
	Token string      `json:"token"`
	User  *types.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	// ParseToken validates a bearer token and extracts the caller identity.
	ParseToken(token string) (requestdata.RequestData, error)
}

type authService struct {
	users    repos.UserRepo
	secret   []byte
	tokenTTL time.Duration
	now      Clock
	log      *logger.Logger
}

func NewAuthService(users repos.UserRepo, secret string, tokenTTL time.Duration, now Clock, baseLog *logger.Logger) AuthService {
	return &authService{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      now,
		log:      baseLog.With("service", "AuthService"),
	}
}

func (as *authService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	dbc := dbctx.Context{Ctx: ctx}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := as.users.EmailExists(dbc, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Username: strings.TrimSpace(input.Username),
		Password: string(hash),
	}
	if err := as.users.Create(dbc, user); err != nil {
		return nil, err
	}

	token, err := as.signToken(user)
	if err != nil {
		return nil, err
	}
	as.log.Info("User registered", "user_id", user.ID)
	return &AuthResult{Token: token, User: user}, nil
}

func (as *authService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := as.users.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		// Same failure for unknown email and bad password.
		return nil, errors.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, errors.ErrUnauthorized
	}

	token, err := as.signToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (as *authService) signToken(user *types.User) (string, error) {
	now := as.now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"is_admin": user.IsAdmin,
		"iat":      now.Unix(),
		"exp":      now.Add(as.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.secret)
}

func (as *authService) ParseToken(token string) (requestdata.RequestData, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.ErrUnauthorized
		}
		return as.secret, nil
	})
	if err != nil || !parsed.Valid {
		return requestdata.RequestData{}, errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return requestdata.RequestData{}, errors.ErrUnauthorized
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return requestdata.RequestData{}, errors.ErrUnauthorized
	}
	isAdmin, _ := claims["is_admin"].(bool)

	return requestdata.RequestData{UserID: userID, IsAdmin: isAdmin}, nil
}
