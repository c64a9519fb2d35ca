package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/cache"
	"github.com/habitloop/habitloop-backend/internal/pkg/dbctx"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/tracking"
	"github.com/habitloop/habitloop-backend/internal/types"
)

// ChallengeView is one catalog entry annotated with the caller's
// participation, when any.
type ChallengeView struct {
	Challenge *types.Challenge `json:"challenge"`
	Joined    bool             `json:"joined"`
	Status    tracking.Status  `json:"status,omitempty"`
	StartDate string           `json:"start_date,omitempty"`
}

type ChallengeService interface {
	List(ctx context.Context, userID uuid.UUID) ([]ChallengeView, error)
	Join(ctx context.Context, userID, challengeID uuid.UUID) (*types.UserChallenge, error)
	// ToggleDaily resolves the caller's enrollment in the challenge and
	// flips today's completion mark on it.
	ToggleDaily(ctx context.Context, userID, challengeID uuid.UUID) (*ToggleResult, error)
}

type challengeService struct {
	db          *gorm.DB
	challenges  repos.ChallengeRepo
	enrollments repos.UserChallengeRepo
	tracker     TrackerService
	invalidator *cache.Invalidator
	now         Clock
	log         *logger.Logger
}

func NewChallengeService(
	db *gorm.DB,
	challenges repos.ChallengeRepo,
	enrollments repos.UserChallengeRepo,
	tracker TrackerService,
	invalidator *cache.Invalidator,
	now Clock,
	baseLog *logger.Logger,
) ChallengeService {
	return &challengeService{
		db:          db,
		challenges:  challenges,
		enrollments: enrollments,
		tracker:     tracker,
		invalidator: invalidator,
		now:         now,
		log:         baseLog.With("service", "ChallengeService"),
	}
}

func (cs *challengeService) List(ctx context.Context, userID uuid.UUID) ([]ChallengeView, error) {
	dbc := dbctx.Context{Ctx: ctx}
	catalog, err := cs.challenges.List(dbc)
	if err != nil {
		return nil, err
	}
	enrollments, err := cs.enrollments.GetForUser(dbc, userID, nil)
	if err != nil {
		return nil, err
	}

	byChallenge := make(map[uuid.UUID]*types.UserChallenge, len(enrollments))
	for _, uc := range enrollments {
		byChallenge[uc.ChallengeID] = uc
	}

	views := make([]ChallengeView, 0, len(catalog))
	for _, c := range catalog {
		view := ChallengeView{Challenge: c}
		if uc, ok := byChallenge[c.ID]; ok {
			view.Joined = true
			view.Status = uc.Status
			view.StartDate = tracking.FormatDate(uc.StartDate)
		}
		views = append(views, view)
	}
	return views, nil
}

func (cs *challengeService) Join(ctx context.Context, userID, challengeID uuid.UUID) (*types.UserChallenge, error) {
	dbc := dbctx.Context{Ctx: ctx}
	challenge, err := cs.challenges.GetByID(dbc, challengeID)
	if err != nil {
		return nil, err
	}

	enrollment := &types.UserChallenge{
		ID:          uuid.New(),
		UserID:      userID,
		ChallengeID: challenge.ID,
		StartDate:   tracking.DateOf(cs.now()),
		Status:      tracking.StatusInProgress,
	}
	if err := cs.enrollments.Create(dbc, enrollment); err != nil {
		return nil, err
	}
	enrollment.Challenge = challenge

	cs.invalidator.User(ctx, userID)
	cs.log.Info("Challenge joined", "challenge_id", challengeID, "user_id", userID)
	return enrollment, nil
}

func (cs *challengeService) ToggleDaily(ctx context.Context, userID, challengeID uuid.UUID) (*ToggleResult, error) {
	enrollment, err := cs.enrollments.GetByUserAndChallenge(dbctx.Context{Ctx: ctx}, userID, challengeID)
	if err != nil {
		return nil, err
	}
	return cs.tracker.Toggle(ctx, userID, tracking.KindChallenge, enrollment.ID)
}
