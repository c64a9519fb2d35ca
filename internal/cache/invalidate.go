package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/habitloop/habitloop-backend/internal/clients/redis"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
	"github.com/habitloop/habitloop-backend/internal/tracking"
)

// Invalidator drops derived-view cache entries after writes. Every method is
// best-effort: a cache backend failure is logged and swallowed so it can
// never block the write that triggered it.
type Invalidator struct {
	cache redis.Cache
	log   *logger.Logger
}

func NewInvalidator(c redis.Cache, log *logger.Logger) *Invalidator {
	return &Invalidator{cache: c, log: log.With("service", "CacheInvalidator")}
}

// User drops every derived view scoped to the user.
func (inv *Invalidator) User(ctx context.Context, userID uuid.UUID) {
	if inv == nil || inv.cache == nil {
		return
	}
	if err := inv.cache.Del(ctx, UserKeys(userID)...); err != nil {
		inv.log.Warn("Failed to invalidate user cache", "user_id", userID, "error", err)
	}
}

// Entity drops the entity's streak key plus the owner's derived views.
func (inv *Invalidator) Entity(ctx context.Context, kind tracking.Kind, entityID, userID uuid.UUID) {
	if inv == nil || inv.cache == nil {
		return
	}
	if err := inv.cache.Del(ctx, StreakKey(kind, entityID)); err != nil {
		inv.log.Warn("Failed to invalidate streak cache", "entity_id", entityID, "error", err)
	}
	inv.User(ctx, userID)
}
