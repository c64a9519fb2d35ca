package app

import (
	"github.com/habitloop/habitloop-backend/internal/clients/redis"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
)

type Clients struct {
	Cache redis.Cache
}

// wireClients connects the optional collaborators. Redis being down is not
// fatal; the app degrades to uncached reads.
func wireClients(log *logger.Logger) Clients {
	cacheClient, err := redis.NewCache(log)
	if err != nil {
		log.Warn("Redis unavailable, running without cache", "error", err)
		cacheClient = nil
	}
	return Clients{Cache: cacheClient}
}
