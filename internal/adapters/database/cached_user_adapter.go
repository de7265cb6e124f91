package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/domain/providers"
	"github.com/classpulse/backend/internal/domain/repositories"
	"github.com/classpulse/backend/internal/infrastructure/observability"
	"github.com/rs/zerolog/log"
)

// CachedUserAdapter wraps a UserRepository with a read-through cache for batch
// lookups. Users are never updated after signup, so entries need no
// invalidation. Cached entries omit the password hash, which is why only
// GetByIDs (used for reference expansion) goes through the cache.
type CachedUserAdapter struct {
	repositories.UserRepository
	cache   providers.CacheProvider
	ttl     int
	metrics *observability.Metrics
}

// NewCachedUserAdapter creates a new cached user adapter
func NewCachedUserAdapter(adapter repositories.UserRepository, cache providers.CacheProvider, ttlSeconds int, metrics *observability.Metrics) repositories.UserRepository {
	if ttlSeconds <= 0 {
		ttlSeconds = 300
	}
	return &CachedUserAdapter{
		UserRepository: adapter,
		cache:          cache,
		ttl:            ttlSeconds,
		metrics:        metrics,
	}
}

func userCacheKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

// GetByIDs serves what it can from cache and loads the rest from the store.
func (a *CachedUserAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.User, error) {
	if len(ids) == 0 {
		return []*entities.User{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = userCacheKey(id)
	}

	cached, err := a.cache.GetMulti(ctx, keys)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("user cache unavailable, reading from store")
		cached = nil
	}

	users := make([]*entities.User, 0, len(ids))
	missing := make([]string, 0)
	for i, id := range ids {
		if data, ok := cached[keys[i]]; ok {
			var user entities.User
			if err := json.Unmarshal(data, &user); err == nil {
				users = append(users, &user)
				continue
			}
		}
		missing = append(missing, id)
	}

	observability.RecordCacheLookup(ctx, a.metrics, "users", len(users), len(missing))

	if len(missing) == 0 {
		return users, nil
	}

	loaded, err := a.UserRepository.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	for _, user := range loaded {
		data, err := json.Marshal(user)
		if err != nil {
			continue
		}
		if err := a.cache.Set(ctx, userCacheKey(user.ID), data, a.ttl); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("user_id", user.ID).Msg("failed to cache user")
		}
	}

	return append(users, loaded...), nil
}
