// Package cache fronts user lookups with Redis when it is configured.
package cache

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"campus_market/internal/models"
)

const UserCacheTTL = 5 * time.Minute

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type UserLoader interface {
	UserByID(ctx context.Context, id string) (models.User, error)
}

// UserCache reads users from Redis, falling back to the loader on a miss.
// With a nil Redis client every lookup goes to the loader.
type UserCache struct {
	redis *redis.Client
	users UserLoader
	ttl   time.Duration
}

func NewUserCache(client *redis.Client, users UserLoader) *UserCache {
	return &UserCache{redis: client, users: users, ttl: UserCacheTTL}
}

func userKey(id string) string {
	return "user:" + id
}

func (c *UserCache) Get(ctx context.Context, id string) (models.PublicUser, error) {
	if c.redis != nil {
		data, err := c.redis.Get(ctx, userKey(id)).Bytes()
		if err == nil {
			var user models.PublicUser
			if json.Unmarshal(data, &user) == nil {
				return user, nil
			}
		} else if err != redis.Nil {
			zap.S().Warnf("⚠️ user cache read failed for %s: %v", id, err)
		}
	}

	user, err := c.users.UserByID(ctx, id)
	if err != nil {
		return models.PublicUser{}, err
	}
	public := user.Public()

	if c.redis != nil {
		if data, err := json.Marshal(public); err == nil {
			if err := c.redis.Set(ctx, userKey(id), data, c.ttl).Err(); err != nil {
				zap.S().Warnf("⚠️ user cache write failed for %s: %v", id, err)
			}
		}
	}
	return public, nil
}

func (c *UserCache) Invalidate(ctx context.Context, id string) {
	if c.redis == nil {
		return
	}
	c.redis.Del(ctx, userKey(id))
}
