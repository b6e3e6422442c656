package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/devconnect/internal/application/service"
	"github.com/khoahotran/devconnect/internal/domain/profile"
	"github.com/khoahotran/devconnect/pkg/logger"
)

const profileListKey = "profiles:all"

type redisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisProfileCache(client *redis.Client, ttl time.Duration, log logger.Logger) service.ProfileCache {
	return &redisProfileCache{client: client, ttl: ttl, logger: log}
}

func (c *redisProfileCache) GetProfileList(ctx context.Context) ([]*profile.Profile, bool) {
	payload, err := c.client.Get(ctx, profileListKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("profile list cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var profiles []*profile.Profile
	if err := json.Unmarshal(payload, &profiles); err != nil {
		c.logger.Warn("profile list cache payload corrupt", zap.Error(err))
		return nil, false
	}
	return profiles, true
}

func (c *redisProfileCache) SetProfileList(ctx context.Context, profiles []*profile.Profile) {
	payload, err := json.Marshal(profiles)
	if err != nil {
		c.logger.Warn("failed to marshal profile list for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, profileListKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("profile list cache write failed", zap.Error(err))
	}
}

func (c *redisProfileCache) InvalidateProfileList(ctx context.Context) {
	if err := c.client.Del(ctx, profileListKey).Err(); err != nil {
		c.logger.Warn("profile list cache invalidation failed", zap.Error(err))
	}
}
