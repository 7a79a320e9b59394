// Package cache provides a best-effort Redis cache for resolved profiles.
// Errors never surface to callers: a broken cache degrades to store reads.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"socialnet/internal/logging"
	"socialnet/internal/server/models"
)

type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

func New(client *redis.Client, ttl time.Duration, logger logging.Logger) *ProfileCache {
	return &ProfileCache{
		client: client,
		ttl:    ttl,
		logger: logger.With("module", "profile_cache"),
	}
}

func profileKey(userID string) string {
	return "profile:" + userID
}

// Get returns the cached profile for userID, or ok=false on a miss or any
// cache failure.
func (c *ProfileCache) Get(ctx context.Context, userID string) (*models.Profile, bool) {
	data, err := c.client.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn(ctx, "cache read failed", "error", err)
		}
		return nil, false
	}

	profile := &models.Profile{}
	if err := json.Unmarshal(data, profile); err != nil {
		c.logger.Warn(ctx, "cache entry corrupt", "error", err)
		return nil, false
	}

	return profile, true
}

// Set stores the profile under its user ID for the configured TTL.
func (c *ProfileCache) Set(ctx context.Context, profile *models.Profile) {
	data, err := json.Marshal(profile)
	if err != nil {
		c.logger.Warn(ctx, "cache marshal failed", "error", err)
		return
	}

	if err := c.client.Set(ctx, profileKey(profile.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn(ctx, "cache write failed", "error", err)
	}
}

// Invalidate drops the cached profiles of the given users. Used by follow
// mutations, which change both endpoints' follower/following sets.
func (c *ProfileCache) Invalidate(ctx context.Context, userIDs ...string) {
	if len(userIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, profileKey(id))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn(ctx, "cache invalidation failed", "error", err)
	}
}
