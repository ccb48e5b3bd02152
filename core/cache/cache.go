package cache

import (
	"context"
	"encoding/json"
	"time"

	"gradinvite/core/config"
	"gradinvite/core/constants"
	"gradinvite/core/logger"

	"github.com/redis/go-redis/v9"
)

const inviteDetailsTTL = 5 * time.Minute

// Cache is a read-through cache for the invite-details-by-token join.
// A nil *Cache is valid and disables caching.
type Cache struct {
	client *redis.Client
}

func New(cfg config.RedisConfig) *Cache {
	if !cfg.Enabled() {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Cache{client: client}
}

func (c *Cache) GetInviteDetails(ctx context.Context, token string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, constants.RedisKeyInviteDetails+token).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Error("Cache:GetInviteDetails:Error:", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Error("Cache:GetInviteDetails:Unmarshal:Error:", err)
		return false
	}
	return true
}

func (c *Cache) SetInviteDetails(ctx context.Context, token string, value any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Error("Cache:SetInviteDetails:Marshal:Error:", err)
		return
	}
	if err := c.client.Set(ctx, constants.RedisKeyInviteDetails+token, raw, inviteDetailsTTL).Err(); err != nil {
		logger.Error("Cache:SetInviteDetails:Error:", err)
	}
}

func (c *Cache) InvalidateInviteDetails(ctx context.Context, token string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, constants.RedisKeyInviteDetails+token).Err(); err != nil {
		logger.Error("Cache:InvalidateInviteDetails:Error:", err)
	}
}
