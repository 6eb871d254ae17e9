package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Insper-Code/site-code/internal/domain"
)

const announcementListKey = "announcements:list"

// RedisAnnouncementCache caches the announcement list in Redis.
// A cache miss is reported as (nil, nil); callers fall through to the
// repository and repopulate.
type RedisAnnouncementCache struct {
	client *redis.Client
}

// NewRedisAnnouncementCache creates a new RedisAnnouncementCache
func NewRedisAnnouncementCache(client *redis.Client) *RedisAnnouncementCache {
	return &RedisAnnouncementCache{client: client}
}

// GetList returns the cached announcement list, or nil on a miss
func (c *RedisAnnouncementCache) GetList(ctx context.Context) ([]*domain.Announcement, error) {
	data, err := c.client.Get(ctx, announcementListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var list []*domain.Announcement
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the announcement list with the given TTL
func (c *RedisAnnouncementCache) SetList(ctx context.Context, list []*domain.Announcement, ttl time.Duration) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, announcementListKey, data, ttl).Err()
}

// Invalidate removes the cached list
func (c *RedisAnnouncementCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, announcementListKey).Err()
}
