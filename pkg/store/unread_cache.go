// Package store holds the Redis-backed caches fronting the notification
// database. Caches here are strictly optional: every method degrades to a
// miss on Redis failure so the database remains the source of truth.
package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// UnreadCache caches per-user unread counters. Invalidated on every send
// (a broadcast invalidates everyone, so the whole keyspace version is
// bumped) and on every mark-read (single user).
type UnreadCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewUnreadCache(rdb *redis.Client, ttl time.Duration) *UnreadCache {
	return &UnreadCache{rdb: rdb, ttl: ttl}
}

const unreadVersionKey = "notif:unread:version"

func (c *UnreadCache) key(ctx context.Context, userID string) string {
	version, err := c.rdb.Get(ctx, unreadVersionKey).Result()
	if err != nil {
		version = "0"
	}
	return fmt.Sprintf("notif:unread:v%s:%s", version, userID)
}

// Get returns (count, true) on a hit, (0, false) otherwise.
func (c *UnreadCache) Get(ctx context.Context, userID string) (int64, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}
	val, err := c.rdb.Get(ctx, c.key(ctx, userID)).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *UnreadCache) Set(ctx context.Context, userID string, count int64) {
	if c == nil || c.rdb == nil {
		return
	}
	// Best effort: a failed write only costs a future cache miss.
	c.rdb.Set(ctx, c.key(ctx, userID), count, c.ttl)
}

// InvalidateUser drops a single user's cached counter (mark-read, targeted send).
func (c *UnreadCache) InvalidateUser(ctx context.Context, userID string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, c.key(ctx, userID))
}

// InvalidateAll bumps the keyspace version, orphaning every cached counter.
// Used on broadcast sends where each user's count changed. Orphaned keys
// expire via TTL.
func (c *UnreadCache) InvalidateAll(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Incr(ctx, unreadVersionKey)
}
