package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// UnreadEntry is the result of an unread-count lookup. Generation is the
// recipient's invalidation counter at read time and must be passed back to
// Set, so a fill that raced with an invalidation is dropped.
type UnreadEntry struct {
	Count      int64
	Generation int64
	Hit        bool
}

// UnreadCache caches per-recipient unread notification counts.
// It is a read-through helper; Postgres stays the source of truth.
type UnreadCache interface {
	Get(ctx context.Context, recipientID uint) (UnreadEntry, error)
	Set(ctx context.Context, recipientID uint, count, generation int64) error
	Invalidate(ctx context.Context, recipientID uint) error
}

const (
	unreadKeyPrefix    = "notifications:unread:"
	unreadGenKeyPrefix = "notifications:unread-gen:"
)

// RedisUnreadCache implements UnreadCache on top of Redis
type RedisUnreadCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisUnreadCache creates a RedisUnreadCache with the given entry TTL
func NewRedisUnreadCache(rdb *redis.Client, ttl time.Duration) *RedisUnreadCache {
	return &RedisUnreadCache{rdb: rdb, ttl: ttl}
}

func unreadKey(recipientID uint) string {
	return fmt.Sprintf("%s%d", unreadKeyPrefix, recipientID)
}

func unreadGenKey(recipientID uint) string {
	return fmt.Sprintf("%s%d", unreadGenKeyPrefix, recipientID)
}

// Get reads the count and the generation in one round trip
func (c *RedisUnreadCache) Get(ctx context.Context, recipientID uint) (UnreadEntry, error) {
	vals, err := c.rdb.MGet(ctx, unreadKey(recipientID), unreadGenKey(recipientID)).Result()
	if err != nil {
		return UnreadEntry{}, err
	}

	var e UnreadEntry
	if e.Generation, _, err = parseCounter(vals[1]); err != nil {
		return UnreadEntry{}, fmt.Errorf("unread generation: %w", err)
	}
	if e.Count, e.Hit, err = parseCounter(vals[0]); err != nil {
		return UnreadEntry{}, fmt.Errorf("unread count: %w", err)
	}
	return e, nil
}

// Set stores count only if no Invalidate ran since generation was read
func (c *RedisUnreadCache) Set(ctx context.Context, recipientID uint, count, generation int64) error {
	genKey := unreadGenKey(recipientID)
	err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, unreadKey(recipientID), count, c.ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Invalidate drops the cached count and bumps the generation
func (c *RedisUnreadCache) Invalidate(ctx context.Context, recipientID uint) error {
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, unreadGenKey(recipientID))
		p.Del(ctx, unreadKey(recipientID))
		return nil
	})
	return err
}

func parseCounter(v any) (int64, bool, error) {
	s, ok := v.(string)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

type noopUnreadCache struct{}

// NewNoopUnreadCache returns an UnreadCache that never hits
func NewNoopUnreadCache() UnreadCache { return noopUnreadCache{} }

func (noopUnreadCache) Get(context.Context, uint) (UnreadEntry, error) { return UnreadEntry{}, nil }
func (noopUnreadCache) Set(context.Context, uint, int64, int64) error  { return nil }
func (noopUnreadCache) Invalidate(context.Context, uint) error         { return nil }
