package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	projectionPrefix = "projection:"
	// Kept outside the projection prefix so flushing every view keeps it.
	generationKey = "projection_generation"
)

// RedisCache stores serialized view projections. Entries are dropped on
// every change notification; the TTL only bounds staleness if one is lost.
// Every drop bumps a generation counter, and SetIfGeneration refuses to
// write a view that was loaded before the latest drop.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) ProjectionKey(view string, parts ...string) string {
	return projectionPrefix + strings.Join(append([]string{view}, parts...), ":")
}

// Get decodes the cached value into dest and reports whether it was found.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, payload, c.TTL).Err()
}

// Generation returns the current invalidation counter.
func (c *RedisCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.Client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetIfGeneration stores value only while the generation still equals
// generation. It reports whether the value was written.
func (c *RedisCache) SetIfGeneration(ctx context.Context, key string, value interface{}, generation int64) (bool, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	written := false
	err = c.Client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, c.TTL)
			return nil
		})
		if err == nil {
			written = true
		}
		return err
	}, generationKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return written, nil
}

func (c *RedisCache) bump(ctx context.Context) error {
	return c.Client.Incr(ctx, generationKey).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.bump(ctx); err != nil {
		return err
	}
	return c.Client.Del(ctx, keys...).Err()
}

func (c *RedisCache) DeleteMatching(ctx context.Context, pattern string) error {
	if err := c.bump(ctx); err != nil {
		return err
	}
	var cursor uint64
	for {
		keys, next, err := c.Client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.Client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// AttemptLimiter counts PIN entries per client inside a window. A correct PIN
// resets the counter.
type AttemptLimiter struct {
	Client *redis.Client
	Window time.Duration
	Max    int64
}

func NewAttemptLimiter(client *redis.Client, window time.Duration, max int64) *AttemptLimiter {
	return &AttemptLimiter{Client: client, Window: window, Max: max}
}

func (l *AttemptLimiter) attemptsKey(key string) string {
	return "pin_attempts:" + key
}

// Attempt counts one PIN entry and reports whether it may be checked. The
// INCR result is the gate, so concurrent entries cannot all slip under Max.
// The window starts at the first attempt.
func (l *AttemptLimiter) Attempt(ctx context.Context, key string) (bool, error) {
	k := l.attemptsKey(key)
	count, err := l.Client.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.Client.Expire(ctx, k, l.Window).Err(); err != nil {
			return false, err
		}
	}
	return count <= l.Max, nil
}

func (l *AttemptLimiter) Reset(ctx context.Context, key string) error {
	return l.Client.Del(ctx, l.attemptsKey(key)).Err()
}
