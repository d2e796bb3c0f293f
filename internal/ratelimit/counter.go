package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "ratelimit:"
	opTimeout = 2 * time.Second
)

var _ httprate.LimitCounter = (*RedisCounter)(nil)

// RedisCounter stores httprate sliding-window counters in Redis so that
// every replica of the service shares the same per-client budget.
type RedisCounter struct {
	client       *redis.Client
	windowLength time.Duration
}

// NewRedisCounter constructs a RedisCounter on top of an existing client.
func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client, windowLength: time.Minute}
}

// Config is called once by httprate with the limiter settings.
func (c *RedisCounter) Config(_ int, windowLength time.Duration) {
	c.windowLength = windowLength
}

// Increment adds one hit to key in the current window.
func (c *RedisCounter) Increment(key string, currentWindow time.Time) error {
	return c.IncrementBy(key, currentWindow, 1)
}

// IncrementBy adds amount hits to key in the current window. Keys expire after
// three windows, long enough to serve as the previous window of the next one.
func (c *RedisCounter) IncrementBy(key string, currentWindow time.Time, amount int) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	k := c.key(key, currentWindow)

	pipe := c.client.TxPipeline()
	pipe.IncrBy(ctx, k, int64(amount))
	pipe.Expire(ctx, k, 3*c.windowLength)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("incrementing rate limit counter %s: %w", k, err)
	}

	return nil
}

// Get returns the hit counts for the current and previous windows.
func (c *RedisCounter) Get(key string, currentWindow, previousWindow time.Time) (int, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	vals, err := c.client.MGet(ctx, c.key(key, currentWindow), c.key(key, previousWindow)).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("reading rate limit counters for %s: %w", key, err)
	}

	curr, err := parseCount(vals[0])
	if err != nil {
		return 0, 0, err
	}
	prev, err := parseCount(vals[1])
	if err != nil {
		return 0, 0, err
	}

	return curr, prev, nil
}

// key returns the Redis key for a client key and window start.
func (c *RedisCounter) key(key string, window time.Time) string {
	return keyPrefix + strings.ToLower(key) + ":" + strconv.FormatInt(window.Unix(), 10)
}

// parseCount converts an MGET value; a missing key counts as zero.
func parseCount(v any) (int, error) {
	if v == nil {
		return 0, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected rate limit counter type %T", v)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parsing rate limit counter %q: %w", s, err)
	}
	return n, nil
}
