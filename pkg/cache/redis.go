package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a RedisCache.
type RedisConfig struct {
	// Addr is "host:port" or a redis:// URL.
	Addr string

	// Prefix is prepended to every key (default "maskcompo:").
	Prefix string

	// RetryDelay is the first backoff step for transient failures
	// (default 100ms).
	RetryDelay time.Duration
}

// RedisCache shares rendered artifacts between server replicas.
type RedisCache struct {
	client *redis.Client
	prefix string
	delay  time.Duration
}

// NewRedisCache connects to redis and checks the connection with a PING.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	opts, err := redisOptions(cfg.Addr)
	if err != nil {
		return nil, err
	}
	c := &RedisCache{
		client: redis.NewClient(opts),
		prefix: cfg.Prefix,
		delay:  cfg.RetryDelay,
	}
	if c.prefix == "" {
		c.prefix = "maskcompo:"
	}
	if c.delay <= 0 {
		c.delay = 100 * time.Millisecond
	}

	if err := c.client.Ping(ctx).Err(); err != nil {
		_ = c.client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrBackend, opts.Addr, err)
	}
	return c, nil
}

func redisOptions(addr string) (*redis.Options, error) {
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opts, nil
	}
	if addr == "" {
		addr = "localhost:6379"
	}
	return &redis.Options{Addr: addr}, nil
}

// Get retrieves a value from redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	var hit bool
	err := RetryWithBackoff(ctx, c.delay, func() error {
		v, err := c.client.Get(ctx, c.prefix+key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			return nil
		case err != nil:
			return transient(err)
		}
		data, hit = v, true
		return nil
	})
	return data, hit, err
}

// Set stores a value in redis. A ttl of zero never expires.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return RetryWithBackoff(ctx, c.delay, func() error {
		return transient(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
	})
}

// Delete removes a value from redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return transient(c.client.Del(ctx, c.prefix+key).Err())
}

// Close closes the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// transient marks connection-level failures as retryable. Server replies
// such as WRONGTYPE are returned as is.
func transient(err error) error {
	if err == nil {
		return nil
	}
	var rerr redis.Error
	if errors.As(err, &rerr) {
		return err
	}
	return Retryable(fmt.Errorf("%w: %v", ErrBackend, err))
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
