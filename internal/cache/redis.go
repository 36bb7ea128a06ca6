package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

type Client struct {
	rdb         *redis.Client
	maxRequests int
	limitWindow time.Duration
}

type Option func(*Client)

// WithRateLimit sets how many requests a client may make per window.
func WithRateLimit(maxRequests int, window time.Duration) Option {
	return func(c *Client) {
		c.maxRequests = maxRequests
		c.limitWindow = window
	}
}

func NewClient(ctx context.Context, addr string, opts ...Option) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	c := &Client{
		rdb:         rdb,
		maxRequests: 10,
		limitWindow: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// IsRateLimited counts a request for key in the current window. The window
// starts with its first request: SETNX creates the counter with the window as
// its TTL and INCR keeps that TTL. Both run in one MULTI so the counter never
// exists without an expiry. Redis errors let the request through.
func (c *Client) IsRateLimited(ctx context.Context, key string) bool {
	if c.maxRequests <= 0 {
		return false
	}
	key = fmt.Sprintf("ratelimit:%s", key)

	var incr *redis.IntCmd
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, c.limitWindow)
		incr = pipe.Incr(ctx, key)
		return nil
	})
	// SETNX on an existing counter replies nil
	if err != nil && !errors.Is(err, redis.Nil) {
		return false
	}

	count, err := incr.Result()
	if err != nil {
		return false
	}
	return count > int64(c.maxRequests)
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return data, err
}

func (c *Client) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, data, ttl).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
