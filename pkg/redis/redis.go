// Package redis connects to Redis and holds the counter helpers the
// analytics store builds on.
package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/richxcame/kyc-nova/pkg/config"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"go.uber.org/zap"
)

const (
	connectAttempts = 3
	pingTimeout     = 5 * time.Second
	retryBackoff    = 500 * time.Millisecond
)

// transientMarkers identify network errors worth another ping at startup
var transientMarkers = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"no such host",
	"network is unreachable",
	"temporary failure",
	"i/o timeout",
	"server closed",
	"unexpected eof",
	"pool exhausted",
}

// Client wraps the Redis client
type Client struct {
	*redis.Client
}

// NewRedisClient connects and pings, retrying transient network errors with a linear backoff
func NewRedisClient(cfg *config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	err := ping(client)
	for attempt := 1; err != nil && attempt < connectAttempts && isTransient(err); attempt++ {
		logger.Warn("Redis not reachable, retrying",
			zap.String("addr", cfg.RedisAddr()),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		time.Sleep(time.Duration(attempt) * retryBackoff)
		err = ping(client)
	}
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to connect to redis at %s: %w", cfg.RedisAddr(), err)
	}
	return &Client{Client: client}, nil
}

func ping(client *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return client.Ping(ctx).Err()
}

func isTransient(err error) bool {
	switch {
	case err == nil,
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, redis.Nil):
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IncrementByWithTTL adds delta to key and, for a positive ttl, refreshes its
// expiry in the same MULTI/EXEC.
func IncrementByWithTTL(ctx context.Context, c redis.Cmdable, key string, delta int64, ttl time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := c.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.IncrBy(ctx, key, delta)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// GetInt64 reads an integer counter; a missing key reads as zero
func GetInt64(ctx context.Context, c redis.Cmdable, key string) (int64, error) {
	v, err := c.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}
