// Package health builds the dependency checks reported by /api/health.
package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

// Checker reports the health of one dependency
type Checker func() error

// CheckerConfig configures a checker
type CheckerConfig struct {
	Timeout time.Duration
}

// DefaultCheckerConfig returns the default checker configuration
func DefaultCheckerConfig() CheckerConfig {
	return CheckerConfig{Timeout: 2 * time.Second}
}

// RedisChecker pings the analytics and rate limit store
func RedisChecker(client redis.UniversalClient) Checker {
	return RedisCheckerWithConfig(client, DefaultCheckerConfig())
}

// RedisCheckerWithConfig pings Redis with a custom timeout
func RedisCheckerWithConfig(client redis.UniversalClient, config CheckerConfig) Checker {
	return ContextChecker(func(ctx context.Context) error {
		if client == nil {
			return errors.New("redis client is nil")
		}
		return client.Ping(ctx).Err()
	}, config.Timeout)
}

// NATSChecker reports whether the verification event connection is up
func NATSChecker(conn *nats.Conn) Checker {
	return func() error {
		if conn == nil {
			return errors.New("nats connection is nil")
		}
		if status := conn.Status(); status != nats.CONNECTED {
			return fmt.Errorf("nats connection status: %s", status)
		}
		return nil
	}
}

// ContextChecker adapts a context-aware probe, such as an AWS credential check, to a Checker
func ContextChecker(probe func(ctx context.Context) error, timeout time.Duration) Checker {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return probe(ctx)
	}
}

// AsyncChecker bounds a checker that does not accept a context
func AsyncChecker(checker Checker, timeout time.Duration) Checker {
	return func() error {
		done := make(chan error, 1)
		go func() {
			done <- checker()
		}()

		select {
		case err := <-done:
			return err
		case <-time.After(timeout):
			return fmt.Errorf("health check timeout after %s", timeout)
		}
	}
}

// CachedChecker memoizes a checker result for a TTL.
// Used for checks that cost an AWS API call.
type CachedChecker struct {
	checker  Checker
	cacheTTL time.Duration
	now      func() time.Time

	mu        sync.Mutex
	lastCheck time.Time
	lastErr   error
}

// NewCachedChecker wraps checker with a result cache
func NewCachedChecker(checker Checker, ttl time.Duration) *CachedChecker {
	return &CachedChecker{checker: checker, cacheTTL: ttl, now: time.Now}
}

// Check returns the cached result or runs the checker when the cache expired
func (c *CachedChecker) Check() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !c.lastCheck.IsZero() && now.Sub(c.lastCheck) < c.cacheTTL {
		return c.lastErr
	}

	c.lastErr = c.checker()
	c.lastCheck = now
	return c.lastErr
}
