package health

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCheckerConfig(t *testing.T) {
	assert.Equal(t, 2*time.Second, DefaultCheckerConfig().Timeout)
}

// ==================== Redis ====================

func TestRedisChecker(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectPing().SetVal("PONG")

		assert.NoError(t, RedisChecker(client)())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ping fails", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectPing().SetErr(errors.New("connection refused"))

		assert.EqualError(t, RedisChecker(client)(), "connection refused")
	})

	t.Run("nil client", func(t *testing.T) {
		assert.EqualError(t, RedisCheckerWithConfig(nil, DefaultCheckerConfig())(), "redis client is nil")
	})
}

// ==================== NATS ====================

func TestNATSChecker_NilConn(t *testing.T) {
	assert.EqualError(t, NATSChecker(nil)(), "nats connection is nil")
}

// ==================== Context ====================

func TestContextChecker(t *testing.T) {
	var deadline time.Time
	check := ContextChecker(func(ctx context.Context) error {
		deadline, _ = ctx.Deadline()
		return nil
	}, time.Second)

	require.NoError(t, check())
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)

	failing := ContextChecker(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, 10*time.Millisecond)
	assert.ErrorIs(t, failing(), context.DeadlineExceeded)
}

// ==================== Async ====================

func TestAsyncChecker(t *testing.T) {
	assert.NoError(t, AsyncChecker(func() error { return nil }, time.Second)())
	assert.EqualError(t, AsyncChecker(func() error { return errors.New("down") }, time.Second)(), "down")

	slow := func() error {
		time.Sleep(200 * time.Millisecond)
		return nil
	}
	err := AsyncChecker(slow, 10*time.Millisecond)()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "health check timeout")
}

// ==================== Cached ====================

func TestCachedChecker(t *testing.T) {
	var calls int32
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	cached := NewCachedChecker(func() error {
		atomic.AddInt32(&calls, 1)
		return errors.New("credentials rejected")
	}, time.Minute)
	cached.now = func() time.Time { return now }

	assert.EqualError(t, cached.Check(), "credentials rejected")
	assert.EqualError(t, cached.Check(), "credentials rejected", "errors are cached too")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	now = now.Add(time.Minute)
	assert.Error(t, cached.Check())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "expired entry runs the check again")
}

func TestCachedChecker_Concurrent(t *testing.T) {
	var calls int32
	cached := NewCachedChecker(func() error {
		atomic.AddInt32(&calls, 1)
		return nil
	}, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = cached.Check()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
