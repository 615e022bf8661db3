package analytics

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/richxcame/kyc-nova/pkg/redis"
)

// KeyPrefix namespaces every analytics key
const KeyPrefix = "kyc:analytics:"

// dailyTTL keeps yesterday's key around long enough to read across midnight
const dailyTTL = 48 * time.Hour

// RedisStore keeps counters in Redis so every replica reports the same figures
type RedisStore struct {
	client goredis.Cmdable
	now    func() time.Time
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(client goredis.Cmdable) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func counterKey(c Counter) string {
	return KeyPrefix + string(c)
}

func todayKey(t time.Time) string {
	return KeyPrefix + "today:" + dayKey(t)
}

// Add increments counter by delta. CounterTotal also feeds the daily key.
func (r *RedisStore) Add(ctx context.Context, counter Counter, delta int64) error {
	if _, err := redis.IncrementByWithTTL(ctx, r.client, counterKey(counter), delta, 0); err != nil {
		return fmt.Errorf("increment %s: %w", counter, err)
	}
	if counter == CounterTotal {
		if _, err := redis.IncrementByWithTTL(ctx, r.client, todayKey(r.now()), delta, dailyTTL); err != nil {
			return fmt.Errorf("increment today: %w", err)
		}
	}
	return nil
}

// Snapshot reads every counter. Missing keys read as zero.
func (r *RedisStore) Snapshot(ctx context.Context) (Counts, error) {
	var c Counts
	fields := []struct {
		key string
		dst *int64
	}{
		{counterKey(CounterTotal), &c.Total},
		{todayKey(r.now()), &c.Today},
		{counterKey(CounterCompleted), &c.Completed},
		{counterKey(CounterFlagged), &c.Flagged},
		{counterKey(CounterDocuments), &c.Documents},
		{counterKey(CounterInteractions), &c.Interactions},
		{counterKey(CounterDurationMs), &c.DurationMs},
	}

	for _, f := range fields {
		v, err := redis.GetInt64(ctx, r.client, f.key)
		if err != nil {
			return Counts{}, fmt.Errorf("read %s: %w", f.key, err)
		}
		*f.dst = v
	}
	return c, nil
}
