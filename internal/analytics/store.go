package analytics

import (
	"context"
	"sync"
	"time"
)

// Store persists analytics counters
type Store interface {
	Add(ctx context.Context, counter Counter, delta int64) error
	Snapshot(ctx context.Context) (Counts, error)
}

// Ensure both stores implement Store
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)

// MemoryStore keeps counters in process memory, for deployments without Redis
type MemoryStore struct {
	mu     sync.Mutex
	counts Counts
	day    string
	now    func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Add increments counter by delta. CounterTotal also feeds the daily count.
func (m *MemoryStore) Add(_ context.Context, counter Counter, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rollover()
	switch counter {
	case CounterTotal:
		m.counts.Total += delta
		m.counts.Today += delta
	case CounterCompleted:
		m.counts.Completed += delta
	case CounterFlagged:
		m.counts.Flagged += delta
	case CounterDocuments:
		m.counts.Documents += delta
	case CounterInteractions:
		m.counts.Interactions += delta
	case CounterDurationMs:
		m.counts.DurationMs += delta
	}
	return nil
}

// Snapshot returns a copy of the counters
func (m *MemoryStore) Snapshot(_ context.Context) (Counts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rollover()
	return m.counts, nil
}

func (m *MemoryStore) rollover() {
	day := dayKey(m.now())
	if m.day != day {
		m.day = day
		m.counts.Today = 0
	}
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
