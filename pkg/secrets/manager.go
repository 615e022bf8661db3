package secrets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/richxcame/kyc-nova/pkg/logger"
	"go.uber.org/zap"
)

const (
	defaultCacheTTL = 5 * time.Minute
	// singleValueKey holds payloads that are not JSON objects
	singleValueKey = "value"
)

// Secret is a resolved payload
type Secret map[string]string

// Config selects and configures the store
type Config struct {
	Provider ProviderType
	CacheTTL time.Duration
	AWS      AWSConfig
	File     FileConfig
}

// Manager resolves references to values
type Manager interface {
	GetString(ctx context.Context, ref Reference) (string, error)
	Close() error
}

// store fetches the payload at a reference
type store interface {
	Fetch(ctx context.Context, ref Reference) (Secret, error)
}

type cacheEntry struct {
	secret    Secret
	expiresAt time.Time
}

// CachingManager resolves references against one store and caches payloads per path and version
type CachingManager struct {
	provider ProviderType
	store    store
	ttl      time.Duration
	now      func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

var _ Manager = (*CachingManager)(nil)

// NewManager creates a manager for cfg.Provider
func NewManager(ctx context.Context, cfg Config) (*CachingManager, error) {
	var s store
	var err error

	switch cfg.Provider {
	case ProviderAWS:
		s, err = newAWSStore(ctx, cfg.AWS)
	case ProviderFile:
		s, err = newFileStore(cfg.File)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return newCachingManager(cfg.Provider, s, cfg.CacheTTL), nil
}

func newCachingManager(provider ProviderType, s store, ttl time.Duration) *CachingManager {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachingManager{
		provider: provider,
		store:    s,
		ttl:      ttl,
		now:      time.Now,
		cache:    make(map[string]cacheEntry),
	}
}

// GetString returns the value at ref.Key, or the single value when ref has no key
func (m *CachingManager) GetString(ctx context.Context, ref Reference) (string, error) {
	if ref.Provider != m.provider {
		return "", fmt.Errorf("secrets: reference provider %q does not match %q", ref.Provider, m.provider)
	}

	secret, err := m.fetch(ctx, ref)
	if err != nil {
		logger.WithContext(ctx).Warn("Secret fetch failed",
			zap.String("provider", string(ref.Provider)),
			zap.String("path", ref.Path),
			zap.Error(err),
		)
		return "", err
	}

	key := ref.Key
	if key == "" {
		key = singleValueKey
	}
	if v := secret[key]; v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s in %s", ErrKeyNotFound, key, ref.Path)
}

func (m *CachingManager) fetch(ctx context.Context, ref Reference) (Secret, error) {
	payloadRef := Reference{Provider: ref.Provider, Path: ref.Path, Version: ref.Version}
	cacheKey := payloadRef.String()

	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.cache[cacheKey]; ok && m.now().Before(e.expiresAt) {
		return e.secret, nil
	}

	secret, err := m.store.Fetch(ctx, payloadRef)
	if err != nil {
		return nil, err
	}

	m.cache[cacheKey] = cacheEntry{secret: secret, expiresAt: m.now().Add(m.ttl)}
	logger.WithContext(ctx).Info("Secret fetched",
		zap.String("provider", string(ref.Provider)),
		zap.String("path", ref.Path),
		zap.Int("keys", len(secret)),
	)
	return secret, nil
}

// Close drops cached payloads
func (m *CachingManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = make(map[string]cacheEntry)
	return nil
}

// Resolve parses raw and returns the value it points at
func Resolve(ctx context.Context, m Manager, raw string) (string, error) {
	ref, err := ParseReference(raw)
	if err != nil {
		return "", err
	}
	return m.GetString(ctx, ref)
}
