// Package ratelimit implements a Redis backed token bucket shared by every API replica.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/richxcame/kyc-nova/pkg/config"
)

// tokenBucket refills at ARGV[2] tokens per second up to ARGV[1] and takes one token.
// It returns {allowed, remaining, retry_after_seconds, reset_after_seconds}.
const tokenBucket = `
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens = tonumber(state[1])
local ts = tonumber(state[2])
if tokens == nil or ts == nil then
  tokens = capacity
  ts = now
end

tokens = math.min(capacity, tokens + math.max(0, now - ts) * rate)

local allowed = 0
local retry = 0
if tokens >= 1 then
  allowed = 1
  tokens = tokens - 1
else
  retry = (1 - tokens) / rate
end

redis.call('HSET', KEYS[1], 'tokens', tostring(tokens), 'ts', tostring(now))
redis.call('PEXPIRE', KEYS[1], ttl)

return {allowed, math.floor(tokens), tostring(retry), tostring((capacity - tokens) / rate)}
`

// Rule is the budget for one endpoint: Limit requests per Window plus Burst extra
type Rule struct {
	Limit  int
	Burst  int
	Window time.Duration
}

// Result is the outcome of one Allow call
type Result struct {
	Allowed     bool
	Remaining   int
	RetryAfter  time.Duration
	Limit       int
	Window      time.Duration
	ResetAfter  time.Duration
	IdentityKey string
	EndpointKey string
}

// Limiter checks requests against per-endpoint rules
type Limiter struct {
	client redis.Scripter
	cfg    config.RateLimitConfig
	script *redis.Script
	now    func() time.Time
}

// NewLimiter creates a limiter storing buckets in client
func NewLimiter(client redis.Scripter, cfg config.RateLimitConfig) *Limiter {
	return &Limiter{
		client: client,
		cfg:    cfg,
		script: redis.NewScript(tokenBucket),
		now:    time.Now,
	}
}

// WithNow replaces the clock
func (l *Limiter) WithNow(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Enabled reports whether requests are checked at all
func (l *Limiter) Enabled() bool {
	return l.cfg.Enabled
}

// RuleFor returns the rule for endpoint, applying its override when one exists
func (l *Limiter) RuleFor(endpoint string) Rule {
	rule := Rule{
		Limit:  l.cfg.DefaultLimit,
		Burst:  l.cfg.DefaultBurst,
		Window: l.cfg.Window(),
	}

	if o, ok := l.cfg.EndpointOverrides[endpoint]; ok {
		if o.Limit > 0 {
			rule.Limit = o.Limit
		}
		if o.Burst >= 0 {
			rule.Burst = o.Burst
		}
		if o.WindowSeconds > 0 {
			rule.Window = time.Duration(o.WindowSeconds) * time.Second
		}
	}

	if rule.Burst < 0 {
		rule.Burst = 0
	}
	return rule
}

// Allow takes one token from the bucket of identity on endpoint.
// A disabled limiter or a non-positive limit always allows.
func (l *Limiter) Allow(ctx context.Context, endpoint, identity string, rule Rule) (*Result, error) {
	if rule.Window <= 0 {
		rule.Window = l.cfg.Window()
	}

	result := &Result{
		Allowed:     true,
		Remaining:   rule.Limit,
		Limit:       rule.Limit,
		Window:      rule.Window,
		IdentityKey: identity,
		EndpointKey: endpoint,
	}
	if !l.cfg.Enabled || rule.Limit <= 0 {
		return result, nil
	}

	values, err := l.script.Run(ctx, l.client, []string{l.key(endpoint, identity)}, scriptArgs(rule, l.now())...).Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script failed: %w", err)
	}
	if len(values) != 4 {
		return nil, fmt.Errorf("rate limit script returned %d values", len(values))
	}

	result.Allowed = toInt(values[0]) == 1
	result.Remaining = toInt(values[1])
	result.RetryAfter = seconds(toFloat(values[2]))
	result.ResetAfter = seconds(toFloat(values[3]))
	return result, nil
}

func (l *Limiter) key(endpoint, identity string) string {
	return fmt.Sprintf("%s:%s:%s", l.cfg.RedisPrefix, endpoint, identity)
}

// scriptArgs are capacity, refill rate, current time and key TTL in milliseconds
func scriptArgs(rule Rule, now time.Time) []interface{} {
	capacity := rule.Limit + rule.Burst
	rate := float64(rule.Limit) / rule.Window.Seconds()
	refill := rule.Window * time.Duration(capacity) / time.Duration(rule.Limit)
	ttl := refill.Milliseconds() + time.Second.Milliseconds()

	return []interface{}{
		formatFloat(float64(capacity)),
		formatFloat(rate),
		formatFloat(float64(now.UnixMicro()) / 1e6),
		strconv.FormatInt(ttl, 10),
	}
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 10, 64)
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
