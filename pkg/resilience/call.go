package resilience

import (
	"context"
	"fmt"
	"time"

	"github.com/richxcame/kyc-nova/pkg/tracing"
)

// Call runs op through the breaker under a deadline and a tracing span.
// The breaker returns interface{}, so the result is asserted back to T.
func Call[T any](ctx context.Context, b *CircuitBreaker, timeout time.Duration, spanName string, op func(ctx context.Context) (T, error)) (result T, err error) {
	ctx, span := tracing.StartSpan(ctx, spanName)
	defer func() { tracing.EndSpan(span, err) }()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out, err := b.Execute(ctx, func(ctx context.Context) (interface{}, error) {
		return op(ctx)
	})
	if err != nil {
		return result, err
	}

	typed, ok := out.(T)
	if !ok {
		return result, fmt.Errorf("%s: unexpected result type %T", b.Name(), out)
	}
	return typed, nil
}
