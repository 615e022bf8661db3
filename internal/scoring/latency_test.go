package scoring

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLatency(t *testing.T) {
	assert.Equal(t, 200*time.Millisecond, Latency(Fixed{Value: 0}, Range{Min: 200, Max: 1000}))
	assert.Equal(t, 600*time.Millisecond, Latency(Midpoint{}, Range{Min: 200, Max: 1000}))
}

func TestWait(t *testing.T) {
	assert.NoError(t, Wait(context.Background(), 0))
	assert.NoError(t, Wait(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Wait(ctx, time.Hour), context.Canceled)
}
