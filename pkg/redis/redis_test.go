package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "dial timed out" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsTransient(t *testing.T) {
	transient := []error{
		errors.New("dial tcp: connection refused"),
		errors.New("connection reset by peer"),
		errors.New("temporary failure in name resolution"),
		errors.New("read: i/o timeout"),
		errors.New("unexpected EOF"),
		timeoutErr{},
	}
	for _, err := range transient {
		assert.True(t, isTransient(err), err.Error())
	}

	permanent := []error{
		nil,
		context.Canceled,
		context.DeadlineExceeded,
		goredis.Nil,
		errors.New("NOAUTH Authentication required"),
		errors.New("WRONGTYPE Operation against a key holding the wrong kind of value"),
	}
	for _, err := range permanent {
		assert.False(t, isTransient(err), "%v", err)
	}
}

func TestIncrementByWithTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.ExpectTxPipeline()
	mock.ExpectIncrBy("kyc:analytics:day:2024-05-01", 1).SetVal(12)
	mock.ExpectExpire("kyc:analytics:day:2024-05-01", 48*time.Hour).SetVal(true)
	mock.ExpectTxPipelineExec()

	got, err := IncrementByWithTTL(ctx, client, "kyc:analytics:day:2024-05-01", 1, 48*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(12), got)

	mock.ExpectTxPipeline()
	mock.ExpectIncrBy("kyc:analytics:duration_ms", 2500).SetVal(7500)
	mock.ExpectTxPipelineExec()

	got, err = IncrementByWithTTL(ctx, client, "kyc:analytics:duration_ms", 2500, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(7500), got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetInt64(t *testing.T) {
	client, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.ExpectGet("present").SetVal("17")
	mock.ExpectGet("missing").RedisNil()
	mock.ExpectGet("broken").SetErr(errors.New("connection refused"))

	v, err := GetInt64(ctx, client, "present")
	require.NoError(t, err)
	assert.Equal(t, int64(17), v)

	v, err = GetInt64(ctx, client, "missing")
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = GetInt64(ctx, client, "broken")
	assert.Error(t, err)
}
