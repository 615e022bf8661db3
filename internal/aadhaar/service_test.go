package aadhaar

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/richxcame/kyc-nova/internal/scoring"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	extraction *Extraction
	err        error
}

func (f *fakeExtractor) Extract(context.Context, []byte) (*Extraction, error) {
	return f.extraction, f.err
}

func newTestService(extractor Extractor, scorer scoring.Scorer) *Service {
	return NewService(extractor, scorer, nil, ServiceConfig{CallTimeout: time.Second})
}

func TestService_ExtractRequiresImage(t *testing.T) {
	_, err := newTestService(nil, scoring.Midpoint{}).Extract(context.Background(), nil)

	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestService_ExtractFallback(t *testing.T) {
	svc := newTestService(nil, scoring.Midpoint{})
	assert.Equal(t, SourceFallback, svc.Mode())

	result, err := svc.Extract(context.Background(), []byte("card"))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.IsFallback())
	assert.Equal(t, FallbackData(), result.Data)
	assert.Equal(t, "Neha", result.Data.Name)
	assert.Equal(t, 96.0, result.Metadata.Confidence)
	assert.Equal(t, int64(600), result.Metadata.ProcessingTimeMs)
	assert.Equal(t, "fallback-v1.0", result.Metadata.APIVersion)
	assert.Equal(t, "OCR + Pattern Recognition", result.Metadata.ExtractionMethod)
}

func TestService_FallbackMetadataBounds(t *testing.T) {
	for _, v := range []float64{0, 92, 99.99, 100, 500, 1000, 5000} {
		result, err := newTestService(nil, scoring.Fixed{Value: v}).Extract(context.Background(), []byte("card"))
		require.NoError(t, err)

		assert.GreaterOrEqual(t, result.Metadata.Confidence, 92.0)
		assert.LessOrEqual(t, result.Metadata.Confidence, 100.0)
		assert.GreaterOrEqual(t, result.Metadata.ProcessingTimeMs, int64(200))
		assert.Less(t, result.Metadata.ProcessingTimeMs, int64(1000))
	}
}

func TestService_ExtractRealAPI(t *testing.T) {
	extractor := &fakeExtractor{extraction: &Extraction{
		Data:             Data{Name: "Asha Rao", AadhaarNumber: "9999-8888-7777"},
		Confidence:       97.5,
		ProcessingTimeMs: 420,
		APIVersion:       "2.0.3",
	}}
	svc := newTestService(extractor, scoring.Midpoint{})
	assert.Equal(t, SourceRealAPI, svc.Mode())

	result, err := svc.Extract(context.Background(), []byte("card"))
	require.NoError(t, err)

	assert.Equal(t, SourceRealAPI, result.Source)
	assert.Equal(t, "Asha Rao", result.Data.Name)
	assert.Equal(t, 97.5, result.Metadata.Confidence)
	assert.Empty(t, result.Metadata.ExtractionMethod)
}

func TestService_ExtractFallsBackOnError(t *testing.T) {
	svc := newTestService(&fakeExtractor{err: errors.New("aadhaar API error: 503")}, scoring.Midpoint{})

	result, err := svc.Extract(context.Background(), []byte("card"))
	require.NoError(t, err)

	assert.True(t, result.IsFallback())
	assert.Equal(t, "Neha", result.Data.Name)
	assert.NotEmpty(t, result.FallbackReason)
}

// fakeSecrets implements secrets.Manager
type fakeSecrets struct {
	values map[string]string
}

func (f *fakeSecrets) GetString(_ context.Context, ref secrets.Reference) (string, error) {
	v, ok := f.values[ref.Path+"#"+ref.Key]
	if !ok {
		return "", secrets.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeSecrets) Close() error { return nil }

func TestResolveAPIKey(t *testing.T) {
	ctx := context.Background()
	m := &fakeSecrets{values: map[string]string{"kyc/aadhaar#api_key": "from-secrets"}}

	key, err := ResolveAPIKey(ctx, m, "plain-key")
	require.NoError(t, err)
	assert.Equal(t, "plain-key", key)

	key, err = ResolveAPIKey(ctx, m, "aws://kyc/aadhaar#api_key")
	require.NoError(t, err)
	assert.Equal(t, "from-secrets", key)

	_, err = ResolveAPIKey(ctx, m, "aws://kyc/missing#api_key")
	assert.ErrorIs(t, err, secrets.ErrKeyNotFound)

	key, err = ResolveAPIKey(ctx, nil, "aws://kyc/aadhaar#api_key")
	require.NoError(t, err)
	assert.Equal(t, "aws://kyc/aadhaar#api_key", key, "no manager leaves the value untouched")
}
