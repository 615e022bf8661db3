package chat

import (
	"context"
	"testing"
	"time"

	"github.com/richxcame/kyc-nova/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		message    string
		intent     Intent
		confidence float64
	}{
		{"Is my data safe and secure?", IntentSecurity, 0.5},
		{"How long does the process take?", IntentProcess, 2.0 / 6},
		{"I need help with a problem", IntentHelp, 0.4},
		{"I'm worried and nervous, I have doubts", IntentConcern, 0.6},
		{"Is it quick? What duration, how fast?", IntentTime, 0.6},
		{"hello there", IntentGeneral, 0.3},
		{"", IntentGeneral, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			intent, confidence := ClassifyIntent(tt.message)
			assert.Equal(t, tt.intent, intent)
			assert.InDelta(t, tt.confidence, confidence, 1e-9)
		})
	}
}

func TestClassifyIntent_SingleKeywordStaysGeneral(t *testing.T) {
	// one of six process keywords is 0.167, below the general baseline
	intent, confidence := ClassifyIntent("how?")
	assert.Equal(t, IntentGeneral, intent)
	assert.Equal(t, 0.3, confidence)
}

func TestClassifyIntent_TieKeepsEarlierIntent(t *testing.T) {
	// security 2/6 and process 2/6
	intent, _ := ClassifyIntent("what data? how safe?")
	assert.Equal(t, IntentSecurity, intent)
}

func TestExtractEntities(t *testing.T) {
	tests := []struct {
		message string
		want    Entities
	}{
		{"Can I use my Passport?", Entities{DocumentType: "passport"}},
		{"passport or license document", Entities{DocumentType: "document"}},
		{"what about privacy", Entities{Concern: "privacy"}},
		{"privacy, process and time", Entities{Concern: "process"}},
		{"license security", Entities{DocumentType: "license", Concern: "security"}},
		{"nothing here", Entities{}},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEntities(tt.message))
		})
	}
}

func TestService_Respond(t *testing.T) {
	svc := NewService(scoring.Midpoint{})
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	reply, err := svc.Respond(context.Background(), "Is my data safe and secure?")
	require.NoError(t, err)

	assert.Equal(t, IntentSecurity, reply.Intent)
	assert.Equal(t, responses[IntentSecurity][1], reply.Response)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), reply.Timestamp)
}

func TestService_RespondPicksWithinBounds(t *testing.T) {
	for _, v := range []float64{-5, 0, 0.99, 1, 2.5, 3, 100} {
		svc := NewService(scoring.Fixed{Value: v})
		reply, err := svc.Respond(context.Background(), "hello")
		require.NoError(t, err)
		assert.Contains(t, responses[IntentGeneral], reply.Response)
	}

	reply, _ := NewService(scoring.Fixed{Value: 3}).Respond(context.Background(), "hello")
	assert.Equal(t, responses[IntentGeneral][2], reply.Response)
}

func TestService_RespondRejectsBlank(t *testing.T) {
	_, err := NewService(scoring.Midpoint{}).Respond(context.Background(), "   ")
	assert.Error(t, err)

	_, err = NewService(scoring.Midpoint{}).Respond(context.Background(), "<br/>\x00")
	assert.Error(t, err, "markup only")
}

func TestService_RespondIgnoresMarkup(t *testing.T) {
	svc := NewService(scoring.Midpoint{})

	plain, err := svc.Respond(context.Background(), "Is my data safe and secure?")
	require.NoError(t, err)
	marked, err := svc.Respond(context.Background(), "<p>Is my <b>data</b>\n safe and secure?</p>")
	require.NoError(t, err)

	assert.Equal(t, plain.Intent, marked.Intent)
	assert.Equal(t, plain.Confidence, marked.Confidence)
}

func TestResponses_EveryIntentHasAnswers(t *testing.T) {
	for _, p := range intentPatterns {
		assert.NotEmpty(t, responses[p.intent], p.intent)
	}
	assert.NotEmpty(t, responses[IntentGeneral])
}
