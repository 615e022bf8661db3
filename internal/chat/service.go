package chat

import (
	"context"
	"time"

	"github.com/richxcame/kyc-nova/internal/scoring"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"github.com/richxcame/kyc-nova/pkg/security"
	"go.uber.org/zap"
)

const maxMessageLength = 1000

// Service answers verification questions
type Service struct {
	scorer scoring.Scorer
	now    func() time.Time
}

// NewService creates a chat service
func NewService(scorer scoring.Scorer) *Service {
	return &Service{scorer: scorer, now: time.Now}
}

// Respond classifies message and picks one of the canned answers for its intent
func (s *Service) Respond(ctx context.Context, message string) (*Reply, error) {
	message = security.CleanMessage(message, maxMessageLength)
	if message == "" {
		return nil, common.NewBadRequestError("message is required", nil)
	}

	intent, confidence := ClassifyIntent(message)
	entities := ExtractEntities(message)

	logger.WithContext(ctx).Debug("chat message classified",
		zap.String("intent", string(intent)),
		zap.Float64("confidence", confidence),
	)

	return &Reply{
		Intent:     intent,
		Confidence: confidence,
		Entities:   entities,
		Response:   s.pick(responses[intent]),
		Timestamp:  s.now().UTC(),
	}, nil
}

func (s *Service) pick(options []string) string {
	n := len(options)
	i := scoring.Int(s.scorer, scoring.Range{Min: 0, Max: float64(n)})
	if i >= n {
		i = n - 1
	}
	return options[i]
}
