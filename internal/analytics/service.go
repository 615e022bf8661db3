package analytics

import (
	"context"

	"github.com/richxcame/kyc-nova/internal/scoring"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"go.uber.org/zap"
)

// Used only until the first verification is recorded
var (
	completionRateRange = scoring.Range{Min: 92, Max: 98}
	averageTimeRange    = scoring.Range{Min: 4.2, Max: 6.2}
)

// Service records verification activity and builds the dashboard
type Service struct {
	store    Store
	baseline Baseline
	scorer   scoring.Scorer
}

// NewService creates an analytics service
func NewService(store Store, baseline Baseline, scorer scoring.Scorer) *Service {
	return &Service{store: store, baseline: baseline, scorer: scorer}
}

// RecordVerification counts one finished verification. Store errors are logged, never returned.
func (s *Service) RecordVerification(ctx context.Context, outcome Outcome) {
	s.add(ctx, CounterTotal, 1)
	if outcome.Completed {
		s.add(ctx, CounterCompleted, 1)
	}
	if outcome.Flagged {
		s.add(ctx, CounterFlagged, 1)
	}
	if outcome.Duration > 0 {
		s.add(ctx, CounterDurationMs, outcome.Duration.Milliseconds())
	}
}

// RecordDocument counts one processed document
func (s *Service) RecordDocument(ctx context.Context) {
	s.add(ctx, CounterDocuments, 1)
}

// RecordInteraction counts one assistant exchange
func (s *Service) RecordInteraction(ctx context.Context) {
	s.add(ctx, CounterInteractions, 1)
}

func (s *Service) add(ctx context.Context, counter Counter, delta int64) {
	if err := s.store.Add(ctx, counter, delta); err != nil {
		logger.WithContext(ctx).Warn("failed to record analytics counter",
			zap.String("counter", string(counter)),
			zap.Error(err),
		)
	}
}

// Dashboard builds the analytics payload from the recorded counters on top of the baseline
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	counts, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Verifications: Verifications{
			Total: s.baseline.Total + counts.Total,
			Today: s.baseline.Today + counts.Today,
		},
		AIModules: Modules{
			SmartVision: SmartVision{
				Accuracy:  smartVisionAccuracy,
				Processed: s.baseline.Documents + counts.Documents,
				AvgTime:   smartVisionAvgTime,
			},
			ConversationalAI: ConversationalAI{
				Satisfaction: conversationSatisfaction,
				Interactions: s.baseline.Interactions + counts.Interactions,
				Resolution:   conversationResolution,
			},
			TrustGraph: TrustGraph{
				Accuracy:       trustGraphAccuracy,
				Flagged:        s.baseline.Flagged + counts.Flagged,
				FalsePositives: trustGraphFalsePositives,
			},
		},
		Live: counts.Total > 0,
	}

	if counts.Total > 0 {
		d.Verifications.CompletionRate = scoring.Round1(float64(counts.Completed) / float64(counts.Total) * 100)
		d.Verifications.AverageTime = scoring.Round1(float64(counts.DurationMs) / float64(counts.Total) / 60000)
	} else {
		d.Verifications.CompletionRate = scoring.Round1(s.scorer.Score(completionRateRange))
		d.Verifications.AverageTime = scoring.Round1(s.scorer.Score(averageTimeRange))
	}
	return d, nil
}
