package kyc

import (
	"context"
	"encoding/base64"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/kyc-nova/internal/analytics"
	"github.com/richxcame/kyc-nova/internal/authenticity"
	"github.com/richxcame/kyc-nova/internal/biometrics"
	"github.com/richxcame/kyc-nova/internal/documents"
	"github.com/richxcame/kyc-nova/internal/liveness"
	"github.com/richxcame/kyc-nova/internal/trust"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/events"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Orchestrator runs the verification stages and aggregates their scores
type Orchestrator struct {
	documents  DocumentProcessor
	faces      FaceVerifier
	liveness   LivenessDetector
	aggregator TrustAggregator
	recorder   Recorder
	publisher  events.Publisher
	now        func() time.Time
}

// NewOrchestrator creates an orchestrator. A nil publisher drops events.
func NewOrchestrator(
	docs DocumentProcessor,
	faces FaceVerifier,
	detector LivenessDetector,
	aggregator TrustAggregator,
	recorder Recorder,
	publisher events.Publisher,
) *Orchestrator {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	return &Orchestrator{
		documents:  docs,
		faces:      faces,
		liveness:   detector,
		aggregator: aggregator,
		recorder:   recorder,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Calculate aggregates client supplied scores without running any stage
func (o *Orchestrator) Calculate(req *CalculateTrustRequest) *trust.Result {
	return o.aggregator.Aggregate(req.Input())
}

// Verify runs the document, face match and liveness stages concurrently.
// Any stage error aborts the run; partial results are never aggregated.
func (o *Orchestrator) Verify(ctx context.Context, req *Request) (*Result, error) {
	if req == nil || req.Document == nil || len(req.Document.Data) == 0 {
		return nil, common.NewBadRequestError("document image is required", nil)
	}
	if len(req.LivePhoto) == 0 {
		return nil, common.NewBadRequestError("live photo is required", nil)
	}

	start := o.now()
	frames := req.Frames
	if len(frames) == 0 {
		frames = []liveness.Frame{frameFromPhoto(req.LivePhoto)}
	}

	var (
		doc  *documents.Result
		face *biometrics.Result
		live *liveness.Result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doc, err = o.documents.Process(gctx, req.Document)
		return err
	})
	g.Go(func() error {
		var err error
		face, err = o.faces.Verify(gctx, req.LivePhoto, req.Document.Data)
		return err
	})
	g.Go(func() error {
		var err error
		live, err = o.liveness.Detect(gctx, frames)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.WithContext(ctx).Warn("verification aborted", zap.Error(err))
		return nil, err
	}

	score := o.aggregator.Aggregate(trust.Input{
		DocumentScore:  trust.Score(doc.Confidence),
		BiometricScore: trust.Score(face.Similarity),
		Behavior:       req.Behavior,
		Consistency: &trust.Consistency{
			NameExtracted: doc.ExtractedData.HasName(),
			FaceMatched:   face.Match,
		},
	})

	result := &Result{
		VerificationID: uuid.New(),
		Document:       doc,
		Biometrics:     face,
		Liveness:       live,
		Trust:          score,
		CompletedAt:    o.now().UTC(),
	}
	result.FlagReasons = flagReasons(result)
	result.Flagged = len(result.FlagReasons) > 0

	duration := o.now().Sub(start)
	result.DurationMs = duration.Milliseconds()

	o.observe(ctx, result, duration)
	return result, nil
}

func (o *Orchestrator) observe(ctx context.Context, result *Result, duration time.Duration) {
	status := result.Trust.Recommendation.Status

	verificationsTotal.WithLabelValues(string(status), strconv.FormatBool(result.Flagged)).Inc()
	verificationDuration.Observe(duration.Seconds())
	trustScore.Observe(result.Trust.FinalScore)
	if result.Document.Source == authenticity.SourceFallback {
		stageFallbacksTotal.WithLabelValues("document").Inc()
	}
	if result.Biometrics.IsFallback() {
		stageFallbacksTotal.WithLabelValues("biometrics").Inc()
	}
	if result.Liveness.IsFallback() {
		stageFallbacksTotal.WithLabelValues("liveness").Inc()
	}

	if o.recorder != nil {
		o.recorder.RecordVerification(ctx, analytics.Outcome{
			Completed: !result.Flagged,
			Flagged:   result.Flagged,
			Duration:  duration,
		})
	}

	if err := o.publisher.Publish(ctx, EventVerificationCompleted, newCompletedEvent(result)); err != nil {
		logger.WithContext(ctx).Warn("failed to publish verification event",
			zap.String("verification_id", result.VerificationID.String()),
			zap.Error(err),
		)
	}

	logger.WithContext(ctx).Info("verification completed",
		zap.String("verification_id", result.VerificationID.String()),
		zap.Float64("final_score", result.Trust.DisplayScore),
		zap.String("status", string(status)),
		zap.Bool("flagged", result.Flagged),
		zap.Duration("duration", duration),
	)
}

func flagReasons(r *Result) []string {
	var reasons []string
	if !r.Liveness.Success {
		reasons = append(reasons, FlagLivenessFailed)
	}
	if !r.Biometrics.Match {
		reasons = append(reasons, FlagFaceMismatch)
	}
	if r.Trust.Recommendation.Status == trust.StatusReviewRequired {
		reasons = append(reasons, FlagReviewRequired)
	}
	return reasons
}

func frameFromPhoto(photo []byte) liveness.Frame {
	encoded := base64.StdEncoding.EncodeToString(photo)
	return liveness.Frame{Data: "data:image/jpeg;base64," + encoded}
}
