package kyc

import (
	"context"

	"github.com/richxcame/kyc-nova/internal/analytics"
	"github.com/richxcame/kyc-nova/internal/biometrics"
	"github.com/richxcame/kyc-nova/internal/documents"
	"github.com/richxcame/kyc-nova/internal/liveness"
	"github.com/richxcame/kyc-nova/internal/trust"
	"github.com/richxcame/kyc-nova/pkg/common"
)

// DocumentProcessor runs the document stage
type DocumentProcessor interface {
	Process(ctx context.Context, upload *common.Upload) (*documents.Result, error)
}

// FaceVerifier runs the face match stage
type FaceVerifier interface {
	Verify(ctx context.Context, live, document []byte) (*biometrics.Result, error)
}

// LivenessDetector runs the liveness stage
type LivenessDetector interface {
	Detect(ctx context.Context, frames []liveness.Frame) (*liveness.Result, error)
}

// TrustAggregator combines the stage scores
type TrustAggregator interface {
	Aggregate(in trust.Input) *trust.Result
}

// Recorder counts finished verifications
type Recorder interface {
	RecordVerification(ctx context.Context, outcome analytics.Outcome)
}

var (
	_ DocumentProcessor = (*documents.Service)(nil)
	_ FaceVerifier      = (*biometrics.Service)(nil)
	_ LivenessDetector  = (*liveness.Service)(nil)
	_ TrustAggregator   = (*trust.Aggregator)(nil)
	_ Recorder          = (*analytics.Service)(nil)
)
