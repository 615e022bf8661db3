package kyc

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/richxcame/kyc-nova/internal/aadhaar"
	"github.com/richxcame/kyc-nova/internal/analytics"
	"github.com/richxcame/kyc-nova/internal/authenticity"
	"github.com/richxcame/kyc-nova/internal/biometrics"
	"github.com/richxcame/kyc-nova/internal/documents"
	"github.com/richxcame/kyc-nova/internal/extraction"
	"github.com/richxcame/kyc-nova/internal/liveness"
	"github.com/richxcame/kyc-nova/internal/trust"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ========================================
// MOCKS
// ========================================

type mockDocuments struct {
	mock.Mock
}

func (m *mockDocuments) Process(ctx context.Context, upload *common.Upload) (*documents.Result, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Result), args.Error(1)
}

type mockFaces struct {
	mock.Mock
}

func (m *mockFaces) Verify(ctx context.Context, live, document []byte) (*biometrics.Result, error) {
	args := m.Called(ctx, live, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*biometrics.Result), args.Error(1)
}

type mockLiveness struct {
	mock.Mock
}

func (m *mockLiveness) Detect(ctx context.Context, frames []liveness.Frame) (*liveness.Result, error) {
	args := m.Called(ctx, frames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*liveness.Result), args.Error(1)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordVerification(ctx context.Context, outcome analytics.Outcome) {
	m.Called(ctx, outcome)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}

func (m *mockPublisher) Close() {}

type fixture struct {
	docs      *mockDocuments
	faces     *mockFaces
	live      *mockLiveness
	recorder  *mockRecorder
	publisher *mockPublisher
	orch      *Orchestrator
}

func newFixture() *fixture {
	f := &fixture{
		docs:      new(mockDocuments),
		faces:     new(mockFaces),
		live:      new(mockLiveness),
		recorder:  new(mockRecorder),
		publisher: new(mockPublisher),
	}
	f.orch = NewOrchestrator(f.docs, f.faces, f.live,
		trust.NewAggregator(config.DefaultScoringPolicy()), f.recorder, f.publisher)
	return f
}

func documentResult(confidence float64) *documents.Result {
	name := "Jane Doe"
	return &documents.Result{
		Success:       true,
		Confidence:    confidence,
		ExtractedData: extraction.Fields{Name: &name},
		Source:        authenticity.SourceTextract,
	}
}

func faceResult(similarity float64, match bool) *biometrics.Result {
	return &biometrics.Result{Success: true, Similarity: similarity, Match: match, Source: biometrics.SourceRekognition}
}

func livenessResult(success bool) *liveness.Result {
	return &liveness.Result{Success: success, Confidence: 91, Source: liveness.SourceEnhanced}
}

func verifyRequest() *Request {
	return &Request{
		Document:  &common.Upload{Filename: "id.jpg", ContentType: "image/jpeg", Size: 3, Data: []byte("doc")},
		LivePhoto: []byte("selfie"),
	}
}

// ========================================
// TESTS
// ========================================

func TestOrchestrator_VerifyAggregatesStages(t *testing.T) {
	f := newFixture()
	req := verifyRequest()

	f.docs.On("Process", mock.Anything, req.Document).Return(documentResult(95), nil)
	f.faces.On("Verify", mock.Anything, req.LivePhoto, req.Document.Data).Return(faceResult(94.5, true), nil)
	f.live.On("Detect", mock.Anything, mock.MatchedBy(func(frames []liveness.Frame) bool {
		return len(frames) == 1 && frames[0].Data == "data:image/jpeg;base64,c2VsZmll"
	})).Return(livenessResult(true), nil)
	f.recorder.On("RecordVerification", mock.Anything, mock.MatchedBy(func(o analytics.Outcome) bool {
		return o.Completed && !o.Flagged
	})).Return()
	f.publisher.On("Publish", mock.Anything, EventVerificationCompleted, mock.AnythingOfType("kyc.CompletedEvent")).Return(nil)

	result, err := f.orch.Verify(context.Background(), req)
	require.NoError(t, err)

	// 95*0.40 + 94.5*0.35 + 75*0.25
	assert.InDelta(t, 89.825, result.Trust.FinalScore, 1e-9)
	assert.Equal(t, trust.StatusMonitoring, result.Trust.Recommendation.Status)
	assert.False(t, result.Flagged)
	assert.Empty(t, result.FlagReasons)
	assert.NotEqual(t, [16]byte{}, [16]byte(result.VerificationID))

	risk, ok := result.Trust.Factor(trust.CategoryRisk)
	require.True(t, ok)
	assert.Equal(t, 90.0, risk.Score)

	f.docs.AssertExpectations(t)
	f.faces.AssertExpectations(t)
	f.live.AssertExpectations(t)
	f.recorder.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestOrchestrator_VerifyFlagsFailedStages(t *testing.T) {
	f := newFixture()
	req := verifyRequest()
	req.Frames = []liveness.Frame{{Data: "a"}, {Data: "b"}}
	req.Behavior = &trust.BehaviorSignals{SessionSeconds: 5}

	f.docs.On("Process", mock.Anything, mock.Anything).Return(documentResult(70), nil)
	f.faces.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(faceResult(60, false), nil)
	f.live.On("Detect", mock.Anything, req.Frames).Return(livenessResult(false), nil)
	f.recorder.On("RecordVerification", mock.Anything, mock.MatchedBy(func(o analytics.Outcome) bool {
		return !o.Completed && o.Flagged
	})).Return()

	var published CompletedEvent
	f.publisher.On("Publish", mock.Anything, EventVerificationCompleted, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(2).(CompletedEvent) }).
		Return(errors.New("nats: connection closed"))

	result, err := f.orch.Verify(context.Background(), req)
	require.NoError(t, err, "publish failures are logged, not returned")

	assert.True(t, result.Flagged)
	assert.Equal(t, []string{FlagLivenessFailed, FlagFaceMismatch, FlagReviewRequired}, result.FlagReasons)
	assert.Equal(t, trust.StatusReviewRequired, result.Trust.Recommendation.Status)

	risk, _ := result.Trust.Factor(trust.CategoryRisk)
	assert.Equal(t, 70.0, risk.Score)

	assert.Equal(t, result.VerificationID, published.VerificationID)
	assert.True(t, published.Flagged)
	assert.Equal(t, string(liveness.SourceEnhanced), published.LivenessSource)
	f.recorder.AssertExpectations(t)
}

func TestOrchestrator_VerifyStageErrorAbortsRun(t *testing.T) {
	f := newFixture()

	f.docs.On("Process", mock.Anything, mock.Anything).Return(documentResult(95), nil)
	f.faces.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(faceResult(94.5, true), nil)
	f.live.On("Detect", mock.Anything, mock.Anything).Return(nil, errors.New("detector crashed"))

	result, err := f.orch.Verify(context.Background(), verifyRequest())
	assert.Nil(t, result)
	assert.EqualError(t, err, "detector crashed")

	f.recorder.AssertNotCalled(t, "RecordVerification", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrchestrator_VerifyPropagatesValidationErrors(t *testing.T) {
	f := newFixture()

	f.docs.On("Process", mock.Anything, mock.Anything).
		Return(nil, common.NewBadRequestError(documents.MsgUnsupportedType, nil))
	f.faces.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(faceResult(94.5, true), nil).Maybe()
	f.live.On("Detect", mock.Anything, mock.Anything).Return(livenessResult(true), nil).Maybe()

	_, err := f.orch.Verify(context.Background(), verifyRequest())

	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestOrchestrator_VerifyRequiresImages(t *testing.T) {
	f := newFixture()

	_, err := f.orch.Verify(context.Background(), &Request{LivePhoto: []byte("x")})
	assert.Error(t, err)

	req := verifyRequest()
	req.LivePhoto = nil
	_, err = f.orch.Verify(context.Background(), req)
	assert.Error(t, err)

	f.docs.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestOrchestrator_Calculate(t *testing.T) {
	f := newFixture()

	result := f.orch.Calculate(&CalculateTrustRequest{
		DocumentData:   &DocumentData{Confidence: trust.Score(85)},
		BiometricData:  &BiometricData{Confidence: trust.Score(80)},
		BehavioralData: &BehavioralData{Score: trust.Score(75)},
	})

	assert.InDelta(t, 80.75, result.FinalScore, 1e-9)
	assert.Equal(t, 80.8, result.DisplayScore)
	assert.Equal(t, trust.StatusMonitoring, result.Recommendation.Status)
}

func TestCalculateTrustRequest_Input(t *testing.T) {
	t.Run("empty request uses defaults", func(t *testing.T) {
		in := (&CalculateTrustRequest{}).Input()
		assert.Nil(t, in.DocumentScore)
		assert.Nil(t, in.BiometricScore)
		assert.Nil(t, in.Behavior)
		assert.Nil(t, in.Consistency)
	})

	t.Run("consistency from name and match", func(t *testing.T) {
		match := false
		in := (&CalculateTrustRequest{
			DocumentData:  &DocumentData{ExtractedData: &ExtractedName{Name: "  "}},
			BiometricData: &BiometricData{Match: &match},
		}).Input()
		require.NotNil(t, in.Consistency)
		assert.False(t, in.Consistency.NameExtracted)
		assert.False(t, in.Consistency.FaceMatched)
	})

	t.Run("behavior signals", func(t *testing.T) {
		in := (&CalculateTrustRequest{
			BehavioralData: &BehavioralData{
				MouseMovements: &trust.MouseSignal{Natural: true},
				SessionTime:    45,
			},
		}).Input()
		require.NotNil(t, in.Behavior)
		assert.Nil(t, in.BehaviorScore)
		assert.Equal(t, 90.0, trust.AnalyzeBehavior(*in.Behavior))
	})
}

func TestComponentModes(t *testing.T) {
	modes := ComponentModes(Components{
		Aadhaar:     aadhaar.SourceFallback,
		Rekognition: biometrics.SourceRekognition,
		Region:      "eu-west-1",
		Documents:   authenticity.SourceTextract,
		Liveness:    liveness.SourceFallback,
	})

	assert.Equal(t, common.ComponentMode{Mode: ModeFallback, Status: StatusFallbackReady, Endpoint: "mock://fallback"}, modes["aadhaar"])
	assert.Equal(t, common.ComponentMode{Mode: ModeAWSReal, Status: StatusConnected, Region: "eu-west-1"}, modes["rekognition"])
	assert.Equal(t, "textract", modes["textract"].Mode)
	assert.Equal(t, ModeFallback, modes["liveness"].Mode)

	modes = ComponentModes(Components{Aadhaar: aadhaar.SourceRealAPI, AadhaarEndpoint: "https://ocr.example.com"})
	assert.Equal(t, ModeRealAPI, modes["aadhaar"].Mode)
	assert.Equal(t, "https://ocr.example.com", modes["aadhaar"].Endpoint)
	assert.Equal(t, ModeFallback, modes["rekognition"].Mode)
}
