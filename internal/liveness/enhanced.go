package liveness

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/richxcame/kyc-nova/internal/rekognition"
	"github.com/richxcame/kyc-nova/internal/scoring"
	"golang.org/x/sync/errgroup"
)

// ErrNoFaces is returned when DetectFaces finds no face in any frame
var ErrNoFaces = errors.New("no faces detected in any frame")

// Thresholds for an enhanced pass
const (
	minAvgFaceConfidence = 80
	minAvgLiveness       = 75
	minFaceFrameRatio    = 0.6
	eyesOpenConfidence   = 80
	maxConcurrentDetects = 4
)

// FaceDetector returns the face details found in an image
type FaceDetector interface {
	DetectFaceDetails(ctx context.Context, image []byte) ([]types.FaceDetail, error)
}

// EnhancedAnalyzer scores liveness from Rekognition face attributes
type EnhancedAnalyzer struct {
	detector FaceDetector
	scorer   scoring.Scorer
	now      func() time.Time
}

// NewEnhancedAnalyzer creates an analyzer backed by detector
func NewEnhancedAnalyzer(detector FaceDetector, scorer scoring.Scorer) *EnhancedAnalyzer {
	return &EnhancedAnalyzer{detector: detector, scorer: scorer, now: time.Now}
}

type faceSample struct {
	confidence float64
	liveness   float64
	quality    *rekognition.Quality
	eyesOpen   bool
	mouthOpen  bool
	emotions   int
}

// Analyze runs DetectFaces on every frame and aggregates the first face of each.
// Any API or decode error fails the whole run.
func (a *EnhancedAnalyzer) Analyze(ctx context.Context, frames []Frame) (*Result, error) {
	if len(frames) == 0 {
		return nil, errors.New(ReasonNoFrames)
	}

	samples := make([]*faceSample, len(frames))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDetects)

	for i, frame := range frames {
		g.Go(func() error {
			img, err := rekognition.DecodeBase64Image(frame.Data)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			faces, err := a.detector.DetectFaceDetails(gctx, img)
			if err != nil {
				return err
			}
			if len(faces) > 0 {
				samples[i] = sampleFace(faces[0])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	detected := make([]*faceSample, 0, len(samples))
	for _, s := range samples {
		if s != nil {
			detected = append(detected, s)
		}
	}
	if len(detected) == 0 {
		return nil, ErrNoFaces
	}

	return a.aggregate(len(frames), detected), nil
}

func (a *EnhancedAnalyzer) aggregate(total int, detected []*faceSample) *Result {
	var sumConf, sumLive float64
	details := &EnhancedDetails{
		TotalFrames:      total,
		FacesDetected:    len(detected),
		FaceQuality:      detected[0].quality,
		EmotionVariation: detected[0].emotions,
	}
	for _, s := range detected {
		sumConf += s.confidence
		sumLive += s.liveness
		if s.eyesOpen {
			details.EyesOpenDetected++
		}
		if s.mouthOpen {
			details.MouthMovement++
		}
	}

	n := float64(len(detected))
	details.AvgFaceConfidence = sumConf / n
	details.AvgLivenessScore = sumLive / n

	success := details.AvgFaceConfidence > minAvgFaceConfidence &&
		details.AvgLivenessScore > minAvgLiveness &&
		float64(len(detected)) >= float64(total)*minFaceFrameRatio
	confidence := math.Round((details.AvgFaceConfidence + details.AvgLivenessScore) / 2)

	// Frames without a face count as blocked. Faces that fail the check count as photos.
	dist := Distribution{Blocked: total - len(detected)}
	if success {
		dist.Normal = len(detected)
	} else {
		dist.Photo = len(detected)
	}
	dominant, _ := dist.Dominant()

	result := &Result{
		Success:        success,
		Confidence:     scoring.ClampPercent(confidence),
		Scenario:       dominant,
		Source:         SourceEnhanced,
		Distribution:   dist,
		Signals:        faceSignals(details, total),
		CapturedFrames: total,
		Enhanced:       details,
		ProcessedAt:    a.now(),
		Biometrics: BiometricAnalysis{
			EyesVisible:    details.EyesOpenDetected > 0,
			MouthVisible:   true,
			NoObstructions: dist.Blocked == 0,
			LightingGood:   details.FaceQuality != nil && details.FaceQuality.Brightness >= 50,
		},
	}
	if details.FaceQuality != nil {
		result.Biometrics.FaceQuality = scoring.Round1(details.FaceQuality.Sharpness)
	}

	if success {
		result.Reason = fmt.Sprintf("Live person detected with %.0f%% confidence using AWS Rekognition", confidence)
		result.Recommendation = RecommendApproved
		result.Risk = RiskAssessment{
			SpoofingRisk:    scoring.Round1(a.scorer.Score(scoring.Range{Min: 0, Max: 15})),
			ObstructionRisk: scoring.Round1(a.scorer.Score(scoring.Range{Min: 0, Max: 8})),
			DeepfakeRisk:    scoring.Round1(a.scorer.Score(scoring.Range{Min: 0, Max: 5})),
			OverallRisk:     RiskLow,
		}
		return result
	}

	result.Reason = "Insufficient liveness indicators detected - please ensure good lighting and look directly at camera"
	result.Recommendation = RecommendRejected
	result.Risk = RiskAssessment{
		SpoofingRisk:    scoring.Round1(a.scorer.Score(scoring.Range{Min: 70, Max: 95})),
		ObstructionRisk: scoring.Round1(a.scorer.Score(scoring.Range{Min: 0, Max: 8})),
		DeepfakeRisk:    scoring.Round1(a.scorer.Score(scoring.Range{Min: 0, Max: 5})),
		OverallRisk:     RiskHigh,
	}
	return result
}

func sampleFace(face types.FaceDetail) *faceSample {
	converted := rekognition.ConvertFaceDetail(face)
	return &faceSample{
		confidence: converted.Confidence,
		liveness:   FaceLivenessScore(face),
		quality:    converted.Quality,
		eyesOpen:   face.EyesOpen != nil && face.EyesOpen.Value,
		mouthOpen:  face.MouthOpen != nil && face.MouthOpen.Value,
		emotions:   len(face.Emotions),
	}
}

// FaceLivenessScore scores one face in [0,100] from its attributes.
// Quality contributes up to 40, open eyes 30, emotions 20 and head pose 10.
func FaceLivenessScore(face types.FaceDetail) float64 {
	var score float64

	if q := face.Quality; q != nil {
		score += float64(aws.ToFloat32(q.Brightness)) * 0.1
		score += float64(aws.ToFloat32(q.Sharpness)) * 0.3
	}

	if e := face.EyesOpen; e != nil && e.Value && aws.ToFloat32(e.Confidence) > eyesOpenConfidence {
		score += 30
	}

	if n := len(face.Emotions); n > 0 {
		score += math.Min(float64(n)*5, 20)
	}

	if p := face.Pose; p != nil {
		variation := math.Abs(float64(aws.ToFloat32(p.Yaw))) + math.Abs(float64(aws.ToFloat32(p.Pitch)))
		score += math.Min(variation, 10)
	}

	return math.Min(score, 100)
}

func faceSignals(d *EnhancedDetails, total int) Signals {
	return Signals{
		BlinkDetection:   d.EyesOpenDetected > 0,
		HeadMovement:     d.FacesDetected > 1,
		DepthAnalysis:    d.AvgLivenessScore > minAvgLiveness,
		TextureAnalysis:  d.AvgFaceConfidence > minAvgFaceConfidence,
		MultipleAngles:   total >= minFramesForAngles,
		RealTimeAnalysis: false,
	}
}
