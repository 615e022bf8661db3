package rekognition

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"github.com/richxcame/kyc-nova/pkg/resilience"
	"github.com/richxcame/kyc-nova/pkg/storage"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned by every call when no credentials were supplied
var ErrNotConfigured = errors.New("aws rekognition is not configured")

// Defaults applied when a caller leaves a parameter at zero
const (
	DefaultSimilarityThreshold = 80
	DefaultMaxFaces            = 5
	auditImagesLimit           = 4
	auditURLExpiry             = 15 * time.Minute
)

// Image quality limits for face matching
const (
	minBrightness = 50
	maxBrightness = 90
	minSharpness  = 70
)

var dataURIPrefix = regexp.MustCompile(`^data:image/[a-zA-Z]+;base64,`)

// Service wraps the Rekognition API
type Service struct {
	client  API
	store   storage.AuditImageStore
	breaker *resilience.CircuitBreaker
	config  ServiceConfig
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Region         string
	LivenessBucket string
	CallTimeout    time.Duration
}

// NewService creates a Rekognition service. A nil client leaves the service unconfigured.
func NewService(client API, store storage.AuditImageStore, breaker *resilience.CircuitBreaker, config ServiceConfig) *Service {
	if config.CallTimeout <= 0 {
		config.CallTimeout = 10 * time.Second
	}
	if breaker == nil {
		breaker = resilience.NewCircuitBreaker(resilience.Settings{Name: "rekognition"}, resilience.DegradeToFallback("rekognition"))
	}

	return &Service{
		client:  client,
		store:   store,
		breaker: breaker,
		config:  config,
	}
}

// IsConfigured reports whether calls reach AWS
func (s *Service) IsConfigured() bool {
	return s.client != nil
}

// Region returns the configured AWS region
func (s *Service) Region() string {
	return s.config.Region
}

func call[T any](ctx context.Context, s *Service, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	if s.client == nil {
		var zero T
		return zero, ErrNotConfigured
	}
	return resilience.Call(ctx, s.breaker, s.config.CallTimeout, "rekognition."+op, fn)
}

// DecodeBase64Image strips an optional data:image/...;base64, prefix and decodes the rest
func DecodeBase64Image(data string) ([]byte, error) {
	raw := dataURIPrefix.ReplaceAllString(strings.TrimSpace(data), "")
	if raw == "" {
		return nil, errors.New("image data is empty")
	}
	img, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image: %w", err)
	}
	return img, nil
}

// ========================================
// CREDENTIALS
// ========================================

// ValidateCredentials makes a cheap call to confirm the credentials work
func (s *Service) ValidateCredentials(ctx context.Context) *CredentialCheck {
	if s.client == nil {
		return &CredentialCheck{Valid: false, Message: "AWS credentials not configured"}
	}

	_, err := call(ctx, s, "list_collections", func(ctx context.Context) (*rekognition.ListCollectionsOutput, error) {
		return s.client.ListCollections(ctx, &rekognition.ListCollectionsInput{MaxResults: aws.Int32(1)})
	})
	if err != nil {
		logger.WithContext(ctx).Warn("AWS credentials validation failed", zap.Error(err))
		return &CredentialCheck{Valid: false, Message: fmt.Sprintf("AWS credentials validation failed: %v", err)}
	}
	return &CredentialCheck{Valid: true, Message: "AWS credentials are valid"}
}

// ========================================
// FACE LIVENESS
// ========================================

// StartLiveness creates a Face Liveness session writing audit images to the liveness bucket
func (s *Service) StartLiveness(ctx context.Context) (*LivenessSession, error) {
	out, err := call(ctx, s, "create_face_liveness_session", func(ctx context.Context) (*rekognition.CreateFaceLivenessSessionOutput, error) {
		return s.client.CreateFaceLivenessSession(ctx, &rekognition.CreateFaceLivenessSessionInput{
			Settings: &types.CreateFaceLivenessSessionRequestSettings{
				AuditImagesLimit: aws.Int32(auditImagesLimit),
				OutputConfig: &types.LivenessOutputConfig{
					S3Bucket:    aws.String(s.config.LivenessBucket),
					S3KeyPrefix: aws.String(storage.AuditPrefix),
				},
			},
		})
	})
	if err != nil {
		return nil, err
	}

	return &LivenessSession{
		SessionID: aws.ToString(out.SessionId),
		Message:   "Liveness detection session started successfully",
	}, nil
}

// LivenessResults fetches a session outcome and presigns its audit images
func (s *Service) LivenessResults(ctx context.Context, sessionID string) (*LivenessSessionResult, error) {
	out, err := call(ctx, s, "get_face_liveness_session_results", func(ctx context.Context) (*rekognition.GetFaceLivenessSessionResultsOutput, error) {
		return s.client.GetFaceLivenessSessionResults(ctx, &rekognition.GetFaceLivenessSessionResultsInput{
			SessionId: aws.String(sessionID),
		})
	})
	if err != nil {
		return nil, err
	}

	result := &LivenessSessionResult{
		SessionID:   aws.ToString(out.SessionId),
		Status:      string(out.Status),
		Confidence:  f64(out.Confidence),
		AuditImages: make([]AuditImage, 0, len(out.AuditImages)),
	}
	for _, img := range out.AuditImages {
		result.AuditImages = append(result.AuditImages, s.auditImage(ctx, img))
	}
	if out.ReferenceImage != nil {
		ref := s.auditImage(ctx, *out.ReferenceImage)
		result.ReferenceImage = &ref
	}

	return result, nil
}

func (s *Service) auditImage(ctx context.Context, img types.AuditImage) AuditImage {
	audit := AuditImage{BoundingBox: convertBoundingBox(img.BoundingBox)}
	if img.S3Object == nil {
		return audit
	}

	audit.Bucket = aws.ToString(img.S3Object.Bucket)
	audit.Key = aws.ToString(img.S3Object.Name)
	if s.store == nil || audit.Key == "" {
		return audit
	}

	exists, err := s.store.Exists(ctx, audit.Key)
	if err != nil || !exists {
		logger.WithContext(ctx).Debug("audit image not available", zap.String("key", audit.Key), zap.Error(err))
		return audit
	}

	download, err := s.store.DownloadLink(ctx, audit.Key, auditURLExpiry)
	if err == nil {
		audit.Download = download
	}
	return audit
}

// ========================================
// FACES
// ========================================

// CompareFaces compares the largest face in source against the faces in target
func (s *Service) CompareFaces(ctx context.Context, source, target []byte, threshold float64) (*CompareResult, error) {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}

	out, err := call(ctx, s, "compare_faces", func(ctx context.Context) (*rekognition.CompareFacesOutput, error) {
		return s.client.CompareFaces(ctx, &rekognition.CompareFacesInput{
			SourceImage:         &types.Image{Bytes: source},
			TargetImage:         &types.Image{Bytes: target},
			SimilarityThreshold: aws.Float32(float32(threshold)),
		})
	})
	if err != nil {
		return nil, err
	}

	if len(out.FaceMatches) == 0 {
		return &CompareResult{FaceMatch: false, Confidence: 0, Message: "No matching faces found"}, nil
	}

	match := out.FaceMatches[0]
	return &CompareResult{
		FaceMatch:  true,
		Confidence: f64(match.Similarity),
		Face:       convertComparedFace(match.Face),
	}, nil
}

// DetectFaceDetails returns the raw face details with all attributes
func (s *Service) DetectFaceDetails(ctx context.Context, image []byte) ([]types.FaceDetail, error) {
	out, err := call(ctx, s, "detect_faces", func(ctx context.Context) (*rekognition.DetectFacesOutput, error) {
		return s.client.DetectFaces(ctx, &rekognition.DetectFacesInput{
			Image:      &types.Image{Bytes: image},
			Attributes: []types.Attribute{types.AttributeAll},
		})
	})
	if err != nil {
		return nil, err
	}
	return out.FaceDetails, nil
}

// DetectFaces lists the faces in an image
func (s *Service) DetectFaces(ctx context.Context, image []byte) (*DetectResult, error) {
	details, err := s.DetectFaceDetails(ctx, image)
	if err != nil {
		return nil, err
	}

	faces := make([]Face, 0, len(details))
	for _, d := range details {
		faces = append(faces, ConvertFaceDetail(d))
	}
	return &DetectResult{FaceCount: len(faces), Faces: faces}, nil
}

// DetectLabels lists up to ten objects or scenes with confidence of at least 75
func (s *Service) DetectLabels(ctx context.Context, image []byte) (*LabelResult, error) {
	out, err := call(ctx, s, "detect_labels", func(ctx context.Context) (*rekognition.DetectLabelsOutput, error) {
		return s.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
			Image:         &types.Image{Bytes: image},
			MaxLabels:     aws.Int32(10),
			MinConfidence: aws.Float32(75),
		})
	})
	if err != nil {
		return nil, err
	}
	return &LabelResult{Labels: convertLabels(out.Labels)}, nil
}

// ValidateImageQuality checks that the image holds exactly one well lit, sharp face with open eyes
func (s *Service) ValidateImageQuality(ctx context.Context, image []byte) (*QualityCheck, error) {
	detected, err := s.DetectFaces(ctx, image)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return nil, err
		}
		return &QualityCheck{Valid: false, Message: "Error validating image quality: " + err.Error()}, nil
	}

	return assessQuality(detected), nil
}

func assessQuality(detected *DetectResult) *QualityCheck {
	switch {
	case detected.FaceCount == 0:
		return &QualityCheck{Valid: false, Message: "No faces detected in the image"}
	case detected.FaceCount > 1:
		return &QualityCheck{Valid: false, Message: "Multiple faces detected. Please ensure only one face is visible."}
	}

	face := detected.Faces[0]
	var quality Quality
	if face.Quality != nil {
		quality = *face.Quality
	}

	if quality.Brightness < minBrightness || quality.Brightness > maxBrightness {
		return &QualityCheck{Valid: false, Message: "Image brightness is not optimal. Please ensure good lighting."}
	}
	if quality.Sharpness < minSharpness {
		return &QualityCheck{Valid: false, Message: "Image is not sharp enough. Please ensure the camera is in focus."}
	}
	if face.EyesOpen == nil || !face.EyesOpen.Value {
		return &QualityCheck{Valid: false, Message: "Please keep your eyes open during capture."}
	}

	return &QualityCheck{Valid: true, Message: "Image quality is acceptable", Face: &face}
}

// ========================================
// COLLECTIONS
// ========================================

// CreateCollection creates a face collection
func (s *Service) CreateCollection(ctx context.Context, collectionID string) (*Collection, error) {
	out, err := call(ctx, s, "create_collection", func(ctx context.Context) (*rekognition.CreateCollectionOutput, error) {
		return s.client.CreateCollection(ctx, &rekognition.CreateCollectionInput{
			CollectionId: aws.String(collectionID),
		})
	})
	if err != nil {
		return nil, err
	}

	return &Collection{
		CollectionArn:    aws.ToString(out.CollectionArn),
		FaceModelVersion: aws.ToString(out.FaceModelVersion),
		StatusCode:       int(aws.ToInt32(out.StatusCode)),
	}, nil
}

// IndexFace stores the single largest face of image in a collection
func (s *Service) IndexFace(ctx context.Context, image []byte, collectionID, externalImageID string) (*IndexResult, error) {
	out, err := call(ctx, s, "index_faces", func(ctx context.Context) (*rekognition.IndexFacesOutput, error) {
		return s.client.IndexFaces(ctx, &rekognition.IndexFacesInput{
			CollectionId:        aws.String(collectionID),
			Image:               &types.Image{Bytes: image},
			ExternalImageId:     aws.String(externalImageID),
			MaxFaces:            aws.Int32(1),
			QualityFilter:       types.QualityFilterAuto,
			DetectionAttributes: []types.Attribute{types.AttributeAll},
		})
	})
	if err != nil {
		return nil, err
	}

	return &IndexResult{
		FaceRecords:           convertFaceRecords(out.FaceRecords),
		OrientationCorrection: string(out.OrientationCorrection),
		FaceModelVersion:      aws.ToString(out.FaceModelVersion),
		UnindexedFaces:        len(out.UnindexedFaces),
	}, nil
}

// SearchFaces searches a collection for faces matching the largest face in image
func (s *Service) SearchFaces(ctx context.Context, image []byte, collectionID string, threshold float64, maxFaces int) (*SearchResult, error) {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	if maxFaces <= 0 {
		maxFaces = DefaultMaxFaces
	}

	out, err := call(ctx, s, "search_faces_by_image", func(ctx context.Context) (*rekognition.SearchFacesByImageOutput, error) {
		return s.client.SearchFacesByImage(ctx, &rekognition.SearchFacesByImageInput{
			CollectionId:       aws.String(collectionID),
			Image:              &types.Image{Bytes: image},
			FaceMatchThreshold: aws.Float32(float32(threshold)),
			MaxFaces:           aws.Int32(int32(maxFaces)),
		})
	})
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		FaceMatches:             convertFaceMatches(out.FaceMatches),
		SearchedFaceBoundingBox: convertBoundingBox(out.SearchedFaceBoundingBox),
		SearchedFaceConfidence:  f64(out.SearchedFaceConfidence),
	}, nil
}
