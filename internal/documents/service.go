package documents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/kyc-nova/internal/extraction"
	"github.com/richxcame/kyc-nova/internal/scoring"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"github.com/richxcame/kyc-nova/pkg/storage"
	"go.uber.org/zap"
)

var documentNumberRange = scoring.Range{Min: 0, Max: 999999}

// Service handles identity document processing
type Service struct {
	authenticator Authenticator
	scorer        scoring.Scorer
	config        ServiceConfig
	now           func() time.Time
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	MaxFileSizeMB    int
	AllowedMimeTypes []string
}

// NewService creates a new documents service
func NewService(authenticator Authenticator, scorer scoring.Scorer, config ServiceConfig) *Service {
	if config.MaxFileSizeMB == 0 {
		config.MaxFileSizeMB = MaxFileSizeMB
	}
	if len(config.AllowedMimeTypes) == 0 {
		config.AllowedMimeTypes = allowedMimeTypes
	}

	return &Service{
		authenticator: authenticator,
		scorer:        scorer,
		config:        config,
		now:           time.Now,
	}
}

// MaxUploadBytes returns the upload limit in bytes
func (s *Service) MaxUploadBytes() int64 {
	return int64(s.config.MaxFileSizeMB) * 1024 * 1024
}

// ValidateUpload checks size, extension and declared content type
func (s *Service) ValidateUpload(upload *common.Upload) error {
	if upload == nil || len(upload.Data) == 0 {
		return common.NewBadRequestError("No file provided", nil)
	}
	if upload.Size > s.MaxUploadBytes() {
		return common.NewPayloadTooLargeError(fmt.Sprintf("file size exceeds maximum of %d MB", s.config.MaxFileSizeMB))
	}

	if _, ok := storage.DocumentMimeType(upload.Filename); !ok {
		return common.NewBadRequestError(MsgUnsupportedType, nil)
	}
	contentType := strings.TrimSpace(strings.Split(upload.ContentType, ";")[0])
	if !storage.MimeAllowed(contentType, s.config.AllowedMimeTypes) {
		return common.NewBadRequestError(MsgUnsupportedType, nil)
	}
	return nil
}

// ========================================
// PROCESSING
// ========================================

// Process scores authenticity, extracts fields from the OCR text and classifies the document.
// Without OCR text the demo field set is returned.
func (s *Service) Process(ctx context.Context, upload *common.Upload) (*Result, error) {
	if err := s.ValidateUpload(upload); err != nil {
		return nil, err
	}

	start := s.now()
	auth, err := s.authenticator.Score(ctx, upload.Data)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Success:          true,
		DocumentID:       uuid.New(),
		FileName:         upload.Filename,
		Confidence:       auth.Confidence,
		SecurityFeatures: auth.Features,
		Source:           auth.Source,
		FallbackReason:   auth.FallbackReason,
	}

	if strings.TrimSpace(auth.OCRText) != "" {
		result.ExtractedData = extraction.Extract(auth.OCRText)
		result.DocumentType = extraction.ClassifyDocument(auth.OCRText)
		result.FieldsExtracted = result.ExtractedData.Count() > 0
	} else {
		result.ExtractedData = s.fallbackFields()
		result.DocumentType = extraction.DocumentDriverLicense
	}

	result.RiskScore = extraction.DocumentRisk(result.ExtractedData, auth.Confidence)
	result.ProcessedAt = s.now().UTC()
	result.ProcessingTimeMs = auth.ProcessingTimeMs
	if result.ProcessingTimeMs == 0 {
		result.ProcessingTimeMs = s.now().Sub(start).Milliseconds()
	}

	logger.WithContext(ctx).Info("document processed",
		zap.String("document_id", result.DocumentID.String()),
		zap.String("document_type", string(result.DocumentType)),
		zap.Float64("confidence", result.Confidence),
		zap.Float64("risk_score", result.RiskScore),
		zap.String("source", string(result.Source)),
	)

	return result, nil
}

func (s *Service) fallbackFields() extraction.Fields {
	name := fallbackName
	number := fmt.Sprintf("DL%d", scoring.Int(s.scorer, documentNumberRange))
	dob := fallbackDateOfBirth
	expiry := fallbackExpiryDate
	nationality := fallbackNationality

	return extraction.Fields{
		Name:           &name,
		DocumentNumber: &number,
		DateOfBirth:    &dob,
		ExpiryDate:     &expiry,
		Nationality:    &nationality,
	}
}
