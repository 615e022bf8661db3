package documents

import (
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/kyc-nova/internal/authenticity"
	"github.com/richxcame/kyc-nova/internal/extraction"
)

// MaxFileSizeMB is the default upload limit for documents
const MaxFileSizeMB = 10

// MsgUnsupportedType is returned for uploads of the wrong type
const MsgUnsupportedType = "Only images (JPEG, PNG) and PDF files are allowed"

// allowedMimeTypes are matched against the declared content type
var allowedMimeTypes = []string{"image/jpeg", "image/jpg", "image/png", "application/pdf"}

// Fallback field values used when no OCR text is available
const (
	fallbackName        = "Sample User"
	fallbackDateOfBirth = "1990-01-15"
	fallbackExpiryDate  = "2028-01-15"
	fallbackNationality = "United States"
)

// Result is the outcome of processing one identity document
type Result struct {
	Success          bool                                 `json:"success"`
	DocumentID       uuid.UUID                            `json:"documentId"`
	FileName         string                               `json:"fileName"`
	Confidence       float64                              `json:"confidence"`
	DocumentType     extraction.DocumentType              `json:"documentType"`
	ExtractedData    extraction.Fields                    `json:"extractedData"`
	FieldsExtracted  bool                                 `json:"fieldsExtracted"`
	SecurityFeatures map[string]authenticity.FeatureCheck `json:"securityFeatures"`
	RiskScore        float64                              `json:"riskScore"`
	Source           authenticity.Source                  `json:"source"`
	ProcessingTimeMs int64                                `json:"processingTime"`
	ProcessedAt      time.Time                            `json:"processedAt"`
	FallbackReason   string                               `json:"fallbackReason,omitempty"`
}
