package authenticity

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/textract"
)

// Analyzer produces an authenticity verdict for a document image
type Analyzer interface {
	Analyze(ctx context.Context, image []byte) (*Result, error)
}

// TextractAPI is the subset of the Textract client used here
type TextractAPI interface {
	DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

// Ensure implementations satisfy Analyzer
var (
	_ Analyzer    = (*TextractAnalyzer)(nil)
	_ Analyzer    = (*FallbackAnalyzer)(nil)
	_ TextractAPI = (*textract.Client)(nil)
)
