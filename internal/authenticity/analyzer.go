package authenticity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/richxcame/kyc-nova/internal/scoring"
)

// ErrNoText is returned when OCR finds no text lines in the document
var ErrNoText = errors.New("no text lines detected in document")

// FallbackRange bounds the synthetic document confidence
var FallbackRange = scoring.Range{Min: 92, Max: 98}

// TextractAnalyzer scores a document from Textract line confidences
type TextractAnalyzer struct {
	client TextractAPI
}

// NewTextractAnalyzer creates a Textract-backed analyzer
func NewTextractAnalyzer(client TextractAPI) *TextractAnalyzer {
	return &TextractAnalyzer{client: client}
}

// Analyze runs DetectDocumentText and averages the LINE block confidences
func (a *TextractAnalyzer) Analyze(ctx context.Context, image []byte) (*Result, error) {
	out, err := a.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: image},
	})
	if err != nil {
		return nil, fmt.Errorf("textract API call failed: %w", err)
	}

	var text strings.Builder
	var total float64
	var lines int

	for _, block := range out.Blocks {
		if block.BlockType != types.BlockTypeLine {
			continue
		}
		if block.Text != nil {
			text.WriteString(aws.ToString(block.Text))
			text.WriteString("\n")
		}
		if block.Confidence != nil {
			total += float64(aws.ToFloat32(block.Confidence))
			lines++
		}
	}

	if lines == 0 {
		return nil, ErrNoText
	}

	confidence := scoring.Round1(scoring.ClampPercent(total / float64(lines)))
	return &Result{
		Confidence: confidence,
		Features:   checkFeatures(confidence, true),
		Source:     SourceTextract,
		OCRText:    text.String(),
	}, nil
}

// FallbackAnalyzer synthesizes a passing result without looking at the image
type FallbackAnalyzer struct {
	scorer scoring.Scorer
}

// NewFallbackAnalyzer creates the demo analyzer
func NewFallbackAnalyzer(scorer scoring.Scorer) *FallbackAnalyzer {
	return &FallbackAnalyzer{scorer: scorer}
}

// Analyze never fails
func (a *FallbackAnalyzer) Analyze(_ context.Context, _ []byte) (*Result, error) {
	confidence := scoring.Round1(a.scorer.Score(FallbackRange))
	return &Result{
		Confidence: confidence,
		Features:   checkFeatures(confidence, true),
		Source:     SourceFallback,
	}, nil
}
