package documents

import (
	"context"

	"github.com/richxcame/kyc-nova/internal/authenticity"
)

// Authenticator scores a document image and returns its OCR text when available
type Authenticator interface {
	Score(ctx context.Context, image []byte) (*authenticity.Result, error)
}

// Recorder counts processed documents
type Recorder interface {
	RecordDocument(ctx context.Context)
}

// Ensure the authenticity service implements Authenticator
var _ Authenticator = (*authenticity.Service)(nil)
