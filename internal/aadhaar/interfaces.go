package aadhaar

import "context"

// Extractor reads identity fields from an Aadhaar card image
type Extractor interface {
	Extract(ctx context.Context, image []byte) (*Extraction, error)
}

// Ensure APIClient implements Extractor
var _ Extractor = (*APIClient)(nil)
