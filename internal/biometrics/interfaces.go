package biometrics

import (
	"context"

	"github.com/richxcame/kyc-nova/internal/rekognition"
)

// FaceComparer compares the face in source against the faces in target
type FaceComparer interface {
	CompareFaces(ctx context.Context, source, target []byte, threshold float64) (*rekognition.CompareResult, error)
}

// Ensure the Rekognition service can back face verification
var _ FaceComparer = (*rekognition.Service)(nil)
