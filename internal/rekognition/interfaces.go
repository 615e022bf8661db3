package rekognition

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
)

// API is the subset of the Rekognition client the service uses
type API interface {
	ListCollections(ctx context.Context, params *rekognition.ListCollectionsInput, optFns ...func(*rekognition.Options)) (*rekognition.ListCollectionsOutput, error)
	CreateFaceLivenessSession(ctx context.Context, params *rekognition.CreateFaceLivenessSessionInput, optFns ...func(*rekognition.Options)) (*rekognition.CreateFaceLivenessSessionOutput, error)
	GetFaceLivenessSessionResults(ctx context.Context, params *rekognition.GetFaceLivenessSessionResultsInput, optFns ...func(*rekognition.Options)) (*rekognition.GetFaceLivenessSessionResultsOutput, error)
	CompareFaces(ctx context.Context, params *rekognition.CompareFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.CompareFacesOutput, error)
	DetectFaces(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error)
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
	SearchFacesByImage(ctx context.Context, params *rekognition.SearchFacesByImageInput, optFns ...func(*rekognition.Options)) (*rekognition.SearchFacesByImageOutput, error)
	CreateCollection(ctx context.Context, params *rekognition.CreateCollectionInput, optFns ...func(*rekognition.Options)) (*rekognition.CreateCollectionOutput, error)
	IndexFaces(ctx context.Context, params *rekognition.IndexFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.IndexFacesOutput, error)
}

// Ensure the SDK client implements API
var _ API = (*rekognition.Client)(nil)
