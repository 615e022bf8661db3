package rekognition

import (
	"github.com/richxcame/kyc-nova/pkg/storage"
)

// BoundingBox is a face position as a ratio of the image size
type BoundingBox struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
}

// Quality holds the image quality of a detected face
type Quality struct {
	Brightness float64 `json:"brightness"`
	Sharpness  float64 `json:"sharpness"`
}

// Attribute is a boolean face attribute with its confidence
type Attribute struct {
	Value      bool    `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Emotion is one detected emotion
type Emotion struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// Pose is the head orientation in degrees
type Pose struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
}

// AgeRange is the estimated age bracket
type AgeRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Face is the service's view of a Rekognition face detail
type Face struct {
	BoundingBox *BoundingBox `json:"boundingBox,omitempty"`
	Confidence  float64      `json:"confidence"`
	Landmarks   int          `json:"landmarks"`
	Quality     *Quality     `json:"quality,omitempty"`
	Pose        *Pose        `json:"pose,omitempty"`
	Emotions    []Emotion    `json:"emotions,omitempty"`
	AgeRange    *AgeRange    `json:"ageRange,omitempty"`
	Gender      string       `json:"gender,omitempty"`
	EyesOpen    *Attribute   `json:"eyesOpen,omitempty"`
	MouthOpen   *Attribute   `json:"mouthOpen,omitempty"`
	Mustache    *Attribute   `json:"mustache,omitempty"`
	Beard       *Attribute   `json:"beard,omitempty"`
	Eyeglasses  *Attribute   `json:"eyeglasses,omitempty"`
	Sunglasses  *Attribute   `json:"sunglasses,omitempty"`
	Smile       *Attribute   `json:"smile,omitempty"`
}

// CredentialCheck is the result of a credential probe
type CredentialCheck struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// LivenessSession is a freshly created Face Liveness session
type LivenessSession struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// AuditImage points at one image Rekognition stored for a session
type AuditImage struct {
	Bucket      string                `json:"bucket,omitempty"`
	Key         string                `json:"key,omitempty"`
	Download    *storage.DownloadLink `json:"download,omitempty"`
	BoundingBox *BoundingBox          `json:"boundingBox,omitempty"`
}

// LivenessSessionResult is the outcome of a Face Liveness session
type LivenessSessionResult struct {
	SessionID      string       `json:"sessionId"`
	Status         string       `json:"status"`
	Confidence     float64      `json:"confidence"`
	AuditImages    []AuditImage `json:"auditImages"`
	ReferenceImage *AuditImage  `json:"referenceImage,omitempty"`
}

// Succeeded reports whether Rekognition finished the session
func (r *LivenessSessionResult) Succeeded() bool {
	return r.Status == "SUCCEEDED"
}

// CompareResult is the outcome of a face comparison
type CompareResult struct {
	FaceMatch  bool    `json:"faceMatch"`
	Confidence float64 `json:"confidence"`
	Face       *Face   `json:"face,omitempty"`
	Message    string  `json:"message,omitempty"`
}

// DetectResult lists the faces found in an image
type DetectResult struct {
	FaceCount int    `json:"faceCount"`
	Faces     []Face `json:"faces"`
}

// Label is a detected object or scene
type Label struct {
	Name       string   `json:"name"`
	Confidence float64  `json:"confidence"`
	Categories []string `json:"categories,omitempty"`
	Instances  int      `json:"instances"`
}

// LabelResult lists detected labels
type LabelResult struct {
	Labels []Label `json:"labels"`
}

// FaceMatch is one collection match
type FaceMatch struct {
	Similarity      float64      `json:"similarity"`
	FaceID          string       `json:"faceId"`
	ExternalImageID string       `json:"externalImageId,omitempty"`
	Confidence      float64      `json:"confidence"`
	BoundingBox     *BoundingBox `json:"boundingBox,omitempty"`
}

// SearchResult is the outcome of a collection search
type SearchResult struct {
	FaceMatches             []FaceMatch  `json:"faceMatches"`
	SearchedFaceBoundingBox *BoundingBox `json:"searchedFaceBoundingBox,omitempty"`
	SearchedFaceConfidence  float64      `json:"searchedFaceConfidence"`
}

// Collection describes a created face collection
type Collection struct {
	CollectionArn    string `json:"collectionArn"`
	FaceModelVersion string `json:"faceModelVersion"`
	StatusCode       int    `json:"statusCode"`
}

// IndexedFace is a face stored in a collection
type IndexedFace struct {
	FaceID          string  `json:"faceId"`
	ExternalImageID string  `json:"externalImageId"`
	Confidence      float64 `json:"confidence"`
	Detail          *Face   `json:"faceDetail,omitempty"`
}

// IndexResult is the outcome of indexing a face
type IndexResult struct {
	FaceRecords           []IndexedFace `json:"faceRecords"`
	OrientationCorrection string        `json:"orientationCorrection,omitempty"`
	FaceModelVersion      string        `json:"faceModelVersion"`
	UnindexedFaces        int           `json:"unindexedFaces"`
}

// QualityCheck reports whether an image is good enough for face matching
type QualityCheck struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
	Face    *Face  `json:"faceDetails,omitempty"`
}

// ========================================
// REQUESTS
// ========================================

// CompareFacesBase64Request compares two base64 images
type CompareFacesBase64Request struct {
	SourceImage string  `json:"sourceImage" binding:"required" validate:"image_data"`
	TargetImage string  `json:"targetImage" binding:"required" validate:"image_data"`
	Threshold   float64 `json:"threshold" validate:"omitempty,score"`
}

// ImageRequest carries a single base64 image
type ImageRequest struct {
	Image string `json:"image" binding:"required" validate:"image_data"`
}

// CreateCollectionRequest creates a face collection
type CreateCollectionRequest struct {
	CollectionID string `json:"collectionId" binding:"required" validate:"collection_id"`
}

// IndexFaceRequest adds a face to a collection
type IndexFaceRequest struct {
	Image           string `json:"image" binding:"required" validate:"image_data"`
	CollectionID    string `json:"collectionId" binding:"required" validate:"collection_id"`
	ExternalImageID string `json:"externalImageId" binding:"required" validate:"max=255"`
}

// SearchFacesRequest searches a collection
type SearchFacesRequest struct {
	Image        string  `json:"image" binding:"required" validate:"image_data"`
	CollectionID string  `json:"collectionId" binding:"required" validate:"collection_id"`
	Threshold    float64 `json:"threshold" validate:"omitempty,score"`
	MaxFaces     int     `json:"maxFaces" validate:"omitempty,min=1,max=4096"`
}
