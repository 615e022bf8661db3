package liveness

import (
	"strings"

	"github.com/richxcame/kyc-nova/internal/scoring"
)

// Encoded-length limits for the frame heuristics
const (
	minFrameLength   = 2000
	smallFrameLength = 5000
	largeFrameLength = 50000
)

// Probability that a frame of the given size is flagged as a static photo
const (
	largePhotoChance  = 0.7
	smallPhotoChance  = 0.2
	mediumPhotoChance = 0.3
)

// FrameClassifier buckets a frame into a scenario from its encoded form alone.
// It does no image analysis: the photo decision is a weighted draw on the scorer.
type FrameClassifier struct {
	scorer scoring.Scorer
}

// NewFrameClassifier creates a classifier drawing on scorer
func NewFrameClassifier(scorer scoring.Scorer) *FrameClassifier {
	return &FrameClassifier{scorer: scorer}
}

// Classify labels one frame
func (c *FrameClassifier) Classify(frame Frame) Scenario {
	data := frame.Data
	if data == "" || data == "data:," {
		return ScenarioBlocked
	}

	length := frame.Length()
	if !strings.HasPrefix(data, "data:image") || length < minFrameLength {
		return ScenarioBlocked
	}

	if scoring.Chance(c.scorer, photoChance(length)) {
		return ScenarioPhoto
	}
	return ScenarioNormal
}

// ClassifyAll labels every frame from its data and returns the tagged copy.
// Any scenario already set on a frame is overwritten.
func (c *FrameClassifier) ClassifyAll(frames []Frame) []Frame {
	tagged := make([]Frame, len(frames))
	for i, f := range frames {
		f.Scenario = c.Classify(f)
		tagged[i] = f
	}
	return tagged
}

func photoChance(length int) float64 {
	switch {
	case length > largeFrameLength:
		return largePhotoChance
	case length < smallFrameLength:
		return smallPhotoChance
	default:
		return mediumPhotoChance
	}
}
