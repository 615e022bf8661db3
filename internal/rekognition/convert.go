package rekognition

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

func f64(v *float32) float64 {
	return float64(aws.ToFloat32(v))
}

func convertBoundingBox(b *types.BoundingBox) *BoundingBox {
	if b == nil {
		return nil
	}
	return &BoundingBox{
		Width:  f64(b.Width),
		Height: f64(b.Height),
		Left:   f64(b.Left),
		Top:    f64(b.Top),
	}
}

func convertQuality(q *types.ImageQuality) *Quality {
	if q == nil {
		return nil
	}
	return &Quality{Brightness: f64(q.Brightness), Sharpness: f64(q.Sharpness)}
}

func convertPose(p *types.Pose) *Pose {
	if p == nil {
		return nil
	}
	return &Pose{Yaw: f64(p.Yaw), Pitch: f64(p.Pitch), Roll: f64(p.Roll)}
}

func convertEmotions(in []types.Emotion) []Emotion {
	if len(in) == 0 {
		return nil
	}
	out := make([]Emotion, 0, len(in))
	for _, e := range in {
		out = append(out, Emotion{Type: string(e.Type), Confidence: f64(e.Confidence)})
	}
	return out
}

func attr(value bool, confidence *float32) *Attribute {
	return &Attribute{Value: value, Confidence: f64(confidence)}
}

// ConvertFaceDetail maps a Rekognition FaceDetail to a Face
func ConvertFaceDetail(d types.FaceDetail) Face {
	face := Face{
		BoundingBox: convertBoundingBox(d.BoundingBox),
		Confidence:  f64(d.Confidence),
		Landmarks:   len(d.Landmarks),
		Quality:     convertQuality(d.Quality),
		Pose:        convertPose(d.Pose),
		Emotions:    convertEmotions(d.Emotions),
	}

	if d.AgeRange != nil {
		face.AgeRange = &AgeRange{Low: int(aws.ToInt32(d.AgeRange.Low)), High: int(aws.ToInt32(d.AgeRange.High))}
	}
	if d.Gender != nil {
		face.Gender = string(d.Gender.Value)
	}
	if d.EyesOpen != nil {
		face.EyesOpen = attr(d.EyesOpen.Value, d.EyesOpen.Confidence)
	}
	if d.MouthOpen != nil {
		face.MouthOpen = attr(d.MouthOpen.Value, d.MouthOpen.Confidence)
	}
	if d.Mustache != nil {
		face.Mustache = attr(d.Mustache.Value, d.Mustache.Confidence)
	}
	if d.Beard != nil {
		face.Beard = attr(d.Beard.Value, d.Beard.Confidence)
	}
	if d.Eyeglasses != nil {
		face.Eyeglasses = attr(d.Eyeglasses.Value, d.Eyeglasses.Confidence)
	}
	if d.Sunglasses != nil {
		face.Sunglasses = attr(d.Sunglasses.Value, d.Sunglasses.Confidence)
	}
	if d.Smile != nil {
		face.Smile = attr(d.Smile.Value, d.Smile.Confidence)
	}

	return face
}

func convertComparedFace(c *types.ComparedFace) *Face {
	if c == nil {
		return nil
	}
	face := &Face{
		BoundingBox: convertBoundingBox(c.BoundingBox),
		Confidence:  f64(c.Confidence),
		Landmarks:   len(c.Landmarks),
		Quality:     convertQuality(c.Quality),
		Pose:        convertPose(c.Pose),
		Emotions:    convertEmotions(c.Emotions),
	}
	if c.Smile != nil {
		face.Smile = attr(c.Smile.Value, c.Smile.Confidence)
	}
	return face
}

func convertLabels(in []types.Label) []Label {
	out := make([]Label, 0, len(in))
	for _, l := range in {
		label := Label{
			Name:       aws.ToString(l.Name),
			Confidence: f64(l.Confidence),
			Instances:  len(l.Instances),
		}
		for _, c := range l.Categories {
			label.Categories = append(label.Categories, aws.ToString(c.Name))
		}
		out = append(out, label)
	}
	return out
}

func convertFaceMatches(in []types.FaceMatch) []FaceMatch {
	out := make([]FaceMatch, 0, len(in))
	for _, m := range in {
		match := FaceMatch{Similarity: f64(m.Similarity)}
		if m.Face != nil {
			match.FaceID = aws.ToString(m.Face.FaceId)
			match.ExternalImageID = aws.ToString(m.Face.ExternalImageId)
			match.Confidence = f64(m.Face.Confidence)
			match.BoundingBox = convertBoundingBox(m.Face.BoundingBox)
		}
		out = append(out, match)
	}
	return out
}

func convertFaceRecords(in []types.FaceRecord) []IndexedFace {
	out := make([]IndexedFace, 0, len(in))
	for _, r := range in {
		var indexed IndexedFace
		if r.Face != nil {
			indexed.FaceID = aws.ToString(r.Face.FaceId)
			indexed.ExternalImageID = aws.ToString(r.Face.ExternalImageId)
			indexed.Confidence = f64(r.Face.Confidence)
		}
		if r.FaceDetail != nil {
			detail := ConvertFaceDetail(*r.FaceDetail)
			indexed.Detail = &detail
		}
		out = append(out, indexed)
	}
	return out
}
