package authenticity

// Source tags which path produced a Result
type Source string

const (
	SourceTextract Source = "textract"
	SourceFallback Source = "fallback_demo"
)

// Security feature names
const (
	FeatureHologram  = "hologram"
	FeatureMicrotext = "microtext"
	FeatureUV        = "uvFeatures"
	FeatureBarcode   = "barcodeData"
)

// featureThresholds lists each security feature with the confidence it must exceed to count as authentic
var featureThresholds = []struct {
	name      string
	threshold float64
}{
	{FeatureHologram, 95},
	{FeatureMicrotext, 93},
	{FeatureUV, 90},
	{FeatureBarcode, 94},
}

// FeatureCheck is the outcome of one security feature check
type FeatureCheck struct {
	Detected  bool    `json:"detected"`
	Authentic bool    `json:"authentic"`
	Threshold float64 `json:"threshold"`
}

// Result is the document authenticity verdict
type Result struct {
	Confidence       float64                 `json:"confidence"`
	Features         map[string]FeatureCheck `json:"securityFeatures"`
	Source           Source                  `json:"source"`
	OCRText          string                  `json:"ocrText,omitempty"`
	ProcessingTimeMs int64                   `json:"processingTime"`
	FallbackReason   string                  `json:"fallbackReason,omitempty"`
}

// IsFallback reports whether the result was synthesized
func (r *Result) IsFallback() bool {
	return r.Source == SourceFallback
}

// AuthenticFeatures counts the features that passed
func (r *Result) AuthenticFeatures() int {
	n := 0
	for _, f := range r.Features {
		if f.Detected && f.Authentic {
			n++
		}
	}
	return n
}

// checkFeatures grades every security feature against confidence
func checkFeatures(confidence float64, detected bool) map[string]FeatureCheck {
	features := make(map[string]FeatureCheck, len(featureThresholds))
	for _, f := range featureThresholds {
		features[f.name] = FeatureCheck{
			Detected:  detected,
			Authentic: detected && confidence > f.threshold,
			Threshold: f.threshold,
		}
	}
	return features
}
