package kyc

import (
	"github.com/richxcame/kyc-nova/internal/aadhaar"
	"github.com/richxcame/kyc-nova/internal/authenticity"
	"github.com/richxcame/kyc-nova/internal/biometrics"
	"github.com/richxcame/kyc-nova/internal/liveness"
	"github.com/richxcame/kyc-nova/pkg/common"
)

// Mode labels reported by /api/health
const (
	ModeRealAPI  = "real_api"
	ModeAWSReal  = "aws_real"
	ModeFallback = "fallback"

	StatusConnected     = "connected"
	StatusFallbackReady = "fallback_ready"

	fallbackEndpoint = "mock://fallback"
)

// Components holds the mode of every externally backed component
type Components struct {
	Aadhaar         aadhaar.Source
	AadhaarEndpoint string
	Rekognition     biometrics.Source
	Region          string
	Documents       authenticity.Source
	Liveness        liveness.Source
}

// Services lists the online modules. Every module has a fallback, so all of them are always online.
func Services() map[string]string {
	return map[string]string{
		"documentProcessing": "Online",
		"faceRecognition":    "Online",
		"trustScoring":       "Online",
		"nlp":                "Online",
	}
}

// ComponentModes reports, per component, whether it calls its provider or serves fallback data
func ComponentModes(c Components) map[string]common.ComponentMode {
	modes := make(map[string]common.ComponentMode, 4)

	aadhaarMode := common.ComponentMode{Mode: ModeFallback, Status: StatusFallbackReady, Endpoint: fallbackEndpoint}
	if c.Aadhaar == aadhaar.SourceRealAPI {
		aadhaarMode = common.ComponentMode{Mode: ModeRealAPI, Status: StatusConnected, Endpoint: c.AadhaarEndpoint}
	}
	modes["aadhaar"] = aadhaarMode

	rekognitionMode := common.ComponentMode{Mode: ModeFallback, Status: StatusFallbackReady, Region: c.Region}
	if c.Rekognition == biometrics.SourceRekognition {
		rekognitionMode.Mode = ModeAWSReal
		rekognitionMode.Status = StatusConnected
	}
	modes["rekognition"] = rekognitionMode

	modes["textract"] = sourceMode(string(c.Documents), c.Documents != authenticity.SourceFallback, c.Region)
	modes["liveness"] = sourceMode(string(c.Liveness), c.Liveness != liveness.SourceFallback, c.Region)

	return modes
}

func sourceMode(source string, external bool, region string) common.ComponentMode {
	if !external || source == "" {
		return common.ComponentMode{Mode: ModeFallback, Status: StatusFallbackReady}
	}
	return common.ComponentMode{Mode: source, Status: StatusConnected, Region: region}
}
