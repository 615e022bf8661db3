package aadhaar

// Source identifies where extracted Aadhaar data came from
type Source string

const (
	SourceRealAPI  Source = "real_api"
	SourceFallback Source = "fallback_demo"
)

// APIVersion is sent on every request to the extraction API
const APIVersion = "2.0"

const (
	fallbackAPIVersion       = "fallback-v1.0"
	fallbackExtractionMethod = "OCR + Pattern Recognition"
)

// requestedFields are the fields asked of the extraction API
var requestedFields = []string{"name", "dob", "address", "aadhaar_number"}

// Data holds the identity fields read from an Aadhaar card
type Data struct {
	Name          string `json:"name"`
	DateOfBirth   string `json:"dateOfBirth"`
	Address       string `json:"address"`
	AadhaarNumber string `json:"aadhaarNumber"`
	FatherName    string `json:"fatherName,omitempty"`
	Gender        string `json:"gender,omitempty"`
}

// ScanMetadata describes how the data was extracted
type ScanMetadata struct {
	Confidence       float64 `json:"confidence"`
	ProcessingTimeMs int64   `json:"processingTime"`
	APIVersion       string  `json:"apiVersion"`
	ExtractionMethod string  `json:"extractionMethod,omitempty"`
}

// Result is the outcome of an Aadhaar extraction
type Result struct {
	Success        bool         `json:"success"`
	Source         Source       `json:"source"`
	Data           Data         `json:"aadhaarData"`
	Metadata       ScanMetadata `json:"scanMetadata"`
	FallbackReason string       `json:"fallbackReason,omitempty"`
}

// IsFallback reports whether the data is the demo data set
func (r *Result) IsFallback() bool {
	return r.Source == SourceFallback
}

// Extraction is the parsed response of the extraction API
type Extraction struct {
	Data             Data
	Confidence       float64
	ProcessingTimeMs int64
	APIVersion       string
}

// apiResponse is the wire format of the extraction API
type apiResponse struct {
	ExtractedData struct {
		Name          string `json:"name"`
		DOB           string `json:"dob"`
		Address       string `json:"address"`
		AadhaarNumber string `json:"aadhaar_number"`
		FatherName    string `json:"father_name"`
		Gender        string `json:"gender"`
	} `json:"extracted_data"`
	ConfidenceScore  float64 `json:"confidence_score"`
	ProcessingTimeMs int64   `json:"processing_time_ms"`
	APIVersion       string  `json:"api_version"`
}

// fallbackData is returned whenever the extraction API cannot be used
var fallbackData = Data{
	Name:          "Neha",
	DateOfBirth:   "26/01/2000",
	Address:       "Plot 123, Banjara Hills, Hyderabad, Telangana 500034, India",
	AadhaarNumber: "1234-5678-9012",
	FatherName:    "Rajesh Kumar",
	Gender:        "Female",
}

// FallbackData returns a copy of the demo data set
func FallbackData() Data {
	return fallbackData
}
