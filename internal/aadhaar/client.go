package aadhaar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/richxcame/kyc-nova/pkg/httpclient"
)

// ErrEmptyExtraction is returned when the API answers without any identity fields
var ErrEmptyExtraction = errors.New("aadhaar API returned no extracted data")

// APIClient calls the Aadhaar extraction API
type APIClient struct {
	http   *httpclient.Client
	apiKey string
}

// NewAPIClient creates a client for endpoint, the full extraction URL
func NewAPIClient(endpoint, apiKey string, timeout time.Duration) *APIClient {
	return &APIClient{
		http:   httpclient.NewClient(endpoint, timeout),
		apiKey: apiKey,
	}
}

// Extract uploads the card image and parses the extracted fields
func (c *APIClient) Extract(ctx context.Context, image []byte) (*Extraction, error) {
	fields, err := json.Marshal(requestedFields)
	if err != nil {
		return nil, err
	}

	body, err := c.http.PostMultipart(ctx, httpclient.Upload{
		Files:  []httpclient.FilePart{{Field: "aadhaar_image", Filename: "aadhaar.jpg", Data: image}},
		Fields: map[string]string{"extract_fields": string(fields)},
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
			"X-API-Version": APIVersion,
		},
	})
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			return nil, fmt.Errorf("aadhaar API error: %d %s", statusErr.StatusCode, statusErr.Status)
		}
		return nil, fmt.Errorf("aadhaar API call failed: %w", err)
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode aadhaar API response: %w", err)
	}

	d := resp.ExtractedData
	if d.Name == "" && d.AadhaarNumber == "" {
		return nil, ErrEmptyExtraction
	}

	return &Extraction{
		Data: Data{
			Name:          d.Name,
			DateOfBirth:   d.DOB,
			Address:       d.Address,
			AadhaarNumber: d.AadhaarNumber,
			FatherName:    d.FatherName,
			Gender:        d.Gender,
		},
		Confidence:       resp.ConfidenceScore,
		ProcessingTimeMs: resp.ProcessingTimeMs,
		APIVersion:       resp.APIVersion,
	}, nil
}
