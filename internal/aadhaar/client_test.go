package aadhaar

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_Extract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		assert.Equal(t, "2.0", r.Header.Get("X-API-Version"))

		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		var fields []string
		assert.NoError(t, json.Unmarshal([]byte(r.FormValue("extract_fields")), &fields))
		assert.Equal(t, []string{"name", "dob", "address", "aadhaar_number"}, fields)

		f, _, err := r.FormFile("aadhaar_image")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "card", string(data))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"extracted_data": {"name": "Asha Rao", "dob": "01/02/1990", "address": "Pune", "aadhaar_number": "9999-8888-7777"},
			"confidence_score": 97.5,
			"processing_time_ms": 420,
			"api_version": "2.0.3"
		}`))
	}))
	defer server.Close()

	extraction, err := NewAPIClient(server.URL, "secret-key", time.Second).Extract(context.Background(), []byte("card"))
	require.NoError(t, err)

	assert.Equal(t, "Asha Rao", extraction.Data.Name)
	assert.Equal(t, "01/02/1990", extraction.Data.DateOfBirth)
	assert.Equal(t, "9999-8888-7777", extraction.Data.AadhaarNumber)
	assert.Equal(t, 97.5, extraction.Confidence)
	assert.Equal(t, int64(420), extraction.ProcessingTimeMs)
	assert.Equal(t, "2.0.3", extraction.APIVersion)
}

func TestAPIClient_ExtractErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		errText string
	}{
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			errText: "aadhaar API error: 401",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>`))
			},
			errText: "decode aadhaar API response",
		},
		{
			name: "empty extraction",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"extracted_data": {}, "confidence_score": 10}`))
			},
			errText: ErrEmptyExtraction.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewAPIClient(server.URL, "k", time.Second).Extract(context.Background(), []byte("card"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}
