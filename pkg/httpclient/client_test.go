package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_DefaultTimeout(t *testing.T) {
	assert.Equal(t, defaultTimeout, NewClient("http://x", 0).http.Timeout)
	assert.Equal(t, 5*time.Second, NewClient("http://x", 5*time.Second).http.Timeout)
}

func TestClient_PostMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, `["name"]`, r.FormValue("extract_fields"))
		file, header, err := r.FormFile("aadhaar_image")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "card.jpg", header.Filename)
		assert.Equal(t, "image-bytes", string(data))

		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	body, err := NewClient(server.URL, time.Second).PostMultipart(context.Background(), Upload{
		Files:   []FilePart{{Field: "aadhaar_image", Filename: "card.jpg", Data: []byte("image-bytes")}},
		Fields:  map[string]string{"extract_fields": `["name"]`},
		Headers: map[string]string{"Authorization": "Bearer k"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestClient_PostMultipart_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).PostMultipart(context.Background(), Upload{})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, string(statusErr.Body), "bad key")
}

func TestClient_PostMultipart_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient(server.URL, time.Second).PostMultipart(ctx, Upload{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_PostMultipart_Unreachable(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:1", time.Second).PostMultipart(context.Background(), Upload{})
	assert.Error(t, err)
}
