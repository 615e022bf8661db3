// Package httpclient posts multipart uploads to third-party extraction APIs.
package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/richxcame/kyc-nova/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 10 << 20
)

// StatusError is returned for non-2xx responses; Body holds the start of the response
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// FilePart is one file field of a multipart request
type FilePart struct {
	Field    string
	Filename string
	Data     []byte
}

// Upload is a multipart request body plus per-request headers
type Upload struct {
	Files   []FilePart
	Fields  map[string]string
	Headers map[string]string
}

// Client posts to one fixed URL
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a client for url. A non-positive timeout means 30s.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{url: url, http: &http.Client{Timeout: timeout}}
}

// PostMultipart sends u as multipart/form-data and returns the response body
func (c *Client) PostMultipart(ctx context.Context, u Upload) (body []byte, err error) {
	ctx, span := tracing.StartSpan(ctx, "httpclient.PostMultipart", attribute.String("http.url", c.url))
	defer func() { tracing.EndSpan(span, err) }()

	payload, contentType, err := encodeMultipart(u)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, payload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	for k, v := range u.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode/100 != 2 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: body}
	}
	return body, nil
}

func encodeMultipart(u Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range u.Files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("file %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("file %s: %w", f.Field, err)
		}
	}
	for k, v := range u.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
