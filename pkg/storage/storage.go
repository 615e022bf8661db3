// Package storage gives the API read access to liveness audit images in S3
// and knows which document formats uploads may use.
package storage

import (
	"context"
	"path"
	"strings"
	"time"
)

// AuditPrefix is the key prefix handed to Rekognition for liveness output
const AuditPrefix = "liveness"

// DownloadLink is a time-limited GET for one object
type DownloadLink struct {
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// AuditImageStore reads the audit images Rekognition writes. Nothing in this
// service uploads to the bucket.
type AuditImageStore interface {
	DownloadLink(ctx context.Context, key string, ttl time.Duration) (*DownloadLink, error)
	Exists(ctx context.Context, key string) (bool, error)
	Bucket() string
}

// documentFormats maps accepted upload extensions to their content type
var documentFormats = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

// DocumentMimeType returns the content type implied by filename's extension,
// and false for formats uploads may not use.
func DocumentMimeType(filename string) (string, bool) {
	mime, ok := documentFormats[strings.ToLower(path.Ext(filename))]
	return mime, ok
}

// MimeAllowed matches mime against allowed, where "image/*" covers every image
// type. An empty list allows everything.
func MimeAllowed(mime string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}

	mime = strings.ToLower(strings.TrimSpace(mime))
	for _, a := range allowed {
		a = strings.ToLower(a)
		if prefix, ok := strings.CutSuffix(a, "*"); ok && strings.HasPrefix(mime, prefix) {
			return true
		}
		if a == mime {
			return true
		}
	}
	return false
}
