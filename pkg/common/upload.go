package common

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/kyc-nova/pkg/security"
)

// Upload is a multipart file held in memory for the life of one request
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// ReadUpload reads the multipart file field into memory.
// A missing field is a 400, a file above maxBytes a 413.
func ReadUpload(c *gin.Context, field string, maxBytes int64) (*Upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, NewBadRequestError(fmt.Sprintf("%s file is required", field), err)
		}
		return nil, NewBadRequestError("invalid multipart form", err)
	}

	if maxBytes > 0 && header.Size > maxBytes {
		return nil, NewPayloadTooLargeError(fmt.Sprintf("%s exceeds the %d MB limit", field, maxBytes/(1024*1024)))
	}

	f, err := header.Open()
	if err != nil {
		return nil, NewBadRequestError("failed to read uploaded file", err)
	}
	defer f.Close()

	limit := header.Size
	if maxBytes > 0 {
		limit = maxBytes
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, NewBadRequestError("failed to read uploaded file", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, NewPayloadTooLargeError(fmt.Sprintf("%s exceeds the %d MB limit", field, maxBytes/(1024*1024)))
	}

	return &Upload{
		Filename:    security.SanitizeFilename(header.Filename),
		ContentType: header.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}
