package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/kyc-nova/pkg/common"
	"github.com/richxcame/kyc-nova/pkg/validation"
)

// ValidationErrorResponse is the 400 body; Fields is keyed by JSON field name
type ValidationErrorResponse struct {
	Success bool              `json:"success"`
	Error   *common.ErrorInfo `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// RespondWithValidationError writes a 400 for a bind or validation error
func RespondWithValidationError(c *gin.Context, err error) {
	resp := ValidationErrorResponse{
		Error: &common.ErrorInfo{Code: http.StatusBadRequest, Message: "validation failed"},
	}

	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Errors
	} else {
		resp.Error.Message = "invalid request format: " + err.Error()
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
}

// ValidateAndBind decodes the JSON body into req and validates it. On failure
// it has already responded and the handler should return.
func ValidateAndBind(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		err = validation.ValidateStruct(req)
	}
	if err != nil {
		RespondWithValidationError(c, err)
		return false
	}
	return true
}

// MaxBodySize buffers the body up to maxSize and rejects larger requests with 413
func MaxBodySize(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxSize {
			rejectTooLarge(c, maxSize)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxSize))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				rejectTooLarge(c, maxSize)
				return
			}
			common.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
			c.Abort()
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}

func rejectTooLarge(c *gin.Context, maxSize int64) {
	common.ErrorResponse(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", maxSize))
	c.Abort()
}
