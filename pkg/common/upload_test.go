package common

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartContext(t *testing.T, field, filename string, content []byte) *gin.Context {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.WriteField("note", "x"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestReadUpload(t *testing.T) {
	c := multipartContext(t, "document", "licence.png", []byte("png-bytes"))

	upload, err := ReadUpload(c, "document", 1024)
	require.NoError(t, err)
	assert.Equal(t, "licence.png", upload.Filename)
	assert.Equal(t, []byte("png-bytes"), upload.Data)
	assert.Equal(t, int64(9), upload.Size)
}

func TestReadUpload_SanitizesFilename(t *testing.T) {
	c := multipartContext(t, "livePhoto", "my selfie (1).jpg", []byte("jpeg"))

	upload, err := ReadUpload(c, "livePhoto", 1024)
	require.NoError(t, err)
	assert.Equal(t, "my_selfie__1_.jpg", upload.Filename)
}

func TestReadUpload_MissingField(t *testing.T) {
	c := multipartContext(t, "", "", nil)

	_, err := ReadUpload(c, "document", 1024)
	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestReadUpload_TooLarge(t *testing.T) {
	c := multipartContext(t, "document", "big.jpg", bytes.Repeat([]byte("a"), 2048))

	_, err := ReadUpload(c, "document", 1024)
	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusRequestEntityTooLarge, appErr.Code)
}
