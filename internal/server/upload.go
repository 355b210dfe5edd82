package server

import (
	"io"

	"github.com/gin-gonic/gin"
)

const (
	maxImageBytes = 5 << 20
	maxVideoBytes = 10 << 20
)

// readUpload buffers a multipart file, rejecting anything over the cap
// before the body is fully read.
func readUpload(c *gin.Context, field string, maxBytes int64) ([]byte, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, "", ErrInvalidRequest
	}
	if header.Size > maxBytes {
		return nil, "", ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, "", ErrInvalidRequest
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, "", ErrInvalidRequest
	}
	if int64(len(data)) > maxBytes {
		return nil, "", ErrFileTooLarge
	}
	return data, header.Filename, nil
}
