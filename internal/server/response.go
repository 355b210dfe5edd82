package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/matjarly/matjarly/pkg/db/pagination"
)

// Response is the bilingual envelope every endpoint returns.
type Response struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message,omitempty"`
	MessageAr  string           `json:"messageAr,omitempty"`
	Data       any              `json:"data,omitempty"`
	ErrorCode  string           `json:"error,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func respondMessage(c *gin.Context, message, messageAr string, data any) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Message:   message,
		MessageAr: messageAr,
		Data:      data,
	})
}

func respondList(c *gin.Context, data any, meta pagination.Meta) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Data:       data,
		Pagination: &meta,
	})
}
