package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	signupdomain "github.com/matjarly/matjarly/internal/signup/domain"
)

func (s *Server) Signup(c *gin.Context) {
	var req signupdomain.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.signupSvc.Signup(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success:   true,
		Message:   "Store created; check your email for the verification code",
		MessageAr: "تم إنشاء المتجر؛ تحقق من بريدك الإلكتروني لرمز التحقق",
		Data:      result,
	})
}
