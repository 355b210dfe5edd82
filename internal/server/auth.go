package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/matjarly/matjarly/internal/auth/domain"
	"github.com/matjarly/matjarly/internal/storecontext"
)

func (s *Server) Login(c *gin.Context) {
	var req authdomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Logged in successfully", "تم تسجيل الدخول بنجاح", result)
}

func (s *Server) Me(c *gin.Context) {
	identity, ok := storecontext.IdentityFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	user, err := s.authSvc.Me(c.Request.Context(), identity.UserID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, user)
}

func (s *Server) ChangePassword(c *gin.Context) {
	identity, ok := storecontext.IdentityFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req authdomain.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.authSvc.ChangePassword(c.Request.Context(), identity.UserID, req); err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Password changed", "تم تغيير كلمة المرور", nil)
}

type verifyEmailRequest struct {
	Email   string `json:"email" binding:"required,email"`
	OTP     string `json:"otp" binding:"required"`
	StoreID string `json:"storeId"`
}

func (s *Server) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	storeID, err := parseOptionalSnowflakeID(req.StoreID)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.verificationSvc.VerifyEmail(c.Request.Context(), req.Email, storeID, strings.TrimSpace(req.OTP)); err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Email verified", "تم التحقق من البريد الإلكتروني", nil)
}

type emailOnlyRequest struct {
	Email   string `json:"email" binding:"required,email"`
	StoreID string `json:"storeId"`
}

func (s *Server) ResendOTP(c *gin.Context) {
	var req emailOnlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	storeID, err := parseOptionalSnowflakeID(req.StoreID)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.verificationSvc.ResendSignupOTP(c.Request.Context(), req.Email, storeID); err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Verification code sent", "تم إرسال رمز التحقق", nil)
}

func (s *Server) ForgotPassword(c *gin.Context) {
	var req emailOnlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	storeID, err := parseOptionalSnowflakeID(req.StoreID)
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.verificationSvc.ForgotPassword(c.Request.Context(), req.Email, storeID); err != nil {
		AbortWithError(c, err)
		return
	}

	// Same reply for unknown emails, so the endpoint can't be used to
	// probe which addresses exist.
	respondMessage(c, "If the email exists, a reset link was sent",
		"إذا كان البريد الإلكتروني موجودًا، فقد تم إرسال رابط إعادة التعيين", nil)
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func (s *Server) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.verificationSvc.ResetPassword(c.Request.Context(), strings.TrimSpace(req.Token), req.NewPassword); err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Password reset", "تمت إعادة تعيين كلمة المرور", nil)
}

type changeEmailRequest struct {
	NewEmail string `json:"newEmail" binding:"required,email"`
}

func (s *Server) RequestEmailChange(c *gin.Context) {
	identity, ok := storecontext.IdentityFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req changeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.verificationSvc.RequestEmailChange(c.Request.Context(), identity.UserID, req.NewEmail); err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Verification code sent to the new address",
		"تم إرسال رمز التحقق إلى العنوان الجديد", nil)
}

type verifyEmailChangeRequest struct {
	OTP string `json:"otp" binding:"required"`
}

func (s *Server) VerifyEmailChange(c *gin.Context) {
	identity, ok := storecontext.IdentityFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req verifyEmailChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.verificationSvc.VerifyEmailChange(c.Request.Context(), identity.UserID, strings.TrimSpace(req.OTP)); err != nil {
		AbortWithError(c, err)
		return
	}

	respondMessage(c, "Email updated", "تم تحديث البريد الإلكتروني", nil)
}

func parseOptionalSnowflakeID(value string) (*snowflake.ID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := snowflake.ParseString(trimmed)
	if err != nil || parsed == 0 {
		return nil, ErrInvalidRequest
	}
	return &parsed, nil
}
