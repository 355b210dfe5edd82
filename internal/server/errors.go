package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/matjarly/matjarly/internal/auth/domain"
	"github.com/matjarly/matjarly/internal/auth/token"
	"github.com/matjarly/matjarly/internal/authorization"
	cartdomain "github.com/matjarly/matjarly/internal/cart/domain"
	dmdomain "github.com/matjarly/matjarly/internal/deliverymethod/domain"
	ownerdomain "github.com/matjarly/matjarly/internal/owner/domain"
	pmdomain "github.com/matjarly/matjarly/internal/paymentmethod/domain"
	plandomain "github.com/matjarly/matjarly/internal/plan/domain"
	signupdomain "github.com/matjarly/matjarly/internal/signup/domain"
	sliderdomain "github.com/matjarly/matjarly/internal/slider/domain"
	"github.com/matjarly/matjarly/internal/storecontext"
	storedomain "github.com/matjarly/matjarly/internal/store/domain"
	subscriptiondomain "github.com/matjarly/matjarly/internal/subscription/domain"
	userdomain "github.com/matjarly/matjarly/internal/user/domain"
	"github.com/matjarly/matjarly/internal/verification"
	"gorm.io/gorm"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrFileTooLarge   = errors.New("file_too_large")
	ErrRateLimited    = errors.New("rate_limited")
)

type apiError struct {
	Status    int
	Code      string
	Message   string
	MessageAr string
}

type errorRule struct {
	match func(error) bool
	out   apiError
}

func is(targets ...error) func(error) bool {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// errorRules map domain sentinels onto the bilingual error envelope.
// First match wins, so specific rules come before catch-alls.
var errorRules = []errorRule{
	{is(ErrRateLimited), apiError{
		http.StatusTooManyRequests, "TOO_MANY_REQUESTS",
		"Too many requests, try again later",
		"عدد كبير جدًا من الطلبات، حاول مرة أخرى لاحقًا",
	}},
	{is(storecontext.ErrNoStoreContext, userdomain.ErrStoreRequired), apiError{
		http.StatusBadRequest, "NO_STORE_CONTEXT",
		"Store ID is required or user must have a default store",
		"معرف المتجر مطلوب أو يجب أن يكون للمستخدم متجر افتراضي",
	}},
	{is(dmdomain.ErrInactiveCannotBeDefault, pmdomain.ErrInactiveCannotBeDefault), apiError{
		http.StatusBadRequest, "INACTIVE_CANNOT_BE_DEFAULT",
		"Inactive methods cannot be set as default",
		"لا يمكن تعيين طريقة غير مفعلة كافتراضية",
	}},
	{is(dmdomain.ErrDefaultCannotBeInactive, pmdomain.ErrDefaultCannotBeInactive), apiError{
		http.StatusBadRequest, "DEFAULT_CANNOT_BE_INACTIVE",
		"Default methods must be active",
		"يجب أن تكون الطريقة الافتراضية مفعلة",
	}},
	{is(dmdomain.ErrDefaultCannotBeDeleted, pmdomain.ErrDefaultCannotBeDeleted), apiError{
		http.StatusBadRequest, "DEFAULT_CANNOT_BE_DELETED",
		"Default methods cannot be deleted",
		"لا يمكن حذف الطريقة الافتراضية",
	}},
	{is(userdomain.ErrDuplicateEmail), apiError{
		http.StatusConflict, "DUPLICATE_EMAIL_IN_STORE",
		"Email is already registered in this store",
		"البريد الإلكتروني مسجل مسبقًا في هذا المتجر",
	}},
	{is(pmdomain.ErrLahzaAlreadyExists), apiError{
		http.StatusConflict, "LAHZA_EXISTS",
		"A lahza payment method already exists for this store",
		"توجد بالفعل طريقة دفع لحظة لهذا المتجر",
	}},
	{is(verification.ErrOTPExpired), apiError{
		http.StatusBadRequest, "OTP_EXPIRED",
		"Verification code has expired",
		"انتهت صلاحية رمز التحقق",
	}},
	{is(verification.ErrOTPInvalid), apiError{
		http.StatusBadRequest, "OTP_INVALID",
		"Verification code is invalid",
		"رمز التحقق غير صحيح",
	}},
	{is(verification.ErrOTPStillValid), apiError{
		http.StatusBadRequest, "OTP_STILL_VALID",
		"A verification code was already sent; wait for it to expire",
		"تم إرسال رمز تحقق بالفعل، انتظر حتى انتهاء صلاحيته",
	}},
	{is(verification.ErrResetTokenExpired), apiError{
		http.StatusBadRequest, "RESET_TOKEN_EXPIRED",
		"Password reset link has expired",
		"انتهت صلاحية رابط إعادة تعيين كلمة المرور",
	}},
	{is(verification.ErrResetTokenInvalid), apiError{
		http.StatusBadRequest, "RESET_TOKEN_INVALID",
		"Password reset link is invalid",
		"رابط إعادة تعيين كلمة المرور غير صالح",
	}},
	{is(userdomain.ErrEmailNotVerified), apiError{
		http.StatusForbidden, "EMAIL_NOT_VERIFIED",
		"Email address is not verified yet",
		"لم يتم التحقق من البريد الإلكتروني بعد",
	}},
	{is(ErrUnauthorized, token.ErrInvalidToken, token.ErrExpiredToken,
		userdomain.ErrInvalidCredentials, authdomain.ErrWrongPassword), apiError{
		http.StatusUnauthorized, "UNAUTHORIZED",
		"Authentication required or credentials invalid",
		"المصادقة مطلوبة أو بيانات الدخول غير صحيحة",
	}},
	{is(ErrForbidden, authorization.ErrForbidden, ownerdomain.ErrPrimaryOwnerProtected), apiError{
		http.StatusForbidden, "FORBIDDEN",
		"You do not have permission to perform this action",
		"ليست لديك صلاحية لتنفيذ هذا الإجراء",
	}},
	{is(storedomain.ErrSlugTaken, plandomain.ErrCodeTaken,
		ownerdomain.ErrDuplicateOwner, ownerdomain.ErrPrimaryOwnerExists,
		verification.ErrAlreadyVerified), apiError{
		http.StatusConflict, "CONFLICT",
		"The resource already exists or conflicts with current state",
		"المورد موجود مسبقًا أو يتعارض مع الحالة الحالية",
	}},
	{is(storedomain.ErrNotFound, userdomain.ErrNotFound, ownerdomain.ErrNotFound,
		dmdomain.ErrNotFound, pmdomain.ErrNotFound, sliderdomain.ErrNotFound,
		plandomain.ErrNotFound, cartdomain.ErrItemNotFound, cartdomain.ErrOrderNotFound,
		gorm.ErrRecordNotFound), apiError{
		http.StatusNotFound, "NOT_FOUND",
		"The requested resource was not found",
		"المورد المطلوب غير موجود",
	}},
	{is(ErrInvalidRequest, ErrFileTooLarge,
		signupdomain.ErrInvalidRequest, verification.ErrNoPendingEmail,
		storedomain.ErrInvalidID, storedomain.ErrInvalidName, storedomain.ErrInvalidStatus,
		userdomain.ErrInvalidID, userdomain.ErrInvalidRole,
		ownerdomain.ErrInvalidID, ownerdomain.ErrUnknownCapability,
		dmdomain.ErrInvalidID, pmdomain.ErrInvalidID, pmdomain.ErrInvalidMethodType,
		sliderdomain.ErrInvalidID, sliderdomain.ErrInvalidKind, sliderdomain.ErrMissingURL,
		plandomain.ErrInvalidID, plandomain.ErrInvalidKind, plandomain.ErrInvalidDuration,
		plandomain.ErrPlanInactive, subscriptiondomain.ErrInvalidDays,
		cartdomain.ErrInvalidItemID, cartdomain.ErrInvalidOrderID,
		cartdomain.ErrInvalidQuantity, cartdomain.ErrCartEmpty,
		cartdomain.ErrMethodNotAvailable,
		storecontext.ErrInvalidStoreID), apiError{
		http.StatusBadRequest, "VALIDATION_ERROR",
		"The request is invalid",
		"الطلب غير صالح",
	}},
}

func mapError(err error) apiError {
	for _, rule := range errorRules {
		if rule.match(err) {
			return rule.out
		}
	}
	return apiError{
		http.StatusInternalServerError, "INTERNAL_ERROR",
		"Something went wrong",
		"حدث خطأ ما",
	}
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		out := mapError(lastErr.Err)
		c.AbortWithStatusJSON(out.Status, Response{
			Success:   false,
			Message:   out.Message,
			MessageAr: out.MessageAr,
			ErrorCode: out.Code,
		})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
