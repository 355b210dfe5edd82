package verification

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	SignupOTPTTL      = 1 * time.Minute
	EmailChangeOTPTTL = 5 * time.Minute
	ResetTokenTTL     = 15 * time.Minute
)

type Service interface {
	// SendSignupOTP issues a fresh verification code for an unverified
	// account and emails it.
	SendSignupOTP(ctx context.Context, userID snowflake.ID) error
	// ResendSignupOTP refuses while the previous code is still live.
	ResendSignupOTP(ctx context.Context, email string, storeID *snowflake.ID) error
	VerifyEmail(ctx context.Context, email string, storeID *snowflake.ID, otp string) error

	RequestEmailChange(ctx context.Context, userID snowflake.ID, newEmail string) error
	VerifyEmailChange(ctx context.Context, userID snowflake.ID, otp string) error

	ForgotPassword(ctx context.Context, email string, storeID *snowflake.ID) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

var (
	ErrOTPInvalid        = errors.New("otp_invalid")
	ErrOTPExpired        = errors.New("otp_expired")
	ErrOTPStillValid     = errors.New("otp_still_valid")
	ErrAlreadyVerified   = errors.New("email_already_verified")
	ErrNoPendingEmail    = errors.New("no_pending_email_change")
	ErrResetTokenInvalid = errors.New("reset_token_invalid")
	ErrResetTokenExpired = errors.New("reset_token_expired")
)
