package verification

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/auth/password"
	"github.com/matjarly/matjarly/internal/clock"
	"github.com/matjarly/matjarly/internal/config"
	"github.com/matjarly/matjarly/internal/providers/email"
	userdomain "github.com/matjarly/matjarly/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log    *zap.Logger
	Config config.Config
	Clock  clock.Clock
	Users  userdomain.Service
	Email  email.Provider
}

type service struct {
	log   *zap.Logger
	cfg   config.Config
	clock clock.Clock
	users userdomain.Service
	email email.Provider
}

func NewService(p Params) Service {
	return &service{
		log:   p.Log.Named("verification.service"),
		cfg:   p.Config,
		clock: p.Clock,
		users: p.Users,
		email: p.Email,
	}
}

func (s *service) SendSignupOTP(ctx context.Context, userID snowflake.ID) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}
	return s.issueSignupOTP(ctx, user)
}

func (s *service) ResendSignupOTP(ctx context.Context, emailAddr string, storeID *snowflake.ID) error {
	user, err := s.users.FindForLogin(ctx, emailAddr, storeID)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}
	now := s.clock.Now()
	if user.EmailOTP != "" && user.EmailOTPExpiresAt != nil && now.Before(*user.EmailOTPExpiresAt) {
		return ErrOTPStillValid
	}
	return s.issueSignupOTP(ctx, user)
}

func (s *service) issueSignupOTP(ctx context.Context, user *userdomain.User) error {
	otp, err := generateOTP()
	if err != nil {
		return err
	}

	expiresAt := s.clock.Now().Add(SignupOTPTTL)
	user.EmailOTP = otp
	user.EmailOTPExpiresAt = &expiresAt
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	err = s.email.SendTemplate(ctx, []string{user.Email}, "verify_email", map[string]any{
		"subject": "رمز التحقق | Verification code",
		"name":    user.Name,
		"otp":     otp,
	})
	if err != nil {
		s.log.Error("send signup otp", zap.Error(err), zap.String("user_id", user.ID.String()))
		return err
	}
	return nil
}

func (s *service) VerifyEmail(ctx context.Context, emailAddr string, storeID *snowflake.ID, otp string) error {
	user, err := s.users.FindForLogin(ctx, emailAddr, storeID)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}
	if err := checkOTP(user.EmailOTP, user.EmailOTPExpiresAt, otp, s.clock); err != nil {
		return err
	}

	// Clear the code so a second attempt with the same OTP fails.
	user.EmailVerified = true
	user.EmailOTP = ""
	user.EmailOTPExpiresAt = nil
	return s.users.Save(ctx, user)
}

func (s *service) RequestEmailChange(ctx context.Context, userID snowflake.ID, newEmail string) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}

	normalized := userdomain.NormalizeEmail(newEmail)
	if err := s.users.EmailAvailable(ctx, user.Role, user.StoreID, normalized, user.ID); err != nil {
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	expiresAt := s.clock.Now().Add(EmailChangeOTPTTL)
	user.PendingEmail = normalized
	user.PendingEmailOTP = otp
	user.PendingEmailOTPExpiresAt = &expiresAt
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	return s.email.SendTemplate(ctx, []string{normalized}, "change_email", map[string]any{
		"subject": "تأكيد البريد الجديد | Confirm your new email",
		"name":    user.Name,
		"otp":     otp,
	})
}

func (s *service) VerifyEmailChange(ctx context.Context, userID snowflake.ID, otp string) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if user.PendingEmail == "" {
		return ErrNoPendingEmail
	}
	if err := checkOTP(user.PendingEmailOTP, user.PendingEmailOTPExpiresAt, otp, s.clock); err != nil {
		return err
	}

	// Re-check uniqueness: another account may have claimed the address
	// between request and verify.
	if err := s.users.EmailAvailable(ctx, user.Role, user.StoreID, user.PendingEmail, user.ID); err != nil {
		return err
	}

	user.Email = user.PendingEmail
	user.PendingEmail = ""
	user.PendingEmailOTP = ""
	user.PendingEmailOTPExpiresAt = nil
	return s.users.Save(ctx, user)
}

func (s *service) ForgotPassword(ctx context.Context, emailAddr string, storeID *snowflake.ID) error {
	user, err := s.users.FindForLogin(ctx, emailAddr, storeID)
	if err != nil {
		// Do not reveal whether the address exists.
		s.log.Info("forgot password for unknown email")
		return nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	expiresAt := s.clock.Now().Add(ResetTokenTTL)
	user.ResetTokenHash = hashToken(token)
	user.ResetTokenExpiresAt = &expiresAt
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.AppBaseURL, token)
	return s.email.SendTemplate(ctx, []string{user.Email}, "reset_password", map[string]any{
		"subject":  "إعادة تعيين كلمة المرور | Reset your password",
		"name":     user.Name,
		"resetUrl": resetURL,
	})
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.users.FindByResetTokenHash(ctx, hashToken(token))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrResetTokenInvalid
	}
	if user.ResetTokenExpiresAt == nil || s.clock.Now().After(*user.ResetTokenExpiresAt) {
		return ErrResetTokenExpired
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil
	return s.users.Save(ctx, user)
}

func checkOTP(stored string, expiresAt *time.Time, supplied string, clk clock.Clock) error {
	if stored == "" || supplied == "" {
		return ErrOTPInvalid
	}
	if expiresAt == nil || clk.Now().After(*expiresAt) {
		return ErrOTPExpired
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) != 1 {
		return ErrOTPInvalid
	}
	return nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%05d", n.Int64()), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
