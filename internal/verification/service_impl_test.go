package verification

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/clock"
	"github.com/matjarly/matjarly/internal/config"
	userdomain "github.com/matjarly/matjarly/internal/user/domain"
	userrepository "github.com/matjarly/matjarly/internal/user/repository"
	userservice "github.com/matjarly/matjarly/internal/user/service"
	"github.com/matjarly/matjarly/pkg/db"
	"go.uber.org/zap"
)

// captureEmail records template sends so tests can read the OTP back.
type captureEmail struct {
	sends []map[string]any
}

func (c *captureEmail) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	return nil
}

func (c *captureEmail) SendTemplate(ctx context.Context, to []string, templateName string, data map[string]any) error {
	c.sends = append(c.sends, data)
	return nil
}

func (c *captureEmail) lastOTP(t *testing.T) string {
	t.Helper()
	if len(c.sends) == 0 {
		t.Fatal("expected at least one email")
	}
	otp, ok := c.sends[len(c.sends)-1]["otp"].(string)
	if !ok {
		t.Fatal("expected otp in template data")
	}
	return otp
}

type fixture struct {
	svc   Service
	users userdomain.Service
	email *captureEmail
	clock *clock.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&userdomain.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	users := userservice.NewService(userservice.Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  userrepository.Provide(),
	})

	mail := &captureEmail{}
	svc := NewService(Params{
		Log:    zap.NewNop(),
		Config: config.Config{AppBaseURL: "http://localhost:3000"},
		Clock:  clk,
		Users:  users,
		Email:  mail,
	})

	return &fixture{svc: svc, users: users, email: mail, clock: clk}
}

func (f *fixture) createUnverifiedUser(t *testing.T, email string) *userdomain.User {
	t.Helper()
	storeID := snowflake.ID(10)
	user, err := f.users.Create(context.Background(), userdomain.CreateRequest{
		Role:     userdomain.RoleAdmin,
		StoreID:  &storeID,
		Email:    email,
		Password: "strong-password",
		Name:     "Test Admin",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestVerifyEmailHappyPath(t *testing.T) {
	f := newFixture(t)
	user := f.createUnverifiedUser(t, "owner@example.com")

	if err := f.svc.SendSignupOTP(context.Background(), user.ID); err != nil {
		t.Fatalf("failed to send otp: %v", err)
	}
	otp := f.email.lastOTP(t)

	if err := f.svc.VerifyEmail(context.Background(), "owner@example.com", user.StoreID, otp); err != nil {
		t.Fatalf("failed to verify: %v", err)
	}

	reloaded, err := f.users.Get(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if !reloaded.EmailVerified {
		t.Fatal("expected email to be verified")
	}
}

func TestVerifyEmailExpiredOTP(t *testing.T) {
	f := newFixture(t)
	user := f.createUnverifiedUser(t, "owner@example.com")

	if err := f.svc.SendSignupOTP(context.Background(), user.ID); err != nil {
		t.Fatalf("failed to send otp: %v", err)
	}
	otp := f.email.lastOTP(t)

	f.clock.Advance(SignupOTPTTL + time.Second)

	err := f.svc.VerifyEmail(context.Background(), "owner@example.com", user.StoreID, otp)
	if err != ErrOTPExpired {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}
}

func TestVerifyEmailWrongOTP(t *testing.T) {
	f := newFixture(t)
	user := f.createUnverifiedUser(t, "owner@example.com")

	if err := f.svc.SendSignupOTP(context.Background(), user.ID); err != nil {
		t.Fatalf("failed to send otp: %v", err)
	}

	err := f.svc.VerifyEmail(context.Background(), "owner@example.com", user.StoreID, "00000")
	if err != ErrOTPInvalid && err != ErrOTPExpired {
		t.Fatalf("expected otp rejection, got %v", err)
	}
}

func TestVerifyEmailOTPSingleUse(t *testing.T) {
	f := newFixture(t)
	user := f.createUnverifiedUser(t, "owner@example.com")

	if err := f.svc.SendSignupOTP(context.Background(), user.ID); err != nil {
		t.Fatalf("failed to send otp: %v", err)
	}
	otp := f.email.lastOTP(t)

	if err := f.svc.VerifyEmail(context.Background(), "owner@example.com", user.StoreID, otp); err != nil {
		t.Fatalf("failed to verify: %v", err)
	}

	// A second use of the same code must not succeed.
	err := f.svc.VerifyEmail(context.Background(), "owner@example.com", user.StoreID, otp)
	if err != ErrAlreadyVerified {
		t.Fatalf("expected ErrAlreadyVerified, got %v", err)
	}
}

func TestResendRefusedWhileOTPLive(t *testing.T) {
	f := newFixture(t)
	user := f.createUnverifiedUser(t, "owner@example.com")

	if err := f.svc.SendSignupOTP(context.Background(), user.ID); err != nil {
		t.Fatalf("failed to send otp: %v", err)
	}

	err := f.svc.ResendSignupOTP(context.Background(), "owner@example.com", user.StoreID)
	if err != ErrOTPStillValid {
		t.Fatalf("expected ErrOTPStillValid, got %v", err)
	}

	f.clock.Advance(SignupOTPTTL + time.Second)

	if err := f.svc.ResendSignupOTP(context.Background(), "owner@example.com", user.StoreID); err != nil {
		t.Fatalf("expected resend after expiry, got %v", err)
	}
	if len(f.email.sends) != 2 {
		t.Fatalf("expected two emails, got %d", len(f.email.sends))
	}
}

func TestEmailChangeFlow(t *testing.T) {
	f := newFixture(t)
	user := f.createUnverifiedUser(t, "owner@example.com")

	if err := f.svc.RequestEmailChange(context.Background(), user.ID, "New.Owner@Example.com"); err != nil {
		t.Fatalf("failed to request change: %v", err)
	}
	otp := f.email.lastOTP(t)

	if err := f.svc.VerifyEmailChange(context.Background(), user.ID, otp); err != nil {
		t.Fatalf("failed to verify change: %v", err)
	}

	reloaded, err := f.users.Get(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if reloaded.Email != "new.owner@example.com" {
		t.Fatalf("expected normalized new email, got %s", reloaded.Email)
	}
	if reloaded.PendingEmail != "" {
		t.Fatal("expected pending email to be cleared")
	}
}

func TestVerifyEmailChangeWithoutPending(t *testing.T) {
	f := newFixture(t)
	user := f.createUnverifiedUser(t, "owner@example.com")

	err := f.svc.VerifyEmailChange(context.Background(), user.ID, "12345")
	if err != ErrNoPendingEmail {
		t.Fatalf("expected ErrNoPendingEmail, got %v", err)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	f := newFixture(t)
	user := f.createUnverifiedUser(t, "owner@example.com")

	if err := f.svc.ForgotPassword(context.Background(), "owner@example.com", user.StoreID); err != nil {
		t.Fatalf("failed to request reset: %v", err)
	}
	if len(f.email.sends) == 0 {
		t.Fatal("expected reset email")
	}
	resetURL, _ := f.email.sends[len(f.email.sends)-1]["resetUrl"].(string)
	if resetURL == "" {
		t.Fatal("expected reset url in template data")
	}
	token := resetURL[len("http://localhost:3000/reset-password?token="):]

	if err := f.svc.ResetPassword(context.Background(), token, "brand-new-password"); err != nil {
		t.Fatalf("failed to reset: %v", err)
	}

	// The token is single use.
	if err := f.svc.ResetPassword(context.Background(), token, "another-password"); err != ErrResetTokenInvalid {
		t.Fatalf("expected ErrResetTokenInvalid on reuse, got %v", err)
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newFixture(t)
	user := f.createUnverifiedUser(t, "owner@example.com")

	if err := f.svc.ForgotPassword(context.Background(), "owner@example.com", user.StoreID); err != nil {
		t.Fatalf("failed to request reset: %v", err)
	}
	resetURL, _ := f.email.sends[len(f.email.sends)-1]["resetUrl"].(string)
	token := resetURL[len("http://localhost:3000/reset-password?token="):]

	f.clock.Advance(ResetTokenTTL + time.Second)

	if err := f.svc.ResetPassword(context.Background(), token, "brand-new-password"); err != ErrResetTokenExpired {
		t.Fatalf("expected ErrResetTokenExpired, got %v", err)
	}
}

func TestForgotPasswordUnknownEmailSilent(t *testing.T) {
	f := newFixture(t)

	if err := f.svc.ForgotPassword(context.Background(), "ghost@example.com", nil); err != nil {
		t.Fatalf("expected silence for unknown email, got %v", err)
	}
	if len(f.email.sends) != 0 {
		t.Fatal("expected no email for unknown address")
	}
}
