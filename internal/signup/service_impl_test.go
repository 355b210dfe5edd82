package signup

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/matjarly/matjarly/internal/clock"
	"github.com/matjarly/matjarly/internal/config"
	ownerdomain "github.com/matjarly/matjarly/internal/owner/domain"
	ownerrepository "github.com/matjarly/matjarly/internal/owner/repository"
	"github.com/matjarly/matjarly/internal/signup/domain"
	storedomain "github.com/matjarly/matjarly/internal/store/domain"
	storerepository "github.com/matjarly/matjarly/internal/store/repository"
	userdomain "github.com/matjarly/matjarly/internal/user/domain"
	userrepository "github.com/matjarly/matjarly/internal/user/repository"
	"github.com/matjarly/matjarly/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeVerification struct {
	otpSent []snowflake.ID
	fail    error
}

func (f *fakeVerification) SendSignupOTP(ctx context.Context, userID snowflake.ID) error {
	f.otpSent = append(f.otpSent, userID)
	return f.fail
}

func (f *fakeVerification) ResendSignupOTP(ctx context.Context, email string, storeID *snowflake.ID) error {
	return nil
}

func (f *fakeVerification) VerifyEmail(ctx context.Context, email string, storeID *snowflake.ID, otp string) error {
	return nil
}

func (f *fakeVerification) RequestEmailChange(ctx context.Context, userID snowflake.ID, newEmail string) error {
	return nil
}

func (f *fakeVerification) VerifyEmailChange(ctx context.Context, userID snowflake.ID, otp string) error {
	return nil
}

func (f *fakeVerification) ForgotPassword(ctx context.Context, email string, storeID *snowflake.ID) error {
	return nil
}

func (f *fakeVerification) ResetPassword(ctx context.Context, token, newPassword string) error {
	return nil
}

type fixture struct {
	svc          domain.Service
	db           *gorm.DB
	verification *fakeVerification
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	err = dbConn.AutoMigrate(&storedomain.Store{}, &userdomain.User{}, &ownerdomain.Owner{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	verification := &fakeVerification{}
	svc := NewService(Params{
		DB:           dbConn,
		Log:          zap.NewNop(),
		Config:       config.Config{TrialDays: 14},
		GenID:        node,
		Clock:        clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		Stores:       storerepository.Provide(),
		Owners:       ownerrepository.Provide(),
		Users:        userrepository.Provide(),
		Verification: verification,
	})

	return &fixture{svc: svc, db: dbConn, verification: verification}
}

func validRequest() domain.Request {
	return domain.Request{
		StoreNameAr: "متجر القهوة",
		StoreNameEn: "Coffee Shop",
		Name:        "Jane Doe",
		Email:       "Jane@Example.com",
		Password:    "s3cret-pass",
		Phone:       "+970590000000",
	}
}

func TestSignupProvisionsStoreUserOwner(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.Signup(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("failed to sign up: %v", err)
	}

	if result.Store.Slug != "coffee-shop" {
		t.Fatalf("expected slug coffee-shop, got %s", result.Store.Slug)
	}
	if result.Store.Status != storedomain.StoreStatusActive {
		t.Fatalf("expected active store, got %s", result.Store.Status)
	}
	if result.Store.TrialEndsAt == nil {
		t.Fatal("expected a trial window")
	}
	wantTrialEnd := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	if !result.Store.TrialEndsAt.Equal(wantTrialEnd) {
		t.Fatalf("expected trial end %v, got %v", wantTrialEnd, result.Store.TrialEndsAt)
	}

	if result.User.Email != "jane@example.com" {
		t.Fatalf("expected normalized email, got %s", result.User.Email)
	}
	if result.User.Role != userdomain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", result.User.Role)
	}
	if result.User.StoreID == nil || *result.User.StoreID != result.Store.ID {
		t.Fatal("expected admin bound to the new store")
	}

	var owner ownerdomain.Owner
	if err := f.db.Where("store_id = ?", result.Store.ID).First(&owner).Error; err != nil {
		t.Fatalf("failed to load owner: %v", err)
	}
	if !owner.IsPrimaryOwner {
		t.Fatal("expected the signup account to be primary owner")
	}
	if owner.UserID != result.User.ID {
		t.Fatal("expected owner row bound to the admin account")
	}

	if len(f.verification.otpSent) != 1 || f.verification.otpSent[0] != result.User.ID {
		t.Fatalf("expected one signup OTP for the admin, got %v", f.verification.otpSent)
	}
}

func TestSignupSlugCollisionGetsSuffix(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Signup(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	second := validRequest()
	second.Email = "other@example.com"
	result, err := f.svc.Signup(context.Background(), second)
	if err != nil {
		t.Fatalf("second signup failed: %v", err)
	}

	if result.Store.Slug == first.Store.Slug {
		t.Fatalf("expected a disambiguated slug, got %s twice", result.Store.Slug)
	}
	if result.Store.Slug[:len("coffee-shop-")] != "coffee-shop-" {
		t.Fatalf("expected coffee-shop- prefix, got %s", result.Store.Slug)
	}
}

func TestSignupSameEmailCanOpenSecondStore(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Signup(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	again := validRequest()
	again.StoreNameEn = "Tea House"
	second, err := f.svc.Signup(context.Background(), again)
	if err != nil {
		t.Fatalf("second signup failed: %v", err)
	}

	// Admin accounts are unique per (email, store), so the same person
	// may open a second store with a separate admin account.
	if second.User.ID == first.User.ID {
		t.Fatal("expected a distinct admin account per store")
	}
	if *second.User.StoreID == *first.User.StoreID {
		t.Fatal("expected a distinct store")
	}
}

func TestSignupWithoutStoreNameRejected(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.StoreNameAr = "  "
	req.StoreNameEn = ""
	if _, err := f.svc.Signup(context.Background(), req); err != domain.ErrInvalidRequest {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestSignupArabicOnlyNameStillGetsSlug(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.StoreNameEn = ""
	result, err := f.svc.Signup(context.Background(), req)
	if err != nil {
		t.Fatalf("failed to sign up: %v", err)
	}
	if result.Store.Slug == "" {
		t.Fatal("expected a slug derived from the Arabic name")
	}
}

func TestSignupSurvivesVerificationEmailFailure(t *testing.T) {
	f := newFixture(t)
	f.verification.fail = context.DeadlineExceeded

	result, err := f.svc.Signup(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("expected signup to succeed despite email failure, got %v", err)
	}
	if result.Store == nil || result.User == nil {
		t.Fatal("expected provisioned store and user")
	}
}
